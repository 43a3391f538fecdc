package dump

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/artuross/tinycompiler/internal/compiler"
	"github.com/kr/pretty"
)

var ErrUnknownEmit = errors.New("unknown emit mode")

// Emit selects which stage output is written for a compilation.
type Emit string

const (
	EmitAST    Emit = "ast"
	EmitCode   Emit = "code"
	EmitTarget Emit = "target"
	EmitTokens Emit = "tokens"
)

var emits = []Emit{EmitAST, EmitCode, EmitTarget, EmitTokens}

func ParseEmit(value string) (Emit, error) {
	emit := Emit(value)
	if !slices.Contains(emits, emit) {
		return "", fmt.Errorf("%w: %q", ErrUnknownEmit, value)
	}

	return emit, nil
}

// Write renders the selected stage output followed by a newline.
func Write(w io.Writer, emit Emit, result *compiler.Result) error {
	var err error

	switch emit {
	case EmitCode:
		_, err = fmt.Fprintln(w, result.Code)

	case EmitTokens:
		for _, token := range result.Tokens {
			if _, err = fmt.Fprintf(w, "%s %q\n", token.Type, token.Value); err != nil {
				break
			}
		}

	case EmitAST:
		_, err = pretty.Fprintf(w, "%# v\n", result.Source)

	case EmitTarget:
		_, err = pretty.Fprintf(w, "%# v\n", result.Target)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEmit, emit)
	}

	if err != nil {
		return fmt.Errorf("write %s: %w", emit, err)
	}

	return nil
}
