package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/artuross/tinycompiler/internal/compiler/ast"
	"github.com/artuross/tinycompiler/internal/compiler/codegen"
	"github.com/artuross/tinycompiler/internal/compiler/lexer"
	"github.com/artuross/tinycompiler/internal/compiler/parser"
	"github.com/artuross/tinycompiler/internal/compiler/targetast"
	"github.com/artuross/tinycompiler/internal/compiler/transformer"
	"github.com/artuross/tinycompiler/internal/defaults"
	"github.com/artuross/tinycompiler/internal/log/semconv"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/artuross/tinycompiler/internal/compiler"

var (
	ErrLex       = errors.New("lex error")
	ErrParse     = errors.New("parse error")
	ErrTransform = errors.New("transform error")
)

type Stage string

const (
	StageLex       Stage = "lex"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
	StageGenerate  Stage = "generate"
)

// Result holds the output of every stage of a successful compilation.
type Result struct {
	Tokens []*lexer.Token
	Source *ast.Program
	Target *targetast.Program
	Code   string
}

type Compiler struct {
	tracer trace.Tracer
}

func New(options ...func(*Compiler)) *Compiler {
	compiler := Compiler{
		tracer: defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&compiler)
	}

	return &compiler
}

// Compile runs all stages in order. The first failing stage aborts the
// compilation; its error wraps both the stage sentinel (ErrLex, ErrParse,
// ErrTransform) and the stage's own error.
func (c *Compiler) Compile(ctx context.Context, input string) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, "compile")
	defer span.End()

	result, err := c.compile(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compilation failed")

		return nil, err
	}

	return result, nil
}

func (c *Compiler) compile(ctx context.Context, input string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	tokens, err := runStage(ctx, c, StageLex, ErrLex, func() ([]*lexer.Token, int, error) {
		tokens, err := lexer.Tokenize(input)
		return tokens, len(tokens), err
	})
	if err != nil {
		return nil, err
	}

	source, err := runStage(ctx, c, StageParse, ErrParse, func() (*ast.Program, int, error) {
		program, err := parser.Parse(tokens)
		if err != nil {
			return nil, 0, err
		}

		return program, len(program.Body), nil
	})
	if err != nil {
		return nil, err
	}

	target, err := runStage(ctx, c, StageTransform, ErrTransform, func() (*targetast.Program, int, error) {
		program, err := transformer.Transform(source)
		if err != nil {
			return nil, 0, err
		}

		return program, len(program.Body), nil
	})
	if err != nil {
		return nil, err
	}

	code, err := runStage(ctx, c, StageGenerate, nil, func() (string, int, error) {
		code := codegen.Generate(target)
		return code, len(code), nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Msg("compilation finished")

	result := Result{
		Tokens: tokens,
		Source: source,
		Target: target,
		Code:   code,
	}

	return &result, nil
}

// runStage checks for cancellation, runs a single stage inside its own span
// and logs the size of what it produced. Stage errors are wrapped with
// stageErr unless it is nil.
func runStage[T any](ctx context.Context, c *Compiler, stage Stage, stageErr error, run func() (T, int, error)) (T, error) {
	var zero T

	if err := context.Cause(ctx); err != nil {
		return zero, err
	}

	_, span := c.tracer.Start(ctx, string(stage))
	defer span.End()

	logger := zerolog.Ctx(ctx).With().Str(semconv.Stage, string(stage)).Logger()

	value, size, err := run()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stage failed")

		logger.Debug().Err(err).Msg("stage failed")

		if stageErr != nil {
			return zero, fmt.Errorf("%w: %w", stageErr, err)
		}

		return zero, err
	}

	span.SetAttributes(attribute.Int(semconv.StageOutputSize, size))

	logger.Debug().Int(semconv.StageOutputSize, size).Msg("stage finished")

	return value, nil
}

func WithTracerProvider(tp trace.TracerProvider) func(*Compiler) {
	return func(c *Compiler) {
		c.tracer = tp.Tracer(tracerName)
	}
}
