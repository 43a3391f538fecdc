package parser

import (
	"errors"
	"fmt"

	"github.com/artuross/tinycompiler/internal/compiler/ast"
	"github.com/artuross/tinycompiler/internal/compiler/lexer"
)

var (
	ErrMissingCallee    = errors.New("expected name after '('")
	ErrNilToken         = errors.New("nil token")
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
	ErrUnexpectedName   = errors.New("unexpected name outside of call position")
	ErrUnknownTokenType = errors.New("unknown token type")

	errEndOfTokens = errors.New("end of tokens")
)

// Error points at the token that stopped the parser. Token is nil when the
// input ended early.
type Error struct {
	Err   error
	Index int
	Token *lexer.Token
}

func (e *Error) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("token %d: %v", e.Index, e.Err)
	}

	return fmt.Sprintf("token %d (%s %q): %v", e.Index, e.Token.Type, e.Token.Value, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Parse builds a program from the whole token sequence. It fails on the first
// malformed construct and never returns a partial tree.
func Parse(tokens []*lexer.Token) (*ast.Program, error) {
	body := make([]ast.Node, 0)

	pos := 0
	for pos < len(tokens) {
		node, next, err := parseExpression(tokens, pos)
		if err != nil {
			return nil, err
		}

		body = append(body, node)
		pos = next
	}

	program := ast.Program{
		Body: body,
	}

	return &program, nil
}

// parseExpression parses the expression starting at pos and returns it with
// the position of the first token after it.
func parseExpression(tokens []*lexer.Token, pos int) (ast.Node, int, error) {
	token, err := tokenAt(tokens, pos)
	if err != nil {
		return nil, pos, err
	}

	switch token.Type {
	case lexer.TokenTypeNumber:
		node := ast.NumberLiteral{
			Value: token.Value,
		}

		return &node, pos + 1, nil

	case lexer.TokenTypeString:
		node := ast.StringLiteral{
			Value: token.Value,
		}

		return &node, pos + 1, nil

	case lexer.TokenTypeParenOpen:
		return parseCallExpression(tokens, pos+1)

	case lexer.TokenTypeParenClose:
		return nil, pos, newError(ErrUnbalancedParens, pos, token)

	case lexer.TokenTypeName:
		return nil, pos, newError(ErrUnexpectedName, pos, token)

	default:
		return nil, pos, newError(ErrUnknownTokenType, pos, token)
	}
}

// parseCallExpression expects pos to point right after the opening paren.
func parseCallExpression(tokens []*lexer.Token, pos int) (ast.Node, int, error) {
	callee, err := tokenAt(tokens, pos)
	if errors.Is(err, errEndOfTokens) {
		return nil, pos, newError(ErrUnbalancedParens, pos, nil)
	}
	if err != nil {
		return nil, pos, err
	}

	if callee.Type != lexer.TokenTypeName {
		return nil, pos, newError(ErrMissingCallee, pos, callee)
	}

	pos++

	params := make([]ast.Node, 0)
	for {
		token, err := tokenAt(tokens, pos)
		if errors.Is(err, errEndOfTokens) {
			// ran out of tokens before the closing paren
			return nil, pos, newError(ErrUnbalancedParens, pos, nil)
		}
		if err != nil {
			return nil, pos, err
		}

		if token.Type == lexer.TokenTypeParenClose {
			break
		}

		param, next, err := parseExpression(tokens, pos)
		if err != nil {
			return nil, pos, err
		}

		params = append(params, param)
		pos = next
	}

	node := ast.CallExpression{
		Name:   callee.Value,
		Params: params,
	}

	// skip the closing paren
	return &node, pos + 1, nil
}

func tokenAt(tokens []*lexer.Token, pos int) (*lexer.Token, error) {
	if pos >= len(tokens) {
		return nil, newError(errEndOfTokens, pos, nil)
	}

	token := tokens[pos]
	if token == nil {
		return nil, newError(ErrNilToken, pos, nil)
	}

	return token, nil
}

func newError(err error, index int, token *lexer.Token) error {
	return &Error{
		Err:   err,
		Index: index,
		Token: token,
	}
}
