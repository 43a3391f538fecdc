package transformer

import (
	"errors"
	"fmt"

	"github.com/artuross/tinycompiler/internal/compiler/ast"
	"github.com/artuross/tinycompiler/internal/compiler/targetast"
)

var (
	ErrTopLevelLiteral = errors.New("literal is not allowed at the top level")
	ErrUnsupportedNode = errors.New("unsupported node")
)

// Context tells a visited node where its translation will be placed.
type Context int

const (
	ContextTopLevel Context = iota
	ContextNestedInCall
)

func (c Context) String() string {
	switch c {
	case ContextTopLevel:
		return "top level"

	case ContextNestedInCall:
		return "nested in call"

	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// Transform rewrites the parsed program into the C-like tree. Calls directly
// in the program body become statements, every other call stays an
// expression.
func Transform(program *ast.Program) (*targetast.Program, error) {
	if program == nil {
		return nil, fmt.Errorf("program: %w", ErrUnsupportedNode)
	}

	body, err := transformNodes(program.Body, ContextTopLevel)
	if err != nil {
		return nil, err
	}

	target := targetast.Program{
		Body: body,
	}

	return &target, nil
}

func transformNodes(nodes []ast.Node, context Context) ([]targetast.Node, error) {
	result := make([]targetast.Node, 0, len(nodes))

	for index, node := range nodes {
		translated, err := transformNode(node, context)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", index, err)
		}

		result = append(result, translated)
	}

	return result, nil
}

func transformNode(node ast.Node, context Context) (targetast.Node, error) {
	switch node := node.(type) {
	case *ast.NumberLiteral:
		if context == ContextTopLevel {
			return nil, fmt.Errorf("number %q: %w", node.Value, ErrTopLevelLiteral)
		}

		return &targetast.NumberLiteral{Value: node.Value}, nil

	case *ast.StringLiteral:
		if context == ContextTopLevel {
			return nil, fmt.Errorf("string %q: %w", node.Value, ErrTopLevelLiteral)
		}

		return &targetast.StringLiteral{Value: node.Value}, nil

	case *ast.CallExpression:
		return transformCallExpression(node, context)

	default:
		return nil, fmt.Errorf("%T: %w", node, ErrUnsupportedNode)
	}
}

func transformCallExpression(node *ast.CallExpression, context Context) (targetast.Node, error) {
	arguments, err := transformNodes(node.Params, ContextNestedInCall)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", node.Name, err)
	}

	if context == ContextNestedInCall {
		expr := targetast.CallExpression{
			Callee:    node.Name,
			Arguments: arguments,
		}

		return &expr, nil
	}

	stmt := targetast.ExpressionStatement{
		Callee:    node.Name,
		Arguments: arguments,
	}

	return &stmt, nil
}
