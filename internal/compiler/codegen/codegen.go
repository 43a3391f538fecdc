package codegen

import (
	"fmt"
	"strings"

	"github.com/artuross/tinycompiler/internal/compiler/targetast"
)

// Generate renders the program as one statement per line. String literals are
// quoted but their contents are written as is, without escaping.
func Generate(program *targetast.Program) string {
	var sb strings.Builder

	writeNode(&sb, program)

	return sb.String()
}

func writeNode(sb *strings.Builder, node targetast.Node) {
	switch node := node.(type) {
	case *targetast.Program:
		for index, stmt := range node.Body {
			if index > 0 {
				sb.WriteByte('\n')
			}

			writeNode(sb, stmt)
		}

	case *targetast.ExpressionStatement:
		writeCall(sb, node.Callee, node.Arguments)
		sb.WriteByte(';')

	case *targetast.CallExpression:
		writeCall(sb, node.Callee, node.Arguments)

	case *targetast.NumberLiteral:
		sb.WriteString(node.Value)

	case *targetast.StringLiteral:
		sb.WriteByte('"')
		sb.WriteString(node.Value)
		sb.WriteByte('"')

	default:
		panic(fmt.Sprintf("codegen: unsupported node type %T", node))
	}
}

func writeCall(sb *strings.Builder, callee string, arguments []targetast.Node) {
	sb.WriteString(callee)
	sb.WriteByte('(')

	for index, arg := range arguments {
		if index > 0 {
			sb.WriteString(", ")
		}

		writeNode(sb, arg)
	}

	sb.WriteByte(')')
}
