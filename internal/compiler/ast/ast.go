package ast

var (
	_ Node = (*CallExpression)(nil)
	_ Node = (*NumberLiteral)(nil)
	_ Node = (*Program)(nil)
	_ Node = (*StringLiteral)(nil)
)

// Node is a node of the tree produced by the parser.
type Node interface {
	isNode()
}

type (
	// CallExpression is a parenthesized call such as (add 1 2).
	CallExpression struct {
		Name   string
		Params []Node
	}

	// NumberLiteral holds the digits as written; they are never parsed.
	NumberLiteral struct {
		Value string
	}

	Program struct {
		Body []Node
	}

	StringLiteral struct {
		Value string
	}
)

func (n CallExpression) isNode() {}
func (n NumberLiteral) isNode()  {}
func (n Program) isNode()        {}
func (n StringLiteral) isNode()  {}
