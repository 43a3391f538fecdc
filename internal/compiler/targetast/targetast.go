package targetast

var (
	_ Node = (*CallExpression)(nil)
	_ Node = (*ExpressionStatement)(nil)
	_ Node = (*NumberLiteral)(nil)
	_ Node = (*Program)(nil)
	_ Node = (*StringLiteral)(nil)
)

// Node is a node of the C-like tree rendered by the code generator.
type Node interface {
	isNode()
}

type (
	// CallExpression is a call whose result is used as an argument.
	CallExpression struct {
		Callee    string
		Arguments []Node
	}

	// ExpressionStatement is a call at the top level of a program.
	ExpressionStatement struct {
		Callee    string
		Arguments []Node
	}

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

func (n CallExpression) isNode()      {}
func (n ExpressionStatement) isNode() {}
func (n NumberLiteral) isNode()       {}
func (n Program) isNode()             {}
func (n StringLiteral) isNode()       {}
