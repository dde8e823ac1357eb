package checker

import (
	"tscheck/pkg/errors"
	"tscheck/pkg/lexer"
	"tscheck/pkg/parser"
)

// Diagnostics is the append-only list of type errors found so far.
type Diagnostics struct {
	entries []*errors.TypeError
}

// Add appends err.
func (d *Diagnostics) Add(err *errors.TypeError) {
	d.entries = append(d.entries, err)
}

// Len returns the number of recorded diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.entries)
}

// Messages returns a copy of the recorded messages in order.
func (d *Diagnostics) Messages() []string {
	msgs := make([]string, len(d.entries))
	for i, e := range d.entries {
		msgs[i] = e.Msg
	}
	return msgs
}

// Errors returns a copy of the recorded errors in order.
func (d *Diagnostics) Errors() []*errors.TypeError {
	out := make([]*errors.TypeError, len(d.entries))
	copy(out, d.entries)
	return out
}

// addError records message anchored at node's primary token.
func (c *Checker) addError(node parser.Node, message string) {
	debugPrintf("error: %s", message)
	token := GetTokenFromNode(node)
	if token.Line == 0 {
		c.diagnostics.Add(errors.NewTypeError(message))
		return
	}
	c.diagnostics.Add(errors.TypeErrorAt(errors.Position{
		Line:     token.Line,
		Column:   token.Column,
		StartPos: token.StartPos,
		EndPos:   token.EndPos,
		Source:   c.source,
	}, message))
}

// GetTokenFromNode returns the primary token of a parser node, or the zero
// token when node is nil or unknown.
func GetTokenFromNode(node parser.Node) lexer.Token {
	switch n := node.(type) {
	// Statements
	case *parser.VarStatement:
		return n.Token
	case *parser.VarDeclarator:
		return n.Token
	case *parser.FunctionDeclaration:
		return n.Token
	case *parser.ReturnStatement:
		return n.Token
	case *parser.ExpressionStatement:
		return n.Token
	case *parser.BlockStatement:
		return n.Token
	case *parser.IfStatement:
		return n.Token
	case *parser.WhileStatement:
		return n.Token
	case *parser.EmptyStatement:
		return n.Token

	// Expressions
	case *parser.Identifier:
		return n.Token
	case *parser.NumberLiteral:
		return n.Token
	case *parser.BigIntLiteral:
		return n.Token
	case *parser.StringLiteral:
		return n.Token
	case *parser.BooleanLiteral:
		return n.Token
	case *parser.NullLiteral:
		return n.Token
	case *parser.ArrayLiteral:
		return n.Token
	case *parser.OmittedExpression:
		return n.Token
	case *parser.SpreadElement:
		return n.Token
	case *parser.ObjectLiteral:
		return n.Token
	case *parser.FunctionLiteral:
		return n.Token
	case *parser.ArrowFunctionLiteral:
		return n.Token
	case *parser.PrefixExpression:
		return n.Token
	case *parser.UpdateExpression:
		if n.Prefix {
			return n.Token
		}
		return GetTokenFromNode(n.Argument)
	case *parser.ParenthesizedExpression:
		return n.Token
	case *parser.TernaryExpression:
		return GetTokenFromNode(n.Condition)
	case *parser.InfixExpression:
		return n.Token // The operator
	case *parser.LogicalExpression:
		return n.Token
	case *parser.AssignmentExpression:
		return GetTokenFromNode(n.Left)
	case *parser.CallExpression:
		return GetTokenFromNode(n.Function)
	case *parser.MemberExpression:
		return GetTokenFromNode(n.Object)
	case *parser.IndexExpression:
		return GetTokenFromNode(n.Left)

	// Types
	case *parser.KeywordType:
		return n.Token
	case *parser.ArrayTypeNode:
		return GetTokenFromNode(n.ElementType)
	case *parser.TupleTypeNode:
		return n.Token
	case *parser.UnionTypeNode:
		return n.Token
	case *parser.FunctionTypeNode:
		return n.Token
	case *parser.LiteralTypeNode:
		return n.Token
	case *parser.TypeReference:
		return n.Token
	}
	return lexer.Token{}
}
