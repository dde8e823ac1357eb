package parser

import (
	"bytes"
	"strings"

	"tscheck/pkg/lexer"
	"tscheck/pkg/source"
	"tscheck/pkg/types"
)

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string // Returns the literal value of the token associated with the node
	String() string       // Returns a string representation of the node (for debugging)
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node in the AST.
type Expression interface {
	Node
	expressionNode()
}

// --- Program Node ---

// Program is the root node of the AST.
type Program struct {
	Statements []Statement
	Source     *source.SourceFile
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Statement Nodes ---

// VarStatement represents a `let`, `const` or `var` declaration with one or
// more declarators.
type VarStatement struct {
	Token        lexer.Token // LET, CONST or VAR
	Declarations []*VarDeclarator
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarStatement) String() string {
	decls := make([]string, len(vs.Declarations))
	for i, d := range vs.Declarations {
		decls[i] = d.String()
	}
	return vs.Token.Literal + " " + strings.Join(decls, ", ") + ";"
}

// Kind returns "let", "const" or "var".
func (vs *VarStatement) Kind() string { return vs.Token.Literal }

// VarDeclarator is a single `name: Type = value` binding.
type VarDeclarator struct {
	Token          lexer.Token // The name token
	Name           *Identifier
	TypeAnnotation TypeNode   // nil when absent
	Value          Expression // nil when absent
}

func (vd *VarDeclarator) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclarator) String() string {
	var out bytes.Buffer
	out.WriteString(vd.Name.String())
	if vd.TypeAnnotation != nil {
		out.WriteString(": ")
		out.WriteString(vd.TypeAnnotation.String())
	}
	if vd.Value != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Value.String())
	}
	return out.String()
}

// FunctionDeclaration represents `function name(params): R { body }`.
type FunctionDeclaration struct {
	Token      lexer.Token // The FUNCTION token
	Name       *Identifier
	Parameters []*Parameter
	ReturnType TypeNode // nil when absent
	Body       *BlockStatement
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("function ")
	out.WriteString(fd.Name.String())
	out.WriteString(formatSignature(fd.Parameters, fd.ReturnType, ": "))
	out.WriteString(" ")
	out.WriteString(fd.Body.String())
	return out.String()
}

// Parameter is a function or function-type parameter.
type Parameter struct {
	Token          lexer.Token // The token of the parameter name (or SPREAD for rest)
	Name           *Identifier
	TypeAnnotation TypeNode
	Optional       bool // name?: T
	IsRest         bool // ...name: T
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) String() string {
	var out bytes.Buffer
	if p.IsRest {
		out.WriteString("...")
	}
	out.WriteString(p.Name.String())
	if p.Optional {
		out.WriteString("?")
	}
	if p.TypeAnnotation != nil {
		out.WriteString(": ")
		out.WriteString(p.TypeAnnotation.String())
	}
	return out.String()
}

func formatSignature(params []*Parameter, ret TypeNode, sep string) string {
	var out bytes.Buffer
	out.WriteString("(")
	for i, p := range params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString(")")
	if ret != nil {
		out.WriteString(sep)
		out.WriteString(ret.String())
	}
	return out.String()
}

// ReturnStatement represents `return <value>;`.
type ReturnStatement struct {
	Token       lexer.Token // The RETURN token
	ReturnValue Expression  // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.ReturnValue == nil {
		return "return;"
	}
	return "return " + rs.ReturnValue.String() + ";"
}

// ExpressionStatement represents a statement consisting of a single expression.
type ExpressionStatement struct {
	Token      lexer.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ";"
	}
	return es.Expression.String() + ";"
}

// BlockStatement represents `{ ... }`.
type BlockStatement struct {
	Token      lexer.Token // The LBRACE token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement represents `if (cond) stmt else stmt`.
type IfStatement struct {
	Token       lexer.Token // The IF token
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// WhileStatement represents `while (cond) body`.
type WhileStatement struct {
	Token     lexer.Token // The WHILE token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// EmptyStatement represents a lone `;`.
type EmptyStatement struct {
	Token lexer.Token
}

func (es *EmptyStatement) statementNode()       {}
func (es *EmptyStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EmptyStatement) String() string       { return ";" }

// --- Expression Nodes ---

// Identifier represents a name.
type Identifier struct {
	Token lexer.Token // The IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// NumberLiteral represents a numeric literal.
type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return types.FormatNumber(nl.Value) }

// BigIntLiteral represents `123n`. Value holds the digits without the suffix.
type BigIntLiteral struct {
	Token lexer.Token
	Value string
}

func (bl *BigIntLiteral) expressionNode()      {}
func (bl *BigIntLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BigIntLiteral) String() string       { return bl.Value + "n" }

// StringLiteral represents a quoted string; Value is decoded.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return quote(sl.Value) }

// BooleanLiteral represents `true` or `false`.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// NullLiteral represents `null`.
type NullLiteral struct {
	Token lexer.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) String() string       { return "null" }

// ArrayLiteral represents `[a, , ...b]`.
type ArrayLiteral struct {
	Token    lexer.Token // The LBRACKET token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	elems := make([]string, len(al.Elements))
	for i, e := range al.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// OmittedExpression is a hole in an array literal, as in `[, 1]`.
type OmittedExpression struct {
	Token lexer.Token // The COMMA token that closes the hole
}

func (oe *OmittedExpression) expressionNode()      {}
func (oe *OmittedExpression) TokenLiteral() string { return "" }
func (oe *OmittedExpression) String() string       { return "" }

// SpreadElement represents `...expr` in array literals and call arguments.
type SpreadElement struct {
	Token    lexer.Token // The SPREAD token
	Argument Expression
}

func (se *SpreadElement) expressionNode()      {}
func (se *SpreadElement) TokenLiteral() string { return se.Token.Literal }
func (se *SpreadElement) String() string       { return "..." + se.Argument.String() }

// ObjectProperty is a `key: value` pair or a shorthand `key`.
type ObjectProperty struct {
	Key   Expression // *Identifier, *StringLiteral or *NumberLiteral
	Value Expression
}

// ObjectLiteral represents `{ a: 1, b }`.
type ObjectLiteral struct {
	Token      lexer.Token // The LBRACE token
	Properties []*ObjectProperty
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) String() string {
	props := make([]string, len(ol.Properties))
	for i, p := range ol.Properties {
		props[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(props, ", ") + "}"
}

// FunctionLiteral represents a function expression, optionally named.
type FunctionLiteral struct {
	Token      lexer.Token // The FUNCTION token
	Name       *Identifier // nil for anonymous functions
	Parameters []*Parameter
	ReturnType TypeNode
	Body       *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FunctionLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("function")
	if fl.Name != nil {
		out.WriteString(" ")
		out.WriteString(fl.Name.String())
	}
	out.WriteString(formatSignature(fl.Parameters, fl.ReturnType, ": "))
	out.WriteString(" ")
	out.WriteString(fl.Body.String())
	return out.String()
}

// ArrowFunctionLiteral represents `(a, b) => body` and `a => body`.
type ArrowFunctionLiteral struct {
	Token      lexer.Token // The LPAREN or parameter token
	Parameters []*Parameter
	Body       Node // *BlockStatement or Expression
}

func (af *ArrowFunctionLiteral) expressionNode()      {}
func (af *ArrowFunctionLiteral) TokenLiteral() string { return af.Token.Literal }
func (af *ArrowFunctionLiteral) String() string {
	return formatSignature(af.Parameters, nil, "") + " => " + af.Body.String()
}

// InfixExpression represents a binary operator application, `left op right`.
// Logical operators are parsed into LogicalExpression instead.
type InfixExpression struct {
	Token    lexer.Token // The operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// LogicalExpression represents `&&`, `||` and `??`.
type LogicalExpression struct {
	Token    lexer.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (le *LogicalExpression) expressionNode()      {}
func (le *LogicalExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LogicalExpression) String() string {
	return "(" + le.Left.String() + " " + le.Operator + " " + le.Right.String() + ")"
}

// PrefixExpression represents `!x`, `-x`, `+x`, `~x`, `typeof x` and `void x`.
type PrefixExpression struct {
	Token    lexer.Token // The operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	if pe.Operator == "typeof" || pe.Operator == "void" {
		return "(" + pe.Operator + " " + pe.Right.String() + ")"
	}
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// UpdateExpression represents `++x`, `x++`, `--x` and `x--`.
type UpdateExpression struct {
	Token    lexer.Token // The operator token
	Operator string
	Prefix   bool
	Argument Expression
}

func (ue *UpdateExpression) expressionNode()      {}
func (ue *UpdateExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UpdateExpression) String() string {
	if ue.Prefix {
		return "(" + ue.Operator + ue.Argument.String() + ")"
	}
	return "(" + ue.Argument.String() + ue.Operator + ")"
}

// ParenthesizedExpression keeps explicit grouping in the tree.
type ParenthesizedExpression struct {
	Token      lexer.Token // The LPAREN token
	Expression Expression
}

func (pe *ParenthesizedExpression) expressionNode()      {}
func (pe *ParenthesizedExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *ParenthesizedExpression) String() string       { return "(" + pe.Expression.String() + ")" }

// AssignmentExpression represents `target op value` for `=` and compound
// assignment operators.
type AssignmentExpression struct {
	Token    lexer.Token // The operator token
	Operator string
	Left     Expression
	Value    Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) String() string {
	return "(" + ae.Left.String() + " " + ae.Operator + " " + ae.Value.String() + ")"
}

// TernaryExpression represents `cond ? a : b`.
type TernaryExpression struct {
	Token       lexer.Token // The QUESTION token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (te *TernaryExpression) expressionNode()      {}
func (te *TernaryExpression) TokenLiteral() string { return te.Token.Literal }
func (te *TernaryExpression) String() string {
	return "(" + te.Condition.String() + " ? " + te.Consequence.String() + " : " + te.Alternative.String() + ")"
}

// CallExpression represents `fn(args)`.
type CallExpression struct {
	Token     lexer.Token // The LPAREN token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpression represents `object.property`.
type MemberExpression struct {
	Token    lexer.Token // The DOT token
	Object   Expression
	Property *Identifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) String() string {
	return me.Object.String() + "." + me.Property.String()
}

// IndexExpression represents `object[index]`.
type IndexExpression struct {
	Token lexer.Token // The LBRACKET token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	return ie.Left.String() + "[" + ie.Index.String() + "]"
}

func quote(s string) string {
	var out strings.Builder
	out.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		default:
			out.WriteRune(r)
		}
	}
	out.WriteByte('"')
	return out.String()
}
