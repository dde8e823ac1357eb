package parser

import (
	"strings"

	"tscheck/pkg/lexer"
)

// TypeNode represents a type annotation in the AST.
type TypeNode interface {
	Node
	typeNode()
}

// KeywordType is a built-in type keyword such as `number` or `void`.
type KeywordType struct {
	Token lexer.Token
	Name  string
}

func (kt *KeywordType) typeNode()            {}
func (kt *KeywordType) TokenLiteral() string { return kt.Token.Literal }
func (kt *KeywordType) String() string       { return kt.Name }

// typeKeywords lists the names parsed as KeywordType in type position.
var typeKeywords = map[string]bool{
	"any":       true,
	"number":    true,
	"string":    true,
	"boolean":   true,
	"null":      true,
	"undefined": true,
	"never":     true,
	"bigint":    true,
	"symbol":    true,
	"object":    true,
	"unknown":   true,
	"void":      true,
}

// IsTypeKeyword reports whether name is a built-in type keyword.
func IsTypeKeyword(name string) bool {
	return typeKeywords[name]
}

// ArrayTypeNode is `T[]`.
type ArrayTypeNode struct {
	Token       lexer.Token // The LBRACKET token
	ElementType TypeNode
}

func (at *ArrayTypeNode) typeNode()            {}
func (at *ArrayTypeNode) TokenLiteral() string { return at.Token.Literal }
func (at *ArrayTypeNode) String() string {
	switch at.ElementType.(type) {
	case *UnionTypeNode, *FunctionTypeNode:
		return "(" + at.ElementType.String() + ")[]"
	}
	return at.ElementType.String() + "[]"
}

// TupleTypeNode is `[A, B]`.
type TupleTypeNode struct {
	Token        lexer.Token // The LBRACKET token
	ElementTypes []TypeNode
}

func (tt *TupleTypeNode) typeNode()            {}
func (tt *TupleTypeNode) TokenLiteral() string { return tt.Token.Literal }
func (tt *TupleTypeNode) String() string {
	elems := make([]string, len(tt.ElementTypes))
	for i, e := range tt.ElementTypes {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// UnionTypeNode is `A | B | C`. Members keep source order; a parenthesized
// union inside another union stays nested.
type UnionTypeNode struct {
	Token lexer.Token // The first PIPE token
	Types []TypeNode
}

func (ut *UnionTypeNode) typeNode()            {}
func (ut *UnionTypeNode) TokenLiteral() string { return ut.Token.Literal }
func (ut *UnionTypeNode) String() string {
	parts := make([]string, len(ut.Types))
	for i, t := range ut.Types {
		if _, nested := t.(*UnionTypeNode); nested {
			parts[i] = "(" + t.String() + ")"
			continue
		}
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

// FunctionTypeNode is `(a: A, b: B) => R`.
type FunctionTypeNode struct {
	Token      lexer.Token // The LPAREN token
	Parameters []*Parameter
	ReturnType TypeNode
}

func (ft *FunctionTypeNode) typeNode()            {}
func (ft *FunctionTypeNode) TokenLiteral() string { return ft.Token.Literal }
func (ft *FunctionTypeNode) String() string {
	return formatSignature(ft.Parameters, ft.ReturnType, " => ")
}

// LiteralTypeNode is a string, number or boolean literal used as a type.
type LiteralTypeNode struct {
	Token   lexer.Token
	Literal Expression // *StringLiteral, *NumberLiteral or *BooleanLiteral
}

func (lt *LiteralTypeNode) typeNode()            {}
func (lt *LiteralTypeNode) TokenLiteral() string { return lt.Token.Literal }
func (lt *LiteralTypeNode) String() string       { return lt.Literal.String() }

// TypeReference is a named type such as `Foo` or `ns.Foo`.
type TypeReference struct {
	Token lexer.Token // The first IDENT token
	Name  string
}

func (tr *TypeReference) typeNode()            {}
func (tr *TypeReference) TokenLiteral() string { return tr.Token.Literal }
func (tr *TypeReference) String() string       { return tr.Name }
