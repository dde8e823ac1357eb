package checker

import (
	"tscheck/pkg/parser"
	"tscheck/pkg/types"
)

// keywordValueTypes maps identifiers spelled like type keywords to the type
// they evaluate to in expression position. These names never consult the
// symbol table. `undefined` and `object` are looked up like any other name.
var keywordValueTypes = map[string]*types.Primitive{
	"number":  types.Number,
	"string":  types.String,
	"boolean": types.Boolean,
	"bigint":  types.BigInt,
	"symbol":  types.Symbol,
	"null":    types.Null,
	"never":   types.Never,
	"void":    types.Void,
	"unknown": types.Unknown,
	"any":     types.Any,
}

// EvalType computes the type of an expression, recording diagnostics for
// invalid binary operations. It always returns a type; expression kinds
// without a rule evaluate to any.
func (c *Checker) EvalType(expr parser.Expression) types.Type {
	switch e := expr.(type) {
	case *parser.NumberLiteral:
		return types.Number
	case *parser.BigIntLiteral:
		return types.BigInt
	case *parser.StringLiteral:
		return types.String
	case *parser.BooleanLiteral:
		return types.Boolean
	case *parser.NullLiteral:
		return types.Null
	case *parser.Identifier:
		return c.evalIdentifier(e)
	case *parser.ArrayLiteral:
		return c.evalArrayLiteral(e)
	case *parser.InfixExpression:
		return c.evalBinaryExpression(e)
	case *parser.LogicalExpression, *parser.PrefixExpression, *parser.UpdateExpression,
		*parser.ParenthesizedExpression, *parser.AssignmentExpression, *parser.TernaryExpression,
		*parser.CallExpression, *parser.MemberExpression, *parser.IndexExpression,
		*parser.ObjectLiteral, *parser.FunctionLiteral, *parser.ArrowFunctionLiteral,
		*parser.SpreadElement, *parser.OmittedExpression:
		return types.Any
	default:
		return types.Any
	}
}

func (c *Checker) evalIdentifier(ident *parser.Identifier) types.Type {
	if prim, ok := keywordValueTypes[ident.Value]; ok {
		return prim
	}
	if typ, ok := c.symbols.Resolve(ident.Value); ok {
		return typ
	}
	return types.Any
}

// evalArrayLiteral types an array by its first element only.
func (c *Checker) evalArrayLiteral(arr *parser.ArrayLiteral) types.Type {
	if len(arr.Elements) == 0 {
		return types.NewArrayType(types.Any)
	}
	switch first := arr.Elements[0].(type) {
	case *parser.OmittedExpression, *parser.SpreadElement:
		return types.NewArrayType(types.Any)
	default:
		return types.NewArrayType(c.EvalType(first))
	}
}

func (c *Checker) evalBinaryExpression(expr *parser.InfixExpression) types.Type {
	left := c.EvalType(expr.Left)
	right := c.EvalType(expr.Right)

	switch expr.Operator {
	case "+":
		if types.Is(left, types.String) || types.Is(right, types.String) {
			return types.String
		}
		return c.numericResult(expr, left, right, types.Number)
	case "-", "*", "/", "%", "**":
		return c.numericResult(expr, left, right, types.Any)
	case "<", "<=", ">", ">=", "==", "!=", "===", "!==", "in", "instanceof":
		return types.Boolean
	case "&", "|", "^", "<<", ">>", ">>>":
		return c.numericResult(expr, left, right, types.Number)
	default:
		return types.Any
	}
}

// numericResult applies the bigint/number rules shared by arithmetic and
// bitwise operators. Mixing bigint with anything else is an error that
// still yields number.
func (c *Checker) numericResult(expr *parser.InfixExpression, left, right types.Type, fallback types.Type) types.Type {
	leftBig := types.Is(left, types.BigInt)
	rightBig := types.Is(right, types.BigInt)
	switch {
	case leftBig && rightBig:
		return types.BigInt
	case types.Is(left, types.Number) && types.Is(right, types.Number):
		return types.Number
	case leftBig || rightBig:
		c.addError(expr, invalidBinaryOperationMessage(left, right))
		return types.Number
	default:
		return fallback
	}
}
