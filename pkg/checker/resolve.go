package checker

import (
	"tscheck/pkg/parser"
	"tscheck/pkg/types"
)

// CheckType converts a type annotation into a Type. Literal types, named
// type references and anything unrecognized resolve to any.
func (c *Checker) CheckType(node parser.TypeNode) types.Type {
	switch n := node.(type) {
	case *parser.KeywordType:
		if prim, ok := types.PrimitiveByName(n.Name); ok {
			return prim
		}
		return types.Any
	case *parser.ArrayTypeNode:
		return types.NewArrayType(c.CheckType(n.ElementType))
	case *parser.TupleTypeNode:
		elems := make([]types.Type, len(n.ElementTypes))
		for i, elem := range n.ElementTypes {
			elems[i] = c.CheckType(elem)
		}
		return types.NewTupleType(elems...)
	case *parser.UnionTypeNode:
		members := make([]types.Type, len(n.Types))
		for i, member := range n.Types {
			members[i] = c.CheckType(member)
		}
		return types.NewUnionType(members...)
	case *parser.FunctionTypeNode:
		// Only annotated, non-rest parameters take part in the signature.
		params := make([]types.Type, 0, len(n.Parameters))
		for _, param := range n.Parameters {
			if param.IsRest || param.TypeAnnotation == nil {
				continue
			}
			params = append(params, c.CheckType(param.TypeAnnotation))
		}
		return types.NewFunctionType(params, c.CheckType(n.ReturnType))
	case *parser.LiteralTypeNode, *parser.TypeReference:
		return types.Any
	default:
		return types.Any
	}
}
