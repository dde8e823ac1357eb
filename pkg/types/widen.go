package types

import (
	"strconv"
	"strings"
)

// --- Type Widening ---

// GetWidenedType converts literal types to their corresponding primitive base types.
// Other types are returned unchanged.
func GetWidenedType(t Type) Type {
	if litType, ok := t.(*LiteralType); ok && litType.Base != nil {
		return litType.Base
	}
	return t
}

// DeeplyWidenType widens literals wherever they occur inside t. Composites
// that contain no literal are returned as-is so shared subtrees stay shared.
func DeeplyWidenType(t Type) Type {
	switch tt := t.(type) {
	case *LiteralType:
		return GetWidenedType(tt)
	case *ArrayType:
		elem := DeeplyWidenType(tt.ElementType)
		if elem == tt.ElementType {
			return tt
		}
		return NewArrayType(elem)
	case *TupleType:
		if elems, changed := widenList(tt.ElementTypes); changed {
			return NewTupleType(elems...)
		}
		return tt
	case *UnionType:
		if members, changed := widenList(tt.Types); changed {
			return NewUnionType(members...)
		}
		return tt
	case *FunctionType:
		params, changed := widenList(tt.ParameterTypes)
		ret := DeeplyWidenType(tt.ReturnType)
		if changed || ret != tt.ReturnType {
			return NewFunctionType(params, ret)
		}
		return tt
	}
	return t
}

func widenList(ts []Type) ([]Type, bool) {
	out := make([]Type, len(ts))
	changed := false
	for i, t := range ts {
		out[i] = DeeplyWidenType(t)
		if out[i] != t {
			changed = true
		}
	}
	return out, changed
}

// InferFromLiteral guesses the literal type of a raw literal spelling.
// Surrounding quotes are stripped first; "null" is the null type, anything
// that parses as a number is a number literal, true/false are boolean
// literals, and everything else is a string literal.
func InferFromLiteral(text string) Type {
	value := strings.Trim(strings.Trim(text, `"`), "'")

	if value == "null" {
		return Null
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return NewNumberLiteral(n)
	}
	switch value {
	case "true":
		return NewBooleanLiteral(true)
	case "false":
		return NewBooleanLiteral(false)
	}
	return NewStringLiteral(value)
}
