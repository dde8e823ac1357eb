package types

// --- Type Compatibility ---

// Compatible reports whether a value of type actual may be used where expected
// is required. Rules apply in order:
//
//  1. expected any accepts everything (any is a sink on the expected side only)
//  2. identical primitives
//  3. a literal widens to its base primitive, never the reverse
//  4. two literals of the same kind match when their values are equal
//  5. a union accepts actual when any member does; an actual union is not split
//  6. arrays are covariant in their element type
//  7. tuples need equal length and pairwise compatible elements
//  8. functions need equal arity, pairwise compatible parameters (checked in
//     the same direction as the return type) and compatible returns
//  9. anything else is incompatible
func Compatible(expected, actual Type) bool {
	if expected == nil || actual == nil {
		return false
	}

	switch exp := expected.(type) {
	case *Primitive:
		if exp.Equals(Any) {
			return true
		}
		switch act := actual.(type) {
		case *Primitive:
			return exp.Equals(act)
		case *LiteralType:
			return exp.Equals(act.Base)
		}
		return false

	case *LiteralType:
		act, ok := actual.(*LiteralType)
		return ok && exp.Equals(act)

	case *UnionType:
		for _, member := range exp.Types {
			if Compatible(member, actual) {
				return true
			}
		}
		return false

	case *ArrayType:
		act, ok := actual.(*ArrayType)
		return ok && Compatible(exp.ElementType, act.ElementType)

	case *TupleType:
		act, ok := actual.(*TupleType)
		if !ok || len(exp.ElementTypes) != len(act.ElementTypes) {
			return false
		}
		for i, elem := range exp.ElementTypes {
			if !Compatible(elem, act.ElementTypes[i]) {
				return false
			}
		}
		return true

	case *FunctionType:
		act, ok := actual.(*FunctionType)
		if !ok || len(exp.ParameterTypes) != len(act.ParameterTypes) {
			return false
		}
		for i, param := range exp.ParameterTypes {
			if !Compatible(param, act.ParameterTypes[i]) {
				return false
			}
		}
		return Compatible(exp.ReturnType, act.ReturnType)
	}

	return false
}
