package types

import "strings"

// --- Union Types ---

// UnionType represents a union of types (e.g., string | number).
// Members keep their written order; nothing is flattened, sorted or deduplicated.
type UnionType struct {
	Types []Type
}

// NewUnionType builds a union from its members in order.
func NewUnionType(ts ...Type) *UnionType {
	return &UnionType{Types: ts}
}

func (ut *UnionType) String() string {
	parts := make([]string, len(ut.Types))
	for i, t := range ut.Types {
		parts[i] = typeString(t)
	}
	return strings.Join(parts, " | ")
}
func (ut *UnionType) typeNode() {}
func (ut *UnionType) Equals(other Type) bool {
	otherUt, ok := other.(*UnionType)
	if !ok {
		return false
	}
	if ut == nil || otherUt == nil {
		return ut == otherUt
	}
	return equalLists(ut.Types, otherUt.Types)
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func equalTypes(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func equalLists(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalTypes(a[i], b[i]) {
			return false
		}
	}
	return true
}
