package types

import "strings"

// --- Array Types ---

// ArrayType represents the type of an array. ElementType may be shared with
// other composites.
type ArrayType struct {
	ElementType Type
}

// NewArrayType returns elem[].
func NewArrayType(elem Type) *ArrayType {
	return &ArrayType{ElementType: elem}
}

func (at *ArrayType) String() string {
	return typeString(at.ElementType) + "[]"
}
func (at *ArrayType) typeNode() {}
func (at *ArrayType) Equals(other Type) bool {
	otherAt, ok := other.(*ArrayType)
	if !ok {
		return false
	}
	if at == nil || otherAt == nil {
		return at == otherAt
	}
	return equalTypes(at.ElementType, otherAt.ElementType)
}

// --- Tuple Types ---

// TupleType represents a tuple type with fixed-length, ordered elements.
type TupleType struct {
	ElementTypes []Type
}

// NewTupleType returns [elems...].
func NewTupleType(elems ...Type) *TupleType {
	return &TupleType{ElementTypes: elems}
}

func (tt *TupleType) String() string {
	var elements strings.Builder
	elements.WriteString("[")
	for i, elemType := range tt.ElementTypes {
		if i > 0 {
			elements.WriteString(", ")
		}
		elements.WriteString(typeString(elemType))
	}
	elements.WriteString("]")
	return elements.String()
}

func (tt *TupleType) typeNode() {}

func (tt *TupleType) Equals(other Type) bool {
	otherTt, ok := other.(*TupleType)
	if !ok {
		return false
	}
	if tt == nil || otherTt == nil {
		return tt == otherTt
	}
	return equalLists(tt.ElementTypes, otherTt.ElementTypes)
}
