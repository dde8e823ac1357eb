package types

// Type is the interface implemented by all type representations.
//
// The set of implementations is closed: Primitive, LiteralType, UnionType,
// ArrayType, TupleType and FunctionType. Values are immutable once built, so
// composites freely share nested element and return types.
type Type interface {
	// String renders the type the way diagnostics print it.
	String() string
	// Equals reports deep structural equality.
	Equals(other Type) bool

	// typeNode() is a marker method to ensure only types defined in this package
	// can be assigned to the Type interface.
	typeNode()
}
