package types

// --- Primitive Types ---

// Primitive represents a fundamental, non-composite type.
type Primitive struct {
	Name string
}

func (p *Primitive) String() string {
	return p.Name
}
func (p *Primitive) typeNode() {}
func (p *Primitive) Equals(other Type) bool {
	otherP, ok := other.(*Primitive)
	if !ok {
		return false
	}
	if p == nil || otherP == nil {
		return p == otherP
	}
	return p.Name == otherP.Name
}

// Pre-defined instances for the primitive types
var (
	Any       = &Primitive{Name: "any"}
	Number    = &Primitive{Name: "number"}
	String    = &Primitive{Name: "string"}
	Boolean   = &Primitive{Name: "boolean"}
	Null      = &Primitive{Name: "null"}
	Undefined = &Primitive{Name: "undefined"}
	Never     = &Primitive{Name: "never"}
	BigInt    = &Primitive{Name: "bigint"}
	Symbol    = &Primitive{Name: "symbol"}
	Object    = &Primitive{Name: "object"}
	Unknown   = &Primitive{Name: "unknown"}
	Void      = &Primitive{Name: "void"}
)

// Primitives lists every primitive in declaration order.
var Primitives = []*Primitive{
	Any, Number, String, Boolean, Null, Undefined, Never, BigInt, Symbol, Object, Unknown, Void,
}

var primitivesByName = func() map[string]*Primitive {
	m := make(map[string]*Primitive, len(Primitives))
	for _, p := range Primitives {
		m[p.Name] = p
	}
	return m
}()

// PrimitiveByName returns the primitive whose keyword is name.
func PrimitiveByName(name string) (*Primitive, bool) {
	p, ok := primitivesByName[name]
	return p, ok
}

// Is reports whether t is exactly the primitive p.
func Is(t Type, p *Primitive) bool {
	return t != nil && p.Equals(t)
}
