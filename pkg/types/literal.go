package types

import (
	"math"
	"strconv"
)

// --- Literal Types ---

// LiteralType represents a specific literal value used as a type.
// Base is String, Number or Boolean and Value holds a string, float64 or bool
// accordingly.
type LiteralType struct {
	Base  *Primitive
	Value any
}

// NewStringLiteral returns the literal type "s".
func NewStringLiteral(s string) *LiteralType {
	return &LiteralType{Base: String, Value: s}
}

// NewNumberLiteral returns the literal type for n.
func NewNumberLiteral(n float64) *LiteralType {
	return &LiteralType{Base: Number, Value: n}
}

// NewBooleanLiteral returns the literal type true or false.
func NewBooleanLiteral(b bool) *LiteralType {
	return &LiteralType{Base: Boolean, Value: b}
}

func (lt *LiteralType) typeNode() {}

func (lt *LiteralType) String() string {
	switch v := lt.Value.(type) {
	case string:
		return `"` + v + `"`
	case float64:
		return FormatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return "<invalid literal>"
	}
}

func (lt *LiteralType) Equals(other Type) bool {
	otherLt, ok := other.(*LiteralType)
	if !ok {
		return false // Not a LiteralType
	}
	if lt == nil || otherLt == nil {
		return lt == otherLt
	}
	return lt.Base.Equals(otherLt.Base) && lt.Value == otherLt.Value
}

// FormatNumber renders n as the shortest decimal literal that reads back to
// the same value: 42, 1.5, 0.0001, 1000000000000000000000.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
