package types

import (
	"math"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
)

func TestPrimitiveRendering(t *testing.T) {
	for _, p := range Primitives {
		got, ok := PrimitiveByName(p.String())
		if assert.True(t, ok, "keyword %q not registered", p.Name) {
			assert.Same(t, p, got)
		}
	}
	_, ok := PrimitiveByName("Number")
	assert.False(t, ok)
}

func TestTypeRendering(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{NewStringLiteral("hello"), `"hello"`},
		{NewNumberLiteral(42), "42"},
		{NewNumberLiteral(1.5), "1.5"},
		{NewNumberLiteral(-0.25), "-0.25"},
		{NewNumberLiteral(1e21), "1000000000000000000000"},
		{NewNumberLiteral(math.NaN()), "NaN"},
		{NewNumberLiteral(math.Inf(-1)), "-Infinity"},
		{NewBooleanLiteral(true), "true"},
		{NewBooleanLiteral(false), "false"},
		{NewUnionType(Number, String, Null), "number | string | null"},
		{NewArrayType(Number), "number[]"},
		{NewArrayType(NewArrayType(String)), "string[][]"},
		{NewArrayType(NewUnionType(Number, String)), "number | string[]"},
		{NewTupleType(Number, String), "[number, string]"},
		{NewTupleType(), "[]"},
		{NewFunctionType([]Type{Number, String}, Boolean), "(number, string) => boolean"},
		{NewFunctionType(nil, Void), "() => void"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestStructuralEquality(t *testing.T) {
	shared := NewArrayType(Number)
	a := NewFunctionType([]Type{shared, NewTupleType(String)}, shared)
	b := NewFunctionType([]Type{NewArrayType(Number), NewTupleType(String)}, NewArrayType(Number))

	assert.True(t, a.Equals(b))
	assert.True(t, (&Primitive{Name: "number"}).Equals(Number))
	assert.False(t, NewUnionType(Number, String).Equals(NewUnionType(String, Number)))
	assert.False(t, NewArrayType(Number).Equals(NewTupleType(Number)))
	assert.False(t, NewNumberLiteral(1).Equals(NewStringLiteral("1")))

	if diff := deep.Equal(a, b); diff != nil {
		t.Error(diff)
	}
}

func TestSharedNestedTypes(t *testing.T) {
	elem := NewUnionType(Number, String)
	arr := NewArrayType(elem)
	fn := NewFunctionType([]Type{arr}, elem)

	assert.Same(t, elem, arr.ElementType)
	assert.Same(t, elem, fn.ReturnType)
	assert.Equal(t, "(number | string[]) => number | string", fn.String())
}
