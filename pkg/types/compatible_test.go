package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatiblePrimitiveTable(t *testing.T) {
	for _, expected := range Primitives {
		for _, actual := range Primitives {
			want := expected == Any || expected == actual
			got := Compatible(expected, actual)
			assert.Equal(t, want, got, "Compatible(%s, %s)", expected, actual)
		}
	}
}

func TestAnyIsOnlyASinkOnTheExpectedSide(t *testing.T) {
	actuals := []Type{
		NewNumberLiteral(1),
		NewStringLiteral("s"),
		NewBooleanLiteral(false),
		NewUnionType(Number, String),
		NewArrayType(String),
		NewTupleType(Number, Boolean),
		NewFunctionType([]Type{Number}, Void),
	}
	for _, actual := range actuals {
		assert.True(t, Compatible(Any, actual), "any should accept %s", actual)
		assert.False(t, Compatible(actual, Any), "%s should not accept any", actual)
	}
	assert.False(t, Compatible(Number, Any))
}

func TestLiteralWideningIsOneDirectional(t *testing.T) {
	tests := []struct {
		base    *Primitive
		literal *LiteralType
	}{
		{Number, NewNumberLiteral(42)},
		{String, NewStringLiteral("hello")},
		{Boolean, NewBooleanLiteral(true)},
	}
	for _, tt := range tests {
		assert.True(t, Compatible(tt.base, tt.literal), "%s <- %s", tt.base, tt.literal)
		assert.False(t, Compatible(tt.literal, tt.base), "%s <- %s", tt.literal, tt.base)
	}
	assert.False(t, Compatible(String, NewNumberLiteral(1)))
	assert.False(t, Compatible(Boolean, NewStringLiteral("true")))
}

func TestLiteralEquality(t *testing.T) {
	assert.True(t, Compatible(NewNumberLiteral(42), NewNumberLiteral(42)))
	assert.False(t, Compatible(NewNumberLiteral(42), NewNumberLiteral(43)))
	assert.True(t, Compatible(NewStringLiteral("hello"), NewStringLiteral("hello")))
	assert.False(t, Compatible(NewStringLiteral("hello"), NewStringLiteral("world")))
	assert.True(t, Compatible(NewBooleanLiteral(true), NewBooleanLiteral(true)))
	assert.False(t, Compatible(NewBooleanLiteral(true), NewBooleanLiteral(false)))
	// Same raw spelling, different kinds.
	assert.False(t, Compatible(NewStringLiteral("42"), NewNumberLiteral(42)))
}

func TestUnionExpected(t *testing.T) {
	numOrStr := NewUnionType(Number, String)
	assert.True(t, Compatible(numOrStr, Number))
	assert.True(t, Compatible(numOrStr, String))
	assert.True(t, Compatible(numOrStr, NewStringLiteral("x")))
	assert.False(t, Compatible(numOrStr, Boolean))

	// The actual side is never decomposed, so a union is not compatible with
	// a union made of the same members.
	assert.False(t, Compatible(numOrStr, NewUnionType(Number, String)))
	assert.False(t, Compatible(Number, numOrStr))
	assert.True(t, Compatible(NewUnionType(Any, Number), numOrStr))
}

func TestStructuralRecursion(t *testing.T) {
	t.Run("arrays", func(t *testing.T) {
		assert.True(t, Compatible(NewArrayType(Number), NewArrayType(Number)))
		assert.False(t, Compatible(NewArrayType(String), NewArrayType(Number)))
		assert.True(t, Compatible(NewArrayType(Any), NewArrayType(Number)))
		assert.False(t, Compatible(NewArrayType(Number), NewArrayType(Any)))
		assert.False(t, Compatible(NewArrayType(Number), NewTupleType(Number)))
	})

	t.Run("tuples", func(t *testing.T) {
		assert.True(t, Compatible(NewTupleType(Number, String), NewTupleType(Number, String)))
		assert.True(t, Compatible(NewTupleType(Number, String), NewTupleType(NewNumberLiteral(1), String)))
		assert.False(t, Compatible(NewTupleType(Number, String), NewTupleType(String, Number)))
		for _, n := range []int{0, 1, 3} {
			elems := make([]Type, n)
			for i := range elems {
				elems[i] = Any
			}
			assert.False(t, Compatible(NewTupleType(Any, Any), NewTupleType(elems...)), "length %d", n)
		}
	})

	t.Run("functions", func(t *testing.T) {
		func1 := NewFunctionType([]Type{Number}, Boolean)
		func2 := NewFunctionType([]Type{Number}, Boolean)
		func3 := NewFunctionType([]Type{String}, Boolean)
		assert.True(t, Compatible(func1, func2))
		assert.False(t, Compatible(func1, func3))
		assert.False(t, Compatible(func1, NewFunctionType([]Type{Number, Number}, Boolean)))
		assert.False(t, Compatible(func1, NewFunctionType([]Type{Number}, String)))
	})

	t.Run("function parameters are covariant", func(t *testing.T) {
		wide := NewFunctionType([]Type{Number}, Void)
		narrow := NewFunctionType([]Type{NewNumberLiteral(1)}, Void)
		assert.True(t, Compatible(wide, narrow))
		assert.False(t, Compatible(narrow, wide))
	})
}

func TestCompatibleNilIsNeverCompatible(t *testing.T) {
	assert.False(t, Compatible(nil, Number))
	assert.False(t, Compatible(Any, nil))
}

func ExampleCompatible() {
	fmt.Println(Compatible(Number, NewNumberLiteral(42)))
	fmt.Println(Compatible(NewNumberLiteral(42), Number))
	// Output:
	// true
	// false
}
