package types

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
)

func TestInferFromLiteral(t *testing.T) {
	tests := []struct {
		text string
		want Type
	}{
		{"null", Null},
		{"42", NewNumberLiteral(42)},
		{"3.25", NewNumberLiteral(3.25)},
		{"true", NewBooleanLiteral(true)},
		{"false", NewBooleanLiteral(false)},
		{"hello", NewStringLiteral("hello")},
		{`"hello"`, NewStringLiteral("hello")},
		{"'quoted'", NewStringLiteral("quoted")},
		{`"42"`, NewNumberLiteral(42)},
	}
	for _, tt := range tests {
		if diff := deep.Equal(InferFromLiteral(tt.text), tt.want); diff != nil {
			t.Errorf("InferFromLiteral(%q): %v", tt.text, diff)
		}
	}
}

func TestGetWidenedType(t *testing.T) {
	assert.Same(t, Number, GetWidenedType(NewNumberLiteral(7)))
	assert.Same(t, String, GetWidenedType(NewStringLiteral("s")))
	assert.Same(t, Boolean, GetWidenedType(NewBooleanLiteral(true)))
	arr := NewArrayType(NewNumberLiteral(1))
	assert.Same(t, arr, GetWidenedType(arr))
}

func TestDeeplyWidenType(t *testing.T) {
	fn := NewFunctionType(
		[]Type{NewTupleType(NewStringLiteral("a"), Number)},
		NewArrayType(NewUnionType(NewBooleanLiteral(true), Null)),
	)
	want := NewFunctionType(
		[]Type{NewTupleType(String, Number)},
		NewArrayType(NewUnionType(Boolean, Null)),
	)
	if diff := deep.Equal(DeeplyWidenType(fn), Type(want)); diff != nil {
		t.Error(diff)
	}

	plain := NewArrayType(Number)
	assert.Same(t, plain, DeeplyWidenType(plain))
}
