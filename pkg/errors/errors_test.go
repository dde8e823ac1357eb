package errors

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tscheck/pkg/source"
)

func TestTypeErrorWithoutSpan(t *testing.T) {
	err := NewTypeError("Type 'string' is not assignable to type 'number'")
	assert.False(t, err.IsValid())
	assert.Equal(t, "Type Error: Type 'string' is not assignable to type 'number'", err.Error())
	assert.Equal(t, "Type", err.Kind())
}

func TestTypeErrorAtFormatsPosition(t *testing.T) {
	err := TypeErrorAt(Position{Line: 3, Column: 7}, "boom")
	assert.Equal(t, "Type Error at 3:7: boom", err.Error())
}

func TestCausedByUnwraps(t *testing.T) {
	cause := stderrors.New("bad escape")
	err := (&SyntaxError{Msg: "invalid string"}).CausedBy(cause)
	assert.True(t, stderrors.Is(err, cause))
}

func TestDisplayErrorsMarksSpan(t *testing.T) {
	src := source.FromFile("main.ts", "let a = 1;\nlet z: number = \"world\";\n")
	err := TypeErrorAt(Position{Line: 2, Column: 5, StartPos: 15, EndPos: 16, Source: src},
		"Type 'string' is not assignable to type 'number'")

	var buf bytes.Buffer
	DisplayErrors(&buf, []TscheckError{err}, DisplayOptions{Color: false})

	want := "main.ts:2:5: Type Error: Type 'string' is not assignable to type 'number'\n" +
		"  let z: number = \"world\";\n" +
		"      ^\n\n"
	require.Equal(t, want, buf.String())
}

func TestDisplayErrorsWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	DisplayErrors(&buf, []TscheckError{NewTypeError("oops")}, DisplayOptions{})
	assert.Equal(t, "Type Error: oops\n", buf.String())
}
