package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tscheck/pkg/types"
)

func TestSymbolTableDefineResolve(t *testing.T) {
	st := NewSymbolTable()
	_, ok := st.Resolve("x")
	assert.False(t, ok)

	st.Define("x", types.Number)
	typ, ok := st.Resolve("x")
	require.True(t, ok)
	assert.Same(t, types.Number, typ)

	st.Define("x", types.String)
	typ, _ = st.Resolve("x")
	assert.Same(t, types.String, typ)
	assert.Equal(t, 1, st.Len())
}

func TestSymbolTableNamesSorted(t *testing.T) {
	st := NewSymbolTable()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		st.Define(name, types.Any)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, st.Names())
}
