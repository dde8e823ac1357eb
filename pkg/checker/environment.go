package checker

import (
	"sort"

	"tscheck/pkg/types"
)

// SymbolTable is a single flat name→type scope. Function parameters,
// variables and functions all share it; a later binding for a name replaces
// the earlier one.
type SymbolTable struct {
	symbols map[string]types.Type
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]types.Type)}
}

// Define binds name to typ, overwriting any previous binding.
func (st *SymbolTable) Define(name string, typ types.Type) {
	debugPrintf("define %s: %s", name, typ)
	st.symbols[name] = typ
}

// Resolve looks up name.
func (st *SymbolTable) Resolve(name string) (types.Type, bool) {
	typ, ok := st.symbols[name]
	return typ, ok
}

// Len returns the number of bound names.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Names returns the bound names in sorted order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.symbols))
	for name := range st.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
