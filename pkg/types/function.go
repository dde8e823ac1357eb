package types

import (
	"fmt"
	"strings"
)

// FunctionType represents the type of a function.
type FunctionType struct {
	ParameterTypes []Type
	ReturnType     Type
}

// NewFunctionType returns (params...) => ret.
func NewFunctionType(params []Type, ret Type) *FunctionType {
	return &FunctionType{ParameterTypes: params, ReturnType: ret}
}

func (ft *FunctionType) String() string {
	params := make([]string, len(ft.ParameterTypes))
	for i, p := range ft.ParameterTypes {
		params[i] = typeString(p)
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), typeString(ft.ReturnType))
}
func (ft *FunctionType) typeNode() {}
func (ft *FunctionType) Equals(other Type) bool {
	otherFt, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if ft == nil || otherFt == nil {
		return ft == otherFt
	}
	return equalLists(ft.ParameterTypes, otherFt.ParameterTypes) &&
		equalTypes(ft.ReturnType, otherFt.ReturnType)
}
