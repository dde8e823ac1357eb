package checker

import (
	"tscheck/pkg/parser"
	"tscheck/pkg/types"
)

// checkStatement handles declarations; every other statement kind is
// accepted without inspection.
func (c *Checker) checkStatement(stmt parser.Statement) {
	switch s := stmt.(type) {
	case *parser.VarStatement:
		c.checkVarStatement(s)
	case *parser.FunctionDeclaration:
		c.checkFunctionDeclaration(s)
	case *parser.ExpressionStatement, *parser.ReturnStatement, *parser.BlockStatement,
		*parser.IfStatement, *parser.WhileStatement, *parser.EmptyStatement:
		// not checked
	default:
		debugPrintf("skipping unknown statement %T", stmt)
	}
}

// checkVarStatement binds each declarator. The declared type is the
// annotation, else the initializer's type, else any. An annotated
// declarator is bound before its initializer is evaluated.
func (c *Checker) checkVarStatement(stmt *parser.VarStatement) {
	for _, decl := range stmt.Declarations {
		name := decl.Name.Value

		if decl.TypeAnnotation == nil {
			declared := types.Type(types.Any)
			if decl.Value != nil {
				declared = c.EvalType(decl.Value)
			}
			c.symbols.Define(name, declared)
			continue
		}

		declared := c.CheckType(decl.TypeAnnotation)
		c.symbols.Define(name, declared)
		if decl.Value == nil {
			continue
		}
		actual := c.EvalType(decl.Value)
		if !types.Compatible(declared, actual) {
			c.addError(decl.Value, notAssignableMessage(actual, declared))
		}
	}
}

// checkFunctionDeclaration binds the parameters and the function itself in
// the flat table, then checks `return` statements directly in the body
// against the declared return type.
func (c *Checker) checkFunctionDeclaration(fn *parser.FunctionDeclaration) {
	params := make([]types.Type, 0, len(fn.Parameters))
	for _, param := range fn.Parameters {
		if param.IsRest {
			continue
		}
		paramType := types.Type(types.Any)
		if param.TypeAnnotation != nil {
			paramType = c.CheckType(param.TypeAnnotation)
		}
		c.symbols.Define(param.Name.Value, paramType)
		params = append(params, paramType)
	}

	returnType := types.Type(types.Any)
	if fn.ReturnType != nil {
		returnType = c.CheckType(fn.ReturnType)
	}
	c.symbols.Define(fn.Name.Value, types.NewFunctionType(params, returnType))

	if fn.Body == nil {
		return
	}
	for _, stmt := range fn.Body.Statements {
		ret, ok := stmt.(*parser.ReturnStatement)
		if !ok {
			c.checkStatement(stmt)
			continue
		}
		if ret.ReturnValue == nil {
			continue
		}
		actual := c.EvalType(ret.ReturnValue)
		if !types.Compatible(returnType, actual) {
			c.addError(ret.ReturnValue, notAssignableMessage(actual, returnType))
		}
	}
}
