package checker

import (
	"fmt"

	"tscheck/pkg/errors"
	"tscheck/pkg/parser"
	"tscheck/pkg/source"
	"tscheck/pkg/types"
)

const checkerDebug = false

func debugPrintf(format string, args ...interface{}) {
	if checkerDebug {
		fmt.Printf("[Checker] "+format+"\n", args...)
	}
}

// Checker performs structural type checking over parsed programs.
//
// A Checker keeps one flat symbol table and one diagnostic list for its
// whole lifetime. Checking several programs with the same instance
// accumulates bindings and diagnostics; nothing is reset between calls.
// A Checker is not safe for concurrent use; check independent programs
// with independent instances.
type Checker struct {
	symbols     *SymbolTable
	diagnostics *Diagnostics

	// source of the program currently being checked, attached to diagnostic
	// positions. nil outside CheckProgram.
	source *source.SourceFile
}

// NewChecker creates a checker with an empty symbol table and no diagnostics.
func NewChecker() *Checker {
	return &Checker{
		symbols:     NewSymbolTable(),
		diagnostics: &Diagnostics{},
	}
}

// CheckProgram checks every top-level statement of program in order.
func (c *Checker) CheckProgram(program *parser.Program) {
	if program == nil {
		return
	}
	c.source = program.Source
	defer func() { c.source = nil }()

	for _, stmt := range program.Statements {
		c.checkStatement(stmt)
	}
}

// Errors returns the accumulated diagnostic messages in emission order.
func (c *Checker) Errors() []string {
	return c.diagnostics.Messages()
}

// Diagnostics returns the accumulated diagnostics with their positions.
func (c *Checker) Diagnostics() []*errors.TypeError {
	return c.diagnostics.Errors()
}

// Symbols exposes the checker's symbol table for tooling.
func (c *Checker) Symbols() *SymbolTable {
	return c.symbols
}

func notAssignableMessage(actual, expected types.Type) string {
	return fmt.Sprintf("Type '%s' is not assignable to type '%s'", actual, expected)
}

func invalidBinaryOperationMessage(left, right types.Type) string {
	return fmt.Sprintf("The binary operation between '%s' and '%s' is not allowed", left, right)
}
