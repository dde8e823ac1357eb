package driver

import (
	"fmt"
	"io"
	"log"
	"os"

	"tscheck/pkg/checker"
	"tscheck/pkg/errors"
	"tscheck/pkg/lexer"
	"tscheck/pkg/parser"
	"tscheck/pkg/source"
	"tscheck/pkg/types"
)

const debugDriver = false

func debugPrintf(format string, args ...interface{}) {
	if debugDriver {
		fmt.Printf(format, args...)
	}
}

// Session is a persistent checking session. Bindings and diagnostics from
// one CheckSource call stay visible to the next, so a file can be checked
// against a prelude or a REPL can build on earlier input.
type Session struct {
	checker *checker.Checker
	arena   *parser.ASTArena
	logger  *log.Logger
}

// Result is the outcome of checking one source. When SyntaxErrors is
// non-empty the checker did not run and the type fields are empty.
type Result struct {
	Source       *source.SourceFile
	SyntaxErrors []errors.TscheckError
	TypeErrors   []*errors.TypeError
	Messages     []string
}

// Symbol is one entry of a symbol table snapshot.
type Symbol struct {
	Name string
	Type types.Type
}

// NewSession creates a session with a fresh checker.
func NewSession() *Session {
	return &Session{
		checker: checker.NewChecker(),
		arena:   parser.NewASTArena(),
		logger:  log.New(io.Discard, "", 0),
	}
}

// SetLogger routes progress messages to logger. nil silences them.
func (s *Session) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s.logger = logger
}

// CheckSource parses src and, when it parsed cleanly, type checks it. The
// returned diagnostics are only the ones produced by this call.
func (s *Session) CheckSource(src *source.SourceFile) Result {
	result := Result{Source: src}

	// The checker keeps types, never nodes, so the arena can be recycled.
	s.arena.Reset()
	p := parser.NewParserWithArena(lexer.NewLexerWithSource(src), s.arena)
	program, parseErrs := p.ParseProgram()
	if len(parseErrs) > 0 {
		s.logger.Printf("%s: %d syntax error(s)", src.DisplayPath(), len(parseErrs))
		result.SyntaxErrors = parseErrs
		return result
	}
	debugPrintf("// [Driver] parsed %s: %d statements\n", src.DisplayPath(), len(program.Statements))

	before := len(s.checker.Errors())
	s.checker.CheckProgram(program)
	result.TypeErrors = s.checker.Diagnostics()[before:]
	result.Messages = s.checker.Errors()[before:]
	s.logger.Printf("%s: %d statement(s), %d type error(s)", src.DisplayPath(), len(program.Statements), len(result.TypeErrors))
	return result
}

// CheckString checks an inline snippet.
func (s *Session) CheckString(code string) Result {
	return s.CheckSource(source.NewEvalSource(code))
}

// CheckFile reads and checks the file at path.
func (s *Session) CheckFile(path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return s.CheckSource(source.FromFile(path, string(content))), nil
}

// EvalResult is the outcome of evaluating a single expression.
type EvalResult struct {
	Type         types.Type
	SyntaxErrors []errors.TscheckError
	TypeErrors   []*errors.TypeError
}

// EvalExpression parses input as one expression and evaluates its type
// against the session's current bindings.
func (s *Session) EvalExpression(input string) EvalResult {
	expr, parseErrs := parser.ParseExpression(input)
	if len(parseErrs) > 0 {
		return EvalResult{SyntaxErrors: parseErrs}
	}
	before := len(s.checker.Errors())
	typ := s.checker.EvalType(expr)
	return EvalResult{Type: typ, TypeErrors: s.checker.Diagnostics()[before:]}
}

// ResolveType parses input as a type annotation and converts it.
func (s *Session) ResolveType(input string) (types.Type, []errors.TscheckError) {
	node, parseErrs := parser.ParseType(input)
	if len(parseErrs) > 0 {
		return nil, parseErrs
	}
	return s.checker.CheckType(node), nil
}

// Errors returns every diagnostic message recorded by the session so far.
func (s *Session) Errors() []string {
	return s.checker.Errors()
}

// Symbols returns a snapshot of the symbol table sorted by name.
func (s *Session) Symbols() []Symbol {
	table := s.checker.Symbols()
	names := table.Names()
	out := make([]Symbol, 0, len(names))
	for _, name := range names {
		typ, _ := table.Resolve(name)
		out = append(out, Symbol{Name: name, Type: typ})
	}
	return out
}

// HasErrors reports whether r carries any diagnostic.
func (r Result) HasErrors() bool {
	return len(r.SyntaxErrors) > 0 || len(r.TypeErrors) > 0
}

// AllErrors returns syntax errors followed by type errors.
func (r Result) AllErrors() []errors.TscheckError {
	all := make([]errors.TscheckError, 0, len(r.SyntaxErrors)+len(r.TypeErrors))
	all = append(all, r.SyntaxErrors...)
	for _, e := range r.TypeErrors {
		all = append(all, e)
	}
	return all
}

// DisplayResult prints r's diagnostics to w and reports whether it was clean.
func DisplayResult(w io.Writer, r Result, opts errors.DisplayOptions) bool {
	if !r.HasErrors() {
		return true
	}
	errors.DisplayErrors(w, r.AllErrors(), opts)
	return false
}
