package parser

import (
	"strings"
	"testing"

	"tscheck/pkg/lexer"
)

func parseProgram(t *testing.T, input string) *Program {
	t.Helper()
	program, errs := NewParser(lexer.NewLexer(input)).ParseProgram()
	if len(errs) != 0 {
		t.Errorf("parser had %d errors:", len(errs))
		for _, err := range errs {
			t.Errorf("  %s", err.Error())
		}
		t.FailNow()
	}
	return program
}

func TestVarStatements(t *testing.T) {
	program := parseProgram(t, `let a: number = 1, b = "x";
const c = [1, 2];
var d;`)

	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}

	first, ok := program.Statements[0].(*VarStatement)
	if !ok {
		t.Fatalf("expected *VarStatement, got %T", program.Statements[0])
	}
	if first.Kind() != "let" || len(first.Declarations) != 2 {
		t.Fatalf("unexpected declaration %s", first.String())
	}
	a := first.Declarations[0]
	if a.Name.Value != "a" {
		t.Errorf("expected name a, got %s", a.Name.Value)
	}
	kw, ok := a.TypeAnnotation.(*KeywordType)
	if !ok || kw.Name != "number" {
		t.Errorf("expected number annotation, got %#v", a.TypeAnnotation)
	}
	if lit, ok := a.Value.(*NumberLiteral); !ok || lit.Value != 1 {
		t.Errorf("expected NumberLiteral 1, got %#v", a.Value)
	}
	b := first.Declarations[1]
	if b.TypeAnnotation != nil {
		t.Errorf("expected no annotation for b, got %s", b.TypeAnnotation.String())
	}
	if lit, ok := b.Value.(*StringLiteral); !ok || lit.Value != "x" {
		t.Errorf("expected StringLiteral x, got %#v", b.Value)
	}

	d := program.Statements[2].(*VarStatement)
	if d.Kind() != "var" || d.Declarations[0].Value != nil {
		t.Errorf("unexpected var statement %s", d.String())
	}
}

func TestFunctionDeclaration(t *testing.T) {
	program := parseProgram(t, `function add(x: number, y?: string, ...rest: number[]): number {
  if (x > 0) {
    return x;
  } else return 0
  while (x) x = x - 1;
  return;
}`)

	fn, ok := program.Statements[0].(*FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *FunctionDeclaration, got %T", program.Statements[0])
	}
	if fn.Name.Value != "add" {
		t.Errorf("expected name add, got %s", fn.Name.Value)
	}
	if len(fn.Parameters) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(fn.Parameters))
	}
	if fn.Parameters[1].Optional != true || fn.Parameters[2].IsRest != true {
		t.Errorf("unexpected parameter flags: %s", fn.String())
	}
	if got := fn.Parameters[2].TypeAnnotation.String(); got != "number[]" {
		t.Errorf("expected rest type number[], got %s", got)
	}
	if fn.ReturnType.String() != "number" {
		t.Errorf("expected return type number, got %s", fn.ReturnType.String())
	}
	if len(fn.Body.Statements) != 3 {
		t.Fatalf("expected 3 body statements, got %d", len(fn.Body.Statements))
	}
	ifStmt, ok := fn.Body.Statements[0].(*IfStatement)
	if !ok {
		t.Fatalf("expected *IfStatement, got %T", fn.Body.Statements[0])
	}
	if _, ok := ifStmt.Alternative.(*ReturnStatement); !ok {
		t.Errorf("expected else branch to be a return, got %T", ifStmt.Alternative)
	}
	if _, ok := fn.Body.Statements[1].(*WhileStatement); !ok {
		t.Errorf("expected *WhileStatement, got %T", fn.Body.Statements[1])
	}
	if ret := fn.Body.Statements[2].(*ReturnStatement); ret.ReturnValue != nil {
		t.Errorf("expected bare return, got %s", ret.String())
	}
}

func TestReturnRespectsLineBreaks(t *testing.T) {
	program := parseProgram(t, "function f() {\n  return\n  42\n}")
	fn := program.Statements[0].(*FunctionDeclaration)
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body.Statements))
	}
	if ret := fn.Body.Statements[0].(*ReturnStatement); ret.ReturnValue != nil {
		t.Errorf("expected bare return before a line break, got %s", ret.String())
	}
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"a = b = c", "(a = (b = c))"},
		{"a += 1", "(a += 1)"},
		{"-a * b", "((-a) * b)"},
		{"!a && b || c", "(((!a) && b) || c)"},
		{"a ?? b", "(a ?? b)"},
		{"x < y == true", "((x < y) == true)"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"f(a, b + 1)[0].length", "f(a, (b + 1))[0].length"},
		{`typeof x === "string"`, `((typeof x) === "string")`},
		{"(1 + 2) * 3", "(((1 + 2)) * 3)"},
		{"a | b & c ^ d", "(a | ((b & c) ^ d))"},
		{"1 << 2 + 3", "(1 << (2 + 3))"},
		{"a >>> 1 >= 0", "((a >>> 1) >= 0)"},
		{"x++ + ++y", "((x++) + (++y))"},
		{"k in obj", "(k in obj)"},
		{"[1, , ...rest]", "[1, , ...rest]"},
		{"x => x + 1", "(x) => (x + 1)"},
		{"(a, b) => { return a; }", "(a, b) => { return a; }"},
		{"{a: 1, b}", "{a: 1, b: b}"},
		{"function (x: number): string { return x; }", "function(x: number): string { return x; }"},
		{"obj.if", "obj.if"},
		{"5n", "5n"},
		{"0x10", "16"},
		{"1_000", "1000"},
		{"1e21", "1000000000000000000000"},
	}

	for _, tt := range tests {
		expr, errs := ParseExpression(tt.input)
		if len(errs) != 0 {
			t.Errorf("%q: unexpected errors %v", tt.input, errs)
			continue
		}
		if got := expr.String(); got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestLogicalOperatorsGetTheirOwnNode(t *testing.T) {
	for _, op := range []string{"&&", "||", "??"} {
		expr, errs := ParseExpression("a " + op + " b")
		if len(errs) != 0 {
			t.Fatalf("unexpected errors %v", errs)
		}
		if _, ok := expr.(*LogicalExpression); !ok {
			t.Errorf("%s: expected *LogicalExpression, got %T", op, expr)
		}
	}
	expr, _ := ParseExpression("a & b")
	if _, ok := expr.(*InfixExpression); !ok {
		t.Errorf("expected *InfixExpression for &, got %T", expr)
	}
}

func TestArrayLiteralHoles(t *testing.T) {
	expr, errs := ParseExpression("[, 1, ...xs,]")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	arr := expr.(*ArrayLiteral)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	if _, ok := arr.Elements[0].(*OmittedExpression); !ok {
		t.Errorf("expected a hole first, got %T", arr.Elements[0])
	}
	if _, ok := arr.Elements[2].(*SpreadElement); !ok {
		t.Errorf("expected a spread last, got %T", arr.Elements[2])
	}
}

func TestTypeAnnotationParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"number", "number"},
		{"undefined", "undefined"},
		{"void", "void"},
		{"null | undefined", "null | undefined"},
		{"string[]", "string[]"},
		{"number[][]", "number[][]"},
		{"(string | number)[]", "(string | number)[]"},
		{"[number, string]", "[number, string]"},
		{"[]", "[]"},
		{"| 'a' | 'b'", `"a" | "b"`},
		{"-1 | true", "-1 | true"},
		{"(a: number, b) => string", "(a: number, b) => string"},
		{"() => void", "() => void"},
		{"(x) => number | string", "(x) => number | string"},
		{"(...xs: number[]) => void", "(...xs: number[]) => void"},
		{"Foo.Bar", "Foo.Bar"},
		{"(number)", "number"},
		{"A | (B | C)", "A | (B | C)"},
		{"(() => void)[]", "(() => void)[]"},
	}

	for _, tt := range tests {
		typ, errs := ParseType(tt.input)
		if len(errs) != 0 {
			t.Errorf("%q: unexpected errors %v", tt.input, errs)
			continue
		}
		if got := typ.String(); got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestUnionMembersStayOrdered(t *testing.T) {
	typ, errs := ParseType("string | number | boolean")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	union, ok := typ.(*UnionTypeNode)
	if !ok || len(union.Types) != 3 {
		t.Fatalf("expected a flat 3-member union, got %#v", typ)
	}
	for i, want := range []string{"string", "number", "boolean"} {
		if union.Types[i].String() != want {
			t.Errorf("member %d: expected %s, got %s", i, want, union.Types[i].String())
		}
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"let = 5;", []string{"expected next token to be IDENT, got '=' instead"}},
		{"let x = 1 2;", []string{"expected ';' but found number '2'"}},
		{"const c;", []string{"'const' declarations must be initialized"}},
		{"let x: = 1;", []string{"expected a type, got '='"}},
		{`let s = "abc`, []string{"unterminated string literal"}},
		{"let x = 1 +;", []string{"unexpected ';'"}},
		{"function f(1) {}", []string{"expected parameter name, got number '1'"}},
		{"1 = 2;", []string{"invalid left-hand side in assignment"}},
		{"let a: Array<number> = [];", []string{"generic type arguments are not supported"}},
		{"let = 1;\nlet y = ;\nlet z = 3;", []string{
			"expected next token to be IDENT, got '=' instead",
			"unexpected ';'",
		}},
	}

	for _, tt := range tests {
		_, errs := NewParser(lexer.NewLexer(tt.input)).ParseProgram()
		if len(errs) != len(tt.expected) {
			t.Errorf("%q: expected %d errors, got %d: %v", tt.input, len(tt.expected), len(errs), errs)
			continue
		}
		for i, msg := range tt.expected {
			if errs[i].Message() != msg {
				t.Errorf("%q: error %d: expected %q, got %q", tt.input, i, msg, errs[i].Message())
			}
			if errs[i].Kind() != "Syntax" {
				t.Errorf("%q: expected a syntax error, got %s", tt.input, errs[i].Kind())
			}
		}
	}
}

func TestRecoveryKeepsLaterStatements(t *testing.T) {
	program, errs := NewParser(lexer.NewLexer("let = 1;\nlet z = 3;")).ParseProgram()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if len(program.Statements) != 1 || !strings.HasPrefix(program.Statements[0].String(), "let z") {
		t.Errorf("expected the second declaration to survive, got %q", program.String())
	}
}

func TestErrorPositions(t *testing.T) {
	_, errs := NewParser(lexer.NewLexer("let ok = 1;\nlet = 2;")).ParseProgram()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	pos := errs[0].Pos()
	if pos.Line != 2 || pos.Column != 5 {
		t.Errorf("expected error at 2:5, got %d:%d", pos.Line, pos.Column)
	}
	if pos.Source == nil {
		t.Errorf("expected error to carry its source")
	}
}

func TestDeclaratorPositions(t *testing.T) {
	program := parseProgram(t, "let x = 1;\nlet yy: string = x;")
	decl := program.Statements[1].(*VarStatement).Declarations[0]
	if decl.Token.Line != 2 || decl.Token.Column != 5 {
		t.Errorf("expected declarator at 2:5, got %d:%d", decl.Token.Line, decl.Token.Column)
	}
	if decl.Value.(*Identifier).Token.Column != 18 {
		t.Errorf("expected initializer at column 18, got %d", decl.Value.(*Identifier).Token.Column)
	}
}

func TestProgramString(t *testing.T) {
	program := parseProgram(t, "let x: number | string = 1; function f(a): void {}")
	expected := "let x: number | string = 1;\nfunction f(a): void { }\n"
	if program.String() != expected {
		t.Errorf("expected %q, got %q", expected, program.String())
	}
}

func TestArenaReuse(t *testing.T) {
	arena := NewASTArena()
	p := NewParserWithArena(lexer.NewLexer("let a = b + c; f(x).y;"), arena)
	if _, errs := p.ParseProgram(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if arena.Len() == 0 {
		t.Fatalf("expected nodes to be allocated from the arena")
	}
	arena.Reset()
	if arena.Len() != 0 {
		t.Errorf("expected empty arena after Reset, got %d nodes", arena.Len())
	}
}
