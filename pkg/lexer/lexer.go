package lexer

import (
	"fmt"
	"strings"

	"tscheck/pkg/source"
)

const lexerDebug = false

func debugPrintf(format string, args ...interface{}) {
	if lexerDebug {
		fmt.Printf("[Lexer] "+format+"\n", args...)
	}
}

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // The token text; for STRING the decoded value, for BIGINT the digits without 'n'
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number (rune index) where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Token Types ---
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown token/character; Literal holds the reason
	EOF     TokenType = "EOF"

	// Identifiers + Literals
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER" // 123, 45.67, 0xff, 1e3
	BIGINT TokenType = "BIGINT" // 123n
	STRING TokenType = "STRING" // "hello" or 'hello'

	// Arithmetic
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	REMAINDER TokenType = "%"
	EXPONENT  TokenType = "**"

	// Bitwise and shifts
	BITWISE_AND          TokenType = "&"
	PIPE                 TokenType = "|" // bitwise or, and union in type position
	BITWISE_XOR          TokenType = "^"
	BITWISE_NOT          TokenType = "~"
	LEFT_SHIFT           TokenType = "<<"
	RIGHT_SHIFT          TokenType = ">>"
	UNSIGNED_RIGHT_SHIFT TokenType = ">>>"

	// Comparison
	LT            TokenType = "<"
	GT            TokenType = ">"
	LE            TokenType = "<="
	GE            TokenType = ">="
	EQ            TokenType = "=="
	NOT_EQ        TokenType = "!="
	STRICT_EQ     TokenType = "==="
	STRICT_NOT_EQ TokenType = "!=="

	// Logical
	BANG        TokenType = "!"
	LOGICAL_AND TokenType = "&&"
	LOGICAL_OR  TokenType = "||"
	COALESCE    TokenType = "??"

	// Assignment
	ASSIGN                      TokenType = "="
	PLUS_ASSIGN                 TokenType = "+="
	MINUS_ASSIGN                TokenType = "-="
	ASTERISK_ASSIGN             TokenType = "*="
	SLASH_ASSIGN                TokenType = "/="
	REMAINDER_ASSIGN            TokenType = "%="
	EXPONENT_ASSIGN             TokenType = "**="
	BITWISE_AND_ASSIGN          TokenType = "&="
	BITWISE_OR_ASSIGN           TokenType = "|="
	BITWISE_XOR_ASSIGN          TokenType = "^="
	LEFT_SHIFT_ASSIGN           TokenType = "<<="
	RIGHT_SHIFT_ASSIGN          TokenType = ">>="
	UNSIGNED_RIGHT_SHIFT_ASSIGN TokenType = ">>>="
	LOGICAL_AND_ASSIGN          TokenType = "&&="
	LOGICAL_OR_ASSIGN           TokenType = "||="
	COALESCE_ASSIGN             TokenType = "??="

	// Increment/Decrement
	INC TokenType = "++"
	DEC TokenType = "--"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	QUESTION  TokenType = "?"
	DOT       TokenType = "."
	SPREAD    TokenType = "..."
	ARROW     TokenType = "=>"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	LET        TokenType = "LET"
	CONST      TokenType = "CONST"
	VAR        TokenType = "VAR"
	FUNCTION   TokenType = "FUNCTION"
	RETURN     TokenType = "RETURN"
	IF         TokenType = "IF"
	ELSE       TokenType = "ELSE"
	WHILE      TokenType = "WHILE"
	TRUE       TokenType = "TRUE"
	FALSE      TokenType = "FALSE"
	NULL       TokenType = "NULL"
	IN         TokenType = "IN"
	INSTANCEOF TokenType = "INSTANCEOF"
	TYPEOF     TokenType = "TYPEOF"
	VOID       TokenType = "VOID"
)

var keywords = map[string]TokenType{
	"let":        LET,
	"const":      CONST,
	"var":        VAR,
	"function":   FUNCTION,
	"return":     RETURN,
	"if":         IF,
	"else":       ELSE,
	"while":      WHILE,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"typeof":     TYPEOF,
	"void":       VOID,
}

// LookupIdent checks the keywords table for an identifier.
// "undefined" is an ordinary identifier, as in JavaScript.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// punctuators is ordered longest first so the scanner always takes the
// longest match.
var punctuators = []struct {
	literal string
	typ     TokenType
}{
	{">>>=", UNSIGNED_RIGHT_SHIFT_ASSIGN},
	{"...", SPREAD},
	{"===", STRICT_EQ},
	{"!==", STRICT_NOT_EQ},
	{"**=", EXPONENT_ASSIGN},
	{"<<=", LEFT_SHIFT_ASSIGN},
	{">>=", RIGHT_SHIFT_ASSIGN},
	{">>>", UNSIGNED_RIGHT_SHIFT},
	{"&&=", LOGICAL_AND_ASSIGN},
	{"||=", LOGICAL_OR_ASSIGN},
	{"??=", COALESCE_ASSIGN},
	{"=>", ARROW},
	{"==", EQ},
	{"!=", NOT_EQ},
	{"<=", LE},
	{">=", GE},
	{"&&", LOGICAL_AND},
	{"||", LOGICAL_OR},
	{"??", COALESCE},
	{"**", EXPONENT},
	{"<<", LEFT_SHIFT},
	{">>", RIGHT_SHIFT},
	{"++", INC},
	{"--", DEC},
	{"+=", PLUS_ASSIGN},
	{"-=", MINUS_ASSIGN},
	{"*=", ASTERISK_ASSIGN},
	{"/=", SLASH_ASSIGN},
	{"%=", REMAINDER_ASSIGN},
	{"&=", BITWISE_AND_ASSIGN},
	{"|=", BITWISE_OR_ASSIGN},
	{"^=", BITWISE_XOR_ASSIGN},
	{"=", ASSIGN},
	{"+", PLUS},
	{"-", MINUS},
	{"*", ASTERISK},
	{"/", SLASH},
	{"%", REMAINDER},
	{"&", BITWISE_AND},
	{"|", PIPE},
	{"^", BITWISE_XOR},
	{"~", BITWISE_NOT},
	{"<", LT},
	{">", GT},
	{"!", BANG},
	{"?", QUESTION},
	{",", COMMA},
	{";", SEMICOLON},
	{":", COLON},
	{".", DOT},
	{"(", LPAREN},
	{")", RPAREN},
	{"{", LBRACE},
	{"}", RBRACE},
	{"[", LBRACKET},
	{"]", RBRACKET},
}

// Lexer holds the state of the scanner.
type Lexer struct {
	source       *source.SourceFile
	input        string
	position     int  // byte offset of ch
	readPosition int  // byte offset after ch
	ch           byte // current byte, 0 at EOF
	line         int  // 1-based line of ch
	column       int  // 1-based rune column of ch
}

// LexerState is a snapshot used by the parser for bounded lookahead.
type LexerState struct {
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

// NewLexer creates a Lexer over an inline snippet.
func NewLexer(input string) *Lexer {
	return NewLexerWithSource(source.NewEvalSource(input))
}

// NewLexerWithSource creates a Lexer over a source file.
func NewLexerWithSource(src *source.SourceFile) *Lexer {
	l := &Lexer{source: src, input: src.Content, line: 1}
	l.readChar()
	return l
}

// GetSource returns the source file being scanned.
func (l *Lexer) GetSource() *source.SourceFile {
	return l.source
}

// SaveState captures the scanner position.
func (l *Lexer) SaveState() LexerState {
	return LexerState{l.position, l.readPosition, l.ch, l.line, l.column}
}

// RestoreState rewinds the scanner to a saved position.
func (l *Lexer) RestoreState(s LexerState) {
	l.position, l.readPosition, l.ch, l.line, l.column = s.position, s.readPosition, s.ch, s.line, s.column
}

// readChar advances one byte, keeping line and rune column current.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	// UTF-8 continuation bytes belong to the previous rune's column.
	if l.ch&0xC0 != 0x80 {
		l.column++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// skipWhitespaceAndComments consumes whitespace, // and /* */ comments.
// It returns false when a block comment is left unterminated.
func (l *Lexer) skipWhitespaceAndComments() bool {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for {
				if l.atEOF() {
					return false
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
		default:
			return true
		}
	}
	return true
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() Token {
	startLine, startCol, startPos := l.line, l.column, l.position
	if !l.skipWhitespaceAndComments() {
		return Token{Type: ILLEGAL, Literal: "unterminated block comment",
			Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}

	// Capture token start position *after* skipping whitespace
	startLine, startCol, startPos = l.line, l.column, l.position
	mk := func(t TokenType, literal string) Token {
		return Token{Type: t, Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}

	if l.atEOF() {
		return mk(EOF, "")
	}

	switch {
	case isIdentStart(l.ch):
		ident := l.readIdentifier()
		return mk(LookupIdent(ident), ident)
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		typ, literal, err := l.readNumber()
		if err != "" {
			return mk(ILLEGAL, err)
		}
		return mk(typ, literal)
	case l.ch == '"' || l.ch == '\'':
		value, err := l.readString()
		if err != "" {
			return mk(ILLEGAL, err)
		}
		return mk(STRING, value)
	}

	rest := l.input[l.position:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p.literal) {
			for range p.literal {
				l.readChar()
			}
			return mk(p.typ, p.literal)
		}
	}

	bad := l.ch
	l.readChar()
	for !l.atEOF() && l.ch&0xC0 == 0x80 {
		l.readChar()
	}
	debugPrintf("illegal character %q at %d:%d", l.input[startPos:l.position], startLine, startCol)
	if bad < 0x80 {
		return mk(ILLEGAL, fmt.Sprintf("unexpected character %q", rune(bad)))
	}
	return mk(ILLEGAL, fmt.Sprintf("unexpected character %q", l.input[startPos:l.position]))
}

// --- Character classes ---

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

// isIdentStart accepts ASCII letters plus any non-ASCII byte, so UTF-8
// identifiers scan as a unit.
func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEOF() && isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}
