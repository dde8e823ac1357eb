package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

func isDigitForBase(ch byte, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return '0' <= ch && ch <= '7'
	case 16:
		return isHexDigit(ch)
	default:
		return isDigit(ch)
	}
}

// readDigits consumes digits of the given base with '_' separators.
// It returns the number of digits read, or -1 on a misplaced separator.
func (l *Lexer) readDigits(base int) int {
	count := 0
	lastWasDigit := false
	for {
		switch {
		case isDigitForBase(l.ch, base):
			l.readChar()
			count++
			lastWasDigit = true
		case l.ch == '_':
			if !lastWasDigit || !isDigitForBase(l.peekChar(), base) {
				return -1
			}
			l.readChar()
			lastWasDigit = false
		default:
			return count
		}
	}
}

// readNumber scans a numeric literal. The returned literal is the raw
// source text; BIGINT literals drop their trailing 'n'. A non-empty third
// result is the reason the literal is malformed.
func (l *Lexer) readNumber() (TokenType, string, string) {
	startPos := l.position
	base := 10

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			l.readChar()
			l.readChar()
		}
	}

	intDigits := l.readDigits(base)
	if intDigits < 0 {
		return ILLEGAL, "", "invalid numeric separator"
	}
	if base != 10 && intDigits == 0 {
		return ILLEGAL, "", "missing digits after base prefix"
	}

	if l.ch == 'n' {
		literal := l.input[startPos:l.position]
		l.readChar()
		return BIGINT, literal, ""
	}

	if base == 10 {
		if l.ch == '.' && isDigit(l.peekChar()) {
			l.readChar()
			if l.readDigits(10) < 0 {
				return ILLEGAL, "", "invalid numeric separator"
			}
		} else if l.ch == '.' && intDigits > 0 && !isIdentStart(l.peekChar()) && l.peekChar() != '.' {
			l.readChar() // "1." is a complete literal
		}

		if l.ch == 'e' || l.ch == 'E' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			expDigits := l.readDigits(10)
			if expDigits < 0 {
				return ILLEGAL, "", "invalid numeric separator"
			}
			if expDigits == 0 {
				return ILLEGAL, "", "missing exponent digits"
			}
		}
	}

	if isIdentStart(l.ch) {
		return ILLEGAL, "", "identifier starts immediately after numeric literal"
	}
	return NUMBER, l.input[startPos:l.position], ""
}

// readString scans a quoted string and returns its decoded value.
// A non-empty second result is the reason the literal is malformed.
func (l *Lexer) readString() (string, string) {
	quote := l.ch
	var builder strings.Builder
	l.readChar() // opening quote

	for {
		switch {
		case l.atEOF():
			return "", "unterminated string literal"
		case l.ch == quote:
			l.readChar()
			return builder.String(), ""
		case l.ch == '\n' || l.ch == '\r':
			return "", "unterminated string literal"
		case l.ch == '\\':
			l.readChar()
			if msg := l.readEscape(&builder); msg != "" {
				return "", msg
			}
		default:
			builder.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readEscape decodes the escape sequence after a backslash.
func (l *Lexer) readEscape(b *strings.Builder) string {
	ch := l.ch
	switch ch {
	case 0:
		if l.atEOF() {
			return "unterminated string literal"
		}
		b.WriteByte(0)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		if isDigit(l.peekChar()) {
			return "octal escape sequences are not allowed"
		}
		b.WriteByte(0)
	case '\n':
		// line continuation
	case '\r':
		if l.peekChar() == '\n' {
			l.readChar()
		}
	case 'x':
		l.readChar()
		return l.readHexEscape(b, 2)
	case 'u':
		l.readChar()
		if l.ch == '{' {
			l.readChar()
			start := l.position
			for isHexDigit(l.ch) {
				l.readChar()
			}
			if l.ch != '}' || l.position == start {
				return "invalid unicode escape sequence"
			}
			code, err := strconv.ParseUint(l.input[start:l.position], 16, 32)
			if err != nil || code > utf8.MaxRune {
				return "invalid unicode escape sequence"
			}
			b.WriteRune(rune(code))
			l.readChar()
			return ""
		}
		return l.readHexEscape(b, 4)
	default:
		// Identity escape: \' \" \\ and any other character stand for themselves.
		b.WriteByte(ch)
	}
	l.readChar()
	return ""
}

func (l *Lexer) readHexEscape(b *strings.Builder, n int) string {
	start := l.position
	for i := 0; i < n; i++ {
		if !isHexDigit(l.ch) {
			return "invalid hexadecimal escape sequence"
		}
		l.readChar()
	}
	code, _ := strconv.ParseUint(l.input[start:l.position], 16, 32)
	b.WriteRune(rune(code))
	return ""
}
