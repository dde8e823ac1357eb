package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// TscheckError is the interface implemented by all errors reported to users.
type TscheckError interface {
	error
	Pos() Position
	Kind() string // "Syntax" or "Type"
	// Message returns the specific error message without position info.
	Message() string
	Unwrap() error
}

// --- Concrete Error Types ---

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// TypeError represents a diagnostic produced by the checker. The position is
// optional; a zero Position means the error carries no span.
type TypeError struct {
	Position
	Msg   string
	Cause error
}

// NewTypeError creates a TypeError without a source span.
func NewTypeError(msg string) *TypeError {
	return &TypeError{Msg: msg}
}

// TypeErrorAt creates a TypeError anchored at pos.
func TypeErrorAt(pos Position, msg string) *TypeError {
	return &TypeError{Position: pos, Msg: msg}
}

func (e *TypeError) Error() string {
	if !e.IsValid() {
		return "Type Error: " + e.Msg
	}
	return fmt.Sprintf("Type Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *TypeError) Pos() Position   { return e.Position }
func (e *TypeError) Kind() string    { return "Type" }
func (e *TypeError) Message() string { return e.Msg }
func (e *TypeError) Unwrap() error   { return e.Cause }
func (e *TypeError) CausedBy(cause error) *TypeError {
	e.Cause = cause
	return e
}

// --- Error Reporting ---

// DisplayOptions controls DisplayErrors output.
type DisplayOptions struct {
	Color bool // force ANSI colors on or off
}

// DisplayErrors writes a list of errors to w in a user-friendly format,
// including the source line and a position marker. The source text is taken
// from each error's Position.Source; errors without one print a single line.
func DisplayErrors(w io.Writer, errs []TscheckError, opts DisplayOptions) {
	if len(errs) == 0 {
		return
	}

	header := color.New(color.FgRed, color.Bold)
	location := color.New(color.FgCyan)
	marker := color.New(color.FgRed)
	for _, c := range []*color.Color{header, location, marker} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		if !pos.IsValid() || pos.Source == nil {
			fmt.Fprintf(w, "%s %s\n", header.Sprintf("%s Error:", kind), msg)
			continue
		}

		sourceLine := pos.Source.Line(pos.Line)
		trimmedLine := strings.TrimRight(sourceLine, "\t ")

		// Format: <path>:<Line>:<Column>: <Kind> Error: <Message>
		fmt.Fprintf(w, "%s %s %s\n",
			location.Sprintf("%s:%d:%d:", pos.Source.DisplayPath(), pos.Line, pos.Column),
			header.Sprintf("%s Error:", kind),
			msg)
		fmt.Fprintf(w, "  %s\n", trimmedLine)

		// Tabs are kept so the caret lines up with the source line above.
		var pad strings.Builder
		col := 1
		for _, r := range sourceLine {
			if col >= pos.Column {
				break
			}
			if r == '\t' {
				pad.WriteByte('\t')
			} else {
				pad.WriteByte(' ')
			}
			col++
		}
		width := pos.Span()
		if remaining := len(sourceLine) - (pos.StartPos - lineStart(pos)); remaining > 0 && width > remaining {
			width = remaining
		}
		fmt.Fprintf(w, "  %s%s\n", pad.String(), marker.Sprint("^"+strings.Repeat("~", width-1)))
		fmt.Fprintln(w)
	}
}

// lineStart returns the byte offset of the first byte of pos.Line.
func lineStart(pos Position) int {
	offset := 0
	for i, line := range pos.Source.Lines() {
		if i == pos.Line-1 {
			return offset
		}
		offset += len(line) + 1
	}
	return offset
}
