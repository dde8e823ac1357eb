package source

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SourceFile represents a source file with its content and metadata
type SourceFile struct {
	Name    string   // Display name (e.g., "script.ts", "<stdin>", "<eval>")
	Path    string   // Full file path (empty for eval/stdin)
	Content string   // The source text, NFC-normalized
	lines   []string // Cached split lines (lazy initialization)
}

// NewSourceFile creates a new source file. The content is normalized to
// Unicode NFC so identifiers spelled with combining sequences lex the same
// way as their precomposed form.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: Normalize(content),
	}
}

// NewEvalSource creates a source file for an inline snippet (tscheck eval, tests)
func NewEvalSource(content string) *SourceFile {
	return NewSourceFile("<eval>", "", content)
}

// NewStdinSource creates a source file for stdin input
func NewStdinSource(content string) *SourceFile {
	return NewSourceFile("<stdin>", "", content)
}

// FromFile creates a SourceFile from a file path and content
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Normalize returns text in Unicode normalization form C. ASCII input is
// returned unchanged without allocating.
func Normalize(text string) string {
	if norm.NFC.IsNormalString(text) {
		return text
	}
	return norm.NFC.String(text)
}

// Lines returns the source split into lines (cached)
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// Line returns the 1-based line n, or "" when n is out of range.
func (sf *SourceFile) Line(n int) string {
	lines := sf.Lines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile returns true if this represents an actual file (has a path)
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}
