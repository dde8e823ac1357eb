package config

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

const patternTimeout = 100 * time.Millisecond

func compilePattern(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = patternTimeout
	return re, nil
}

// Suppressor matches diagnostic messages against the configured ignore
// patterns. Patterns use ECMAScript regular expression syntax.
type Suppressor struct {
	patterns []*regexp2.Regexp
}

// NewSuppressor compiles patterns.
func NewSuppressor(patterns []string) (*Suppressor, error) {
	s := &Suppressor{}
	for _, pattern := range patterns {
		re, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

// Suppressor builds the suppressor for c.Ignore.
func (c *Config) Suppressor() (*Suppressor, error) {
	return NewSuppressor(c.Ignore)
}

// Len returns the number of patterns.
func (s *Suppressor) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Matches reports whether any pattern matches message. A pattern that times
// out counts as no match.
func (s *Suppressor) Matches(message string) bool {
	if s == nil {
		return false
	}
	for _, re := range s.patterns {
		if ok, err := re.MatchString(message); err == nil && ok {
			return true
		}
	}
	return false
}
