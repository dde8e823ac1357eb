package driver

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

// expectation is what a script under testdata/scripts declares about itself.
type expectation struct {
	clean        bool
	typeErrors   []string
	syntaxErrors []string
}

// parseExpectation reads the leading comment lines of a script:
//
//	// expect: ok
//	// expect_type_error: message
//	// expect_syntax_error: message
func parseExpectation(content string) (*expectation, error) {
	expectRegex := regexp.MustCompile(`^//\s*(expect(?:_type_error|_syntax_error)?):\s*(.*)`)
	exp := &expectation{}
	found := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		matches := expectRegex.FindStringSubmatch(scanner.Text())
		if len(matches) != 3 {
			continue
		}
		found = true
		value := strings.TrimSpace(matches[2])
		switch matches[1] {
		case "expect":
			exp.clean = value == "ok"
		case "expect_type_error":
			exp.typeErrors = append(exp.typeErrors, value)
		case "expect_syntax_error":
			exp.syntaxErrors = append(exp.syntaxErrors, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script content: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no expectation comment found (e.g., // expect: ok)")
	}
	return exp, nil
}

func TestScripts(t *testing.T) {
	scriptDir := filepath.Join("testdata", "scripts")
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		t.Fatalf("Failed to read script directory %q: %v", scriptDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".ts") {
			continue
		}
		scriptPath := filepath.Join(scriptDir, entry.Name())
		t.Run(entry.Name(), func(t *testing.T) {
			content, err := os.ReadFile(scriptPath)
			if err != nil {
				t.Fatalf("Failed to read script file %q: %v", scriptPath, err)
			}
			exp, err := parseExpectation(string(content))
			if err != nil {
				t.Fatalf("%s: %v", scriptPath, err)
			}

			res, err := NewSession().CheckFile(scriptPath)
			if err != nil {
				t.Fatal(err)
			}

			if exp.clean {
				if res.HasErrors() {
					for _, e := range res.AllErrors() {
						t.Errorf("unexpected %s error: %s", e.Kind(), e.Message())
					}
				}
				return
			}

			syntax := make([]string, len(res.SyntaxErrors))
			for i, e := range res.SyntaxErrors {
				syntax[i] = e.Message()
			}
			if diff := deep.Equal(syntax, nonNil(exp.syntaxErrors)); diff != nil {
				t.Errorf("syntax errors: %v", diff)
			}
			if diff := deep.Equal(nonNil(res.Messages), nonNil(exp.typeErrors)); diff != nil {
				t.Errorf("type errors: %v", diff)
			}
		})
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
