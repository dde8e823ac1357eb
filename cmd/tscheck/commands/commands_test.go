package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color=never"}, args...))
	err := cmd.Execute()
	if err != nil {
		reportError(&errOut, err)
	}
	return out.String(), errOut.String(), ExitCode(err)
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"ok.ts":   "let a: string = \"x\";\nlet b = 1;\n",
		"bad.ts":  "let z: number = \"world\";\n",
		"note.md": "not checked",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestEvalPrintsType(t *testing.T) {
	out, _, code := run(t, "", "eval", "1n + 2n")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "bigint\n", out)
}

func TestEvalWithPrelude(t *testing.T) {
	out, _, code := run(t, "", "eval", "--prelude", "let a: bigint = 1n;", "a + 1")
	assert.Equal(t, ExitDiagnostics, code)
	assert.Contains(t, out, "The binary operation between 'bigint' and 'number' is not allowed")
	assert.True(t, strings.HasSuffix(out, "number\n"))
}

func TestEvalExpectedType(t *testing.T) {
	out, _, code := run(t, "", "eval", "--type", "string", "1")
	assert.Equal(t, ExitDiagnostics, code)
	assert.Contains(t, out, "Type 'number' is not assignable to type 'string'")

	_, _, code = run(t, "", "eval", "--type", "number | string", `"x"`)
	assert.Equal(t, ExitOK, code)

	_, _, code = run(t, "", "eval", "--type", "Array<number>", "1")
	assert.Equal(t, ExitUsage, code)
}

func TestEvalJSON(t *testing.T) {
	out, _, code := run(t, "", "--format=json", "eval", "2 ** 8")
	assert.Equal(t, ExitOK, code)

	var report jsonEval
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "number", report.Type)
	assert.Empty(t, report.Diagnostics)
}

func TestCheckDirectory(t *testing.T) {
	dir := writeProject(t)
	for _, args := range [][]string{{"check", dir}, {dir}} {
		out, _, code := run(t, "", args...)
		assert.Equal(t, ExitDiagnostics, code)
		assert.Contains(t, out, "bad.ts:1:17: Type Error: Type 'string' is not assignable to type 'number'")
		assert.Contains(t, out, "2 file(s) checked, 1 error(s)")
	}
}

func TestCheckCleanFileWithTypes(t *testing.T) {
	dir := writeProject(t)
	out, _, code := run(t, "", "check", "--show-types", filepath.Join(dir, "ok.ts"))
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "  a: string\n  b: number\n")
	assert.Contains(t, out, "1 file(s) checked, 0 error(s)")
}

func TestCheckJSON(t *testing.T) {
	dir := writeProject(t)
	out, _, code := run(t, "", "--format", "json", "check", dir)
	assert.Equal(t, ExitDiagnostics, code)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, filepath.Join(dir, "bad.ts"), report.Files[0].Path)
	assert.Equal(t, jsonDiagnostic{
		Kind:    "Type",
		Message: "Type 'string' is not assignable to type 'number'",
		Line:    1,
		Column:  17,
	}, report.Files[0].Diagnostics[0])
}

func TestCheckStdin(t *testing.T) {
	out, _, code := run(t, "function broken(x: number): string { return x; }", "check", "-")
	assert.Equal(t, ExitDiagnostics, code)
	assert.Contains(t, out, "<stdin>:1:45: Type Error: Type 'number' is not assignable to type 'string'")
}

func TestCheckSyntaxError(t *testing.T) {
	out, _, code := run(t, "let = 1;", "check", "-")
	assert.Equal(t, ExitDiagnostics, code)
	assert.Contains(t, out, "Syntax Error")
}

func TestCheckAST(t *testing.T) {
	out, _, code := run(t, "let x: number | string = 1;", "check", "--ast", "-")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "let x: number | string = 1;")
}

func TestCheckMissingFile(t *testing.T) {
	_, errOut, code := run(t, "", "check", filepath.Join(t.TempDir(), "missing.ts"))
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "missing.ts")

	dir := writeProject(t)
	_, _, code = run(t, "", "check", filepath.Join(dir, "bad.ts"), filepath.Join(dir, "typo.ts"))
	assert.Equal(t, ExitUsage, code)
}

func TestReadErrorCode(t *testing.T) {
	_, err := os.ReadFile(filepath.Join(t.TempDir(), "absent.ts"))
	assert.Equal(t, ExitUsage, readErrorCode(fmt.Errorf("read absent.ts: %w", err)))

	_, err = os.ReadFile(t.TempDir())
	assert.Equal(t, ExitInternal, readErrorCode(err))
}

func TestTypesCommand(t *testing.T) {
	dir := writeProject(t)
	out, _, code := run(t, "", "types", filepath.Join(dir, "ok.ts"))
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "a: string\nb: number\n", out)

	out, _, code = run(t, "", "--format=json", "types", "--widen", filepath.Join(dir, "ok.ts"))
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, `"name": "a"`)
}

func TestUsageErrors(t *testing.T) {
	tests := [][]string{
		{"eval"},
		{"--bogus"},
		{"--format=xml", "eval", "1"},
		{"types"},
		{"--config", "/nonexistent/tscheck.yaml", "eval", "1"},
	}
	for _, args := range tests {
		_, errOut, code := run(t, "", args...)
		assert.Equal(t, ExitUsage, code, "%v", args)
		assert.True(t, strings.HasPrefix(errOut, "tscheck: "), "%v: %q", args, errOut)
	}
}

func TestConfigFileAndSuppression(t *testing.T) {
	dir := writeProject(t)
	cfgPath := filepath.Join(dir, "tscheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ignore:\n  - \"to type 'number'$\"\nworkers: 2\n"), 0o644))

	out, _, code := run(t, "", "--config", cfgPath, "check")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "2 file(s) checked, 0 error(s)")
}

func TestVerboseLogging(t *testing.T) {
	_, errOut, _ := run(t, "", "--verbose", "eval", "1")
	assert.Contains(t, errOut, "tscheck: ")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitDiagnostics, ExitCode(errDiagnostics))
	assert.Equal(t, ExitUsage, ExitCode(usageErrorf("bad")))
	assert.Equal(t, ExitInternal, ExitCode(assert.AnError))
}
