package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"**/*.ts"}, cfg.Include)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, 0, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestDecodeMergesOverDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
include: ["src/**/*.ts"]
ignore:
  - "^Type 'string'"
color: NEVER
workers: 4
show_types: true
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/**/*.ts"}, cfg.Include)
	assert.Equal(t, Default().Exclude, cfg.Exclude)
	assert.Equal(t, []string{"^Type 'string'"}, cfg.Ignore)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, FormatText, cfg.Format)
	assert.True(t, cfg.ShowTypes)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("colour: always\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestValidationCollectsIssues(t *testing.T) {
	_, err := Decode(strings.NewReader("color: pink\nformat: xml\nworkers: -1\nignore: ['(']\n"))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 4)
	assert.True(t, strings.HasPrefix(err.Error(), "config validation failed:"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, DefaultFileName, "format: json\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, p, cfg.Path)
	assert.Equal(t, dir, cfg.Root())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	cfg, err = LoadOptional(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Root())
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".env", "TSCHECK_COLOR=always\nTSCHECK_WORKERS=3\nTSCHECK_FORMAT=json\nOTHER=1\n")

	env, err := ReadEnvFile(p)
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(env))
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, FormatJSON, cfg.Format)

	env, err = ReadEnvFile(filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
	assert.Empty(t, env)

	assert.Error(t, Default().ApplyEnv(map[string]string{EnvWorkers: "many"}))
	assert.Error(t, Default().ApplyEnv(map[string]string{EnvFormat: "yaml"}))
}

func TestProcessEnv(t *testing.T) {
	t.Setenv(EnvFormat, "json")
	env := ProcessEnv()
	assert.Equal(t, "json", env[EnvFormat])
}

func TestSuppressor(t *testing.T) {
	s, err := NewSuppressor([]string{`^Type '(\w+)' is not assignable to type 'number'$`, `bigint`})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Matches("Type 'string' is not assignable to type 'number'"))
	assert.False(t, s.Matches("Type 'string' is not assignable to type 'boolean'"))
	assert.True(t, s.Matches("The binary operation between 'bigint' and 'number' is not allowed"))

	var none *Suppressor
	assert.False(t, none.Matches("anything"))

	_, err = NewSuppressor([]string{"("})
	assert.Error(t, err)
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern, name string
		want          bool
	}{
		{"**/*.ts", "main.ts", true},
		{"**/*.ts", "src/a/b.ts", true},
		{"**/*.ts", "src/a/b.js", false},
		{"src/*.ts", "src/a.ts", true},
		{"src/*.ts", "src/a/b.ts", false},
		{"src/**", "src/a/b.ts", true},
		{"**/*.d.ts", "types/lib.d.ts", true},
		{"node_modules", "node_modules", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchGlob(tt.pattern, tt.name), "%s ~ %s", tt.pattern, tt.name)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.ts", "")
	writeFile(t, dir, "src/util.ts", "")
	writeFile(t, dir, "src/readme.md", "")
	writeFile(t, dir, "types/lib.d.ts", "")
	writeFile(t, dir, "node_modules/pkg/index.ts", "")

	files, err := Default().Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "main.ts"),
		filepath.Join(dir, "src", "util.ts"),
	}, files)
}
