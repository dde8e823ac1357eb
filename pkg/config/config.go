package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project file looked up in the working directory.
const DefaultFileName = "tscheck.yaml"

// Environment variables that override the project file.
const (
	EnvColor   = "TSCHECK_COLOR"
	EnvWorkers = "TSCHECK_WORKERS"
	EnvFormat  = "TSCHECK_FORMAT"
)

// ColorMode selects when diagnostics are colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Format selects the report format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// IsValid reports whether f is a known output format.
func (f Format) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// Config is the merged project configuration.
type Config struct {
	Path      string // file the config was read from, empty for defaults
	Include   []string
	Exclude   []string
	Ignore    []string
	Color     ColorMode
	Workers   int
	Format    Format
	ShowTypes bool
}

type configFile struct {
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
	Ignore    []string `yaml:"ignore"`
	Color     string   `yaml:"color"`
	Workers   *int     `yaml:"workers"`
	Format    string   `yaml:"format"`
	ShowTypes *bool    `yaml:"show_types"`
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Include: []string{"**/*.ts"},
		Exclude: []string{"node_modules/**", "**/*.d.ts"},
		Color:   ColorAuto,
		Workers: 0,
		Format:  FormatText,
	}
}

// Load reads a project file and merges it over the defaults. A missing file
// is an error; use LoadOptional for the implicit lookup.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadOptional loads path when it exists and returns the defaults otherwise.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Decode parses YAML from r over the defaults. An empty document yields the
// defaults unchanged.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg := raw.toConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw *configFile) toConfig() *Config {
	cfg := Default()
	if raw.Include != nil {
		cfg.Include = raw.Include
	}
	if raw.Exclude != nil {
		cfg.Exclude = raw.Exclude
	}
	cfg.Ignore = raw.Ignore
	if raw.Color != "" {
		cfg.Color = ColorMode(strings.ToLower(raw.Color))
	}
	if raw.Workers != nil {
		cfg.Workers = *raw.Workers
	}
	if raw.Format != "" {
		cfg.Format = Format(strings.ToLower(raw.Format))
	}
	if raw.ShowTypes != nil {
		cfg.ShowTypes = *raw.ShowTypes
	}
	return cfg
}

// Validate checks enumerations, worker count and suppression patterns.
func (c *Config) Validate() error {
	var errs ValidationError
	if !c.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be auto, always or never, got %q", c.Color))
	}
	if !c.Format.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("format must be text or json, got %q", c.Format))
	}
	if c.Workers < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("workers must not be negative, got %d", c.Workers))
	}
	for i, pattern := range c.Include {
		if pattern == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("include[%d] must be a non-empty glob", i))
		}
	}
	for i, pattern := range c.Ignore {
		if _, err := compilePattern(pattern); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("ignore[%d]: %v", i, err))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ReadEnvFile parses a dotenv file without touching the process environment.
// A missing file yields an empty map.
func ReadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return env, nil
}

// ProcessEnv collects the TSCHECK_* variables from the process environment.
func ProcessEnv() map[string]string {
	env := map[string]string{}
	for _, key := range []string{EnvColor, EnvWorkers, EnvFormat} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}

// ApplyEnv overrides fields from env. Unknown keys are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := strings.TrimSpace(env[EnvColor]); v != "" {
		c.Color = ColorMode(strings.ToLower(v))
	}
	if v := strings.TrimSpace(env[EnvFormat]); v != "" {
		c.Format = Format(strings.ToLower(v))
	}
	if v := strings.TrimSpace(env[EnvWorkers]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return c.Validate()
}

// Root returns the directory the include globs are relative to.
func (c *Config) Root() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}
