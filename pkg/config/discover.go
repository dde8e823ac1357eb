package config

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks root and returns the files matching an include glob and no
// exclude glob, sorted. Globs are slash-separated, relative to root, and
// support `**` for any number of directories.
func (c *Config) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && excludesDir(c.Exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(c.Include, rel) && !matchAny(c.Exclude, rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("config: discover %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func matchAny(globs []string, name string) bool {
	for _, g := range globs {
		if MatchGlob(g, name) {
			return true
		}
	}
	return false
}

// excludesDir reports whether a glob of the form "dir/**" prunes the whole
// directory rel.
func excludesDir(globs []string, rel string) bool {
	for _, g := range globs {
		if prefix, ok := strings.CutSuffix(g, "/**"); ok && MatchGlob(prefix, rel) {
			return true
		}
	}
	return false
}

// MatchGlob matches a slash-separated name against pattern. `**` matches zero
// or more path segments; other segments follow path.Match.
func MatchGlob(pattern, name string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
