package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// matcher matches slash-separated relative paths against a set of patterns.
// Patterns without a slash also match the base name, and a leading "**/"
// also matches at the root.
type matcher struct {
	globs    []glob.Glob
	baseOnly []bool
}

func compileGlobs(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(filepath.ToSlash(pattern))
		if pattern == "" {
			continue
		}

		// "**/x" also matches x at the root, and "x/**" matches x itself.
		variants := []string{pattern}
		trimmed := strings.TrimSuffix(strings.TrimPrefix(pattern, "**/"), "/**")
		if trimmed != pattern && trimmed != "" && trimmed != "**" {
			variants = append(variants, trimmed)
			if p, ok := strings.CutPrefix(pattern, "**/"); ok && p != trimmed {
				variants = append(variants, p)
			}
			if p, ok := strings.CutSuffix(pattern, "/**"); ok && p != trimmed {
				variants = append(variants, p)
			}
		}
		baseOnly := !strings.Contains(pattern, "/")

		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			m.globs = append(m.globs, g)
			m.baseOnly = append(m.baseOnly, baseOnly)
		}
	}
	return m, nil
}

func (m *matcher) empty() bool {
	return m == nil || len(m.globs) == 0
}

func (m *matcher) match(relPath string) bool {
	if m.empty() {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)
	for i, g := range m.globs {
		if g.Match(relPath) {
			return true
		}
		if m.baseOnly[i] && g.Match(base) {
			return true
		}
	}
	return false
}
