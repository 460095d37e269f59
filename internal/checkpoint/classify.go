package checkpoint

import (
	"path"
	"strings"
)

// GroupRule assigns paths to one semantic commit group. Patterns are tried
// in order; the first matching rule wins. A pattern is interpreted as a
// directory prefix when it ends with "/", as an extension when it starts
// with ".", as a glob when it contains metacharacters, and as an exact
// base name otherwise.
type GroupRule struct {
	Name     string
	Patterns []string
}

// SourceGroup is the fallback group for paths no rule claims.
const SourceGroup = "source"

// DefaultGroupRules returns the built-in classification order. Order
// matters: state files live under .cadence/ and must not fall through to
// the config group just because they are JSON.
func DefaultGroupRules() []GroupRule {
	return []GroupRule{
		{Name: "cadence-state", Patterns: []string{".cadence/"}},
		{Name: "skill-instructions", Patterns: []string{"skills/", "SKILL.md"}},
		{Name: "docs", Patterns: []string{"docs/", "doc/", ".md", ".rst", ".txt"}},
		{Name: "scripts", Patterns: []string{"scripts/", "bin/", ".sh", ".py"}},
		{Name: "tests", Patterns: []string{"tests/", "test/", "*_test.go", "test_*.py", "*.spec.*"}},
		{Name: "config", Patterns: []string{
			".yaml", ".yml", ".toml", ".ini", ".json", ".env",
			"Makefile", "Dockerfile", "go.mod", "go.sum", ".gitignore",
		}},
	}
}

// Classify returns the group name for a normalized path.
func Classify(p string, rules []GroupRule) string {
	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if matchPattern(p, pattern) {
				return rule.Name
			}
		}
	}
	return SourceGroup
}

func matchPattern(p, pattern string) bool {
	base := path.Base(p)
	switch {
	case strings.HasSuffix(pattern, "/"):
		return strings.HasPrefix(p, pattern)
	case strings.ContainsAny(pattern, "*?["):
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		ok, _ := path.Match(pattern, p)
		return ok
	case strings.HasPrefix(pattern, "."):
		return strings.HasSuffix(base, pattern) && base != pattern
	default:
		return base == pattern
	}
}
