package checkpoint

import (
	"path"
	"sort"
	"strings"
)

// NormalizePaths canonicalizes, deduplicates, and sorts changed paths so
// that batching is deterministic for a given working-tree diff.
func NormalizePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = normalizePath(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	return strings.TrimSpace(p)
}

// FilterPaths keeps only paths matched by at least one filter. An empty
// filter list keeps everything. A filter is a directory prefix or a glob.
func FilterPaths(paths, filters []string) []string {
	if len(filters) == 0 {
		return paths
	}
	normalized := make([]string, 0, len(filters))
	for _, f := range filters {
		if f = normalizePath(f); f != "" {
			normalized = append(normalized, f)
		}
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		for _, f := range normalized {
			if matchesFilter(p, f) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func matchesFilter(p, filter string) bool {
	if strings.ContainsAny(filter, "*?[") {
		if ok, _ := path.Match(filter, p); ok {
			return true
		}
		ok, _ := path.Match(filter, path.Base(p))
		return ok
	}
	if p == filter {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(filter, "/")+"/")
}
