// Package project locates the cadence project root for every CLI
// invocation. A project is any directory containing a .cadence directory;
// a hint file lets detached tooling point back at the root explicitly.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

// HintFileName is a plain-text file whose first line names the project
// root. It covers setups where tools run outside the tree they manage.
const HintFileName = ".cadence-root"

// Resolve finds the project root. Precedence:
//
//  1. the explicit path, when given (it must exist)
//  2. the closest ancestor of startDir containing .cadence/
//  3. the closest ancestor carrying a hint file
//
// When nothing matches, a RootNotFound error names startDir.
func Resolve(explicit, startDir string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolving explicit root: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", core.ErrRootNotFound(explicit)
		}
		return abs, nil
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	if root, ok := findAncestorWithMarker(start); ok {
		return root, nil
	}
	if root, ok := findHintedRoot(start); ok {
		return root, nil
	}
	return "", core.ErrRootNotFound(start)
}

// ResolveOrStart behaves like Resolve but falls back to startDir itself
// when no marker exists. Used by init, which creates the marker. An
// explicit path still has to exist; the fallback never overrides it.
func ResolveOrStart(explicit, startDir string) (string, error) {
	root, err := Resolve(explicit, startDir)
	if err == nil {
		return root, nil
	}
	if explicit == "" && core.IsCode(err, core.CodeRootNotFound) {
		return filepath.Abs(startDir)
	}
	return "", err
}

func findAncestorWithMarker(start string) (string, bool) {
	for dir := start; ; dir = filepath.Dir(dir) {
		marker := filepath.Join(dir, ".cadence")
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir, true
		}
		if dir == filepath.Dir(dir) {
			return "", false
		}
	}
}

func findHintedRoot(start string) (string, bool) {
	for dir := start; ; dir = filepath.Dir(dir) {
		data, err := os.ReadFile(filepath.Join(dir, HintFileName))
		if err == nil {
			target := firstLine(string(data))
			if target == "" {
				return "", false
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(dir, target)
			}
			if info, err := os.Stat(target); err == nil && info.IsDir() {
				return filepath.Clean(target), true
			}
			return "", false
		}
		if dir == filepath.Dir(dir) {
			return "", false
		}
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
