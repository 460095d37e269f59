package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hugo-lorenzo-mato/cadence/internal/core"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	return dir
}

func TestResolve_ExplicitWins(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	mkdir(t, other, ".cadence")

	got, err := Resolve(root, other)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != root {
		t.Fatalf("root = %s, want explicit %s", got, root)
	}
}

func TestResolve_ExplicitMissingFails(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if !core.IsCode(err, core.CodeRootNotFound) {
		t.Fatalf("expected RootNotFound, got %v", err)
	}
}

func TestResolve_AncestorMarker(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, ".cadence")
	nested := mkdir(t, root, "internal", "core")

	got, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != root {
		t.Fatalf("root = %s, want %s", got, root)
	}
}

func TestResolve_HintFile(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, ".cadence")
	elsewhere := t.TempDir()
	hint := filepath.Join(elsewhere, HintFileName)
	if err := os.WriteFile(hint, []byte(root+"\n"), 0o644); err != nil {
		t.Fatalf("write hint: %v", err)
	}

	got, err := Resolve("", elsewhere)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != root {
		t.Fatalf("root = %s, want hinted %s", got, root)
	}
}

func TestResolve_MarkerBeatsHint(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, ".cadence")
	other := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, HintFileName), []byte(other), 0o644); err != nil {
		t.Fatalf("write hint: %v", err)
	}

	got, err := Resolve("", root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != root {
		t.Fatalf("root = %s, want marker dir %s", got, root)
	}
}

func TestResolve_NothingFound(t *testing.T) {
	_, err := Resolve("", t.TempDir())
	if !core.IsCode(err, core.CodeRootNotFound) {
		t.Fatalf("expected RootNotFound, got %v", err)
	}
	if got := core.ErrorToken(err); got != "RootNotFound" {
		t.Fatalf("token = %q", got)
	}
}

func TestResolveOrStart_FallsBackForInit(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveOrStart("", dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("root = %s, want %s", got, dir)
	}
}
