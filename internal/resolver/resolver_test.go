package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveFindsFileInIncludeDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "util.xs"), []byte(`int x;`), 0644); err != nil {
		t.Fatal(err)
	}
	r := New([]string{dir})
	got, err := r.Resolve("util.xs")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(filepath.Join(dir, "util.xs"))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveTriesDirsInOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	os.WriteFile(filepath.Join(dirB, "shared.xs"), []byte(`int y;`), 0644)

	r := New([]string{dirA, dirB})
	got, err := r.Resolve("shared.xs")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(filepath.Join(dirB, "shared.xs"))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveNotFound(t *testing.T) {
	r := New([]string{t.TempDir()})
	_, err := r.Resolve("missing.xs")
	if _, ok := err.(ErrNotFound); !ok {
		t.Fatalf("expected ErrNotFound, got %T: %v", err, err)
	}
}
