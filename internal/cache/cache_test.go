package cache

import (
	"testing"

	"github.com/Divy1211/xs-check/internal/ast"
)

func TestResolveParsesOnce(t *testing.T) {
	c := New()
	calls := 0
	parse := func(path string, src []byte) (*ast.File, error) {
		calls++
		return &ast.File{Path: path}, nil
	}
	check := func(path string, file *ast.File) error { return nil }

	src := []byte(`int x = 1;`)
	if _, err := c.Resolve("a.xs", src, parse, check); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve("a.xs", src, parse, check); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 parse call on unchanged hash, got %d", calls)
	}
}

func TestResolveReparsesOnChange(t *testing.T) {
	c := New()
	calls := 0
	parse := func(path string, src []byte) (*ast.File, error) {
		calls++
		return &ast.File{Path: path}, nil
	}
	check := func(path string, file *ast.File) error { return nil }

	if _, err := c.Resolve("a.xs", []byte(`int x = 1;`), parse, check); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve("a.xs", []byte(`int x = 2;`), parse, check); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 parse calls after content change, got %d", calls)
	}
}

func TestResolveAlwaysChecksEvenOnCacheHit(t *testing.T) {
	c := New()
	parse := func(path string, src []byte) (*ast.File, error) { return &ast.File{Path: path}, nil }
	checks := 0
	check := func(path string, file *ast.File) error {
		checks++
		return nil
	}

	src := []byte(`int x = 1;`)
	c.Resolve("a.xs", src, parse, check)
	c.Resolve("a.xs", src, parse, check)
	if checks != 2 {
		t.Fatalf("expected check to run on every Resolve call, got %d", checks)
	}
}

func TestResolveDetectsCycle(t *testing.T) {
	c := New()
	var resolveB func() error
	parseA := func(path string, src []byte) (*ast.File, error) {
		if err := resolveB(); err != nil {
			return nil, err
		}
		return &ast.File{Path: path}, nil
	}
	check := func(path string, file *ast.File) error { return nil }

	resolveB = func() error {
		_, err := c.Resolve("a.xs", []byte("include \"a.xs\";"), parseA, check)
		return err
	}

	_, err := c.Resolve("a.xs", []byte("include \"a.xs\";"), parseA, check)
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	if _, ok := err.(ErrCycle); !ok {
		t.Fatalf("expected ErrCycle, got %T: %v", err, err)
	}
}
