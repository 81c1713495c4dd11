// Package resolver resolves XS `include "path";` declarations against a
// configured list of include directories and records the resulting
// dependency edges on a TypeEnv.
package resolver

import (
	"os"
	"path/filepath"
)

// Resolver resolves include paths relative to a set of include directories,
// tried in order - the first directory in which the file exists wins.
type Resolver struct {
	includeDirs []string
}

func New(includeDirs []string) *Resolver {
	return &Resolver{includeDirs: includeDirs}
}

// ErrNotFound is returned when no configured include directory contains
// the requested path.
type ErrNotFound struct{ Path string }

func (e ErrNotFound) Error() string { return "unresolved include: " + e.Path }

// Resolve turns an `include` path into an absolute file path, trying each
// configured include directory in order.
func (r *Resolver) Resolve(includePath string) (string, error) {
	for _, dir := range r.includeDirs {
		candidate := filepath.Join(dir, includePath)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", err
			}
			return abs, nil
		}
	}
	if info, err := os.Stat(includePath); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(includePath)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	return "", ErrNotFound{Path: includePath}
}
