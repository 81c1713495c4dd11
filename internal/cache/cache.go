// Package cache implements the incremental AST cache: content-hash-keyed
// reuse of parsed files, with an in-flight sentinel giving free, cheap
// cycle detection during recursive include resolution.
package cache

import (
	"sync"

	"github.com/Divy1211/xs-check/internal/ast"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/singleflight"
)

// Hash is a BLAKE3 content digest of a file's exact source bytes.
type Hash [32]byte

func HashBytes(src []byte) Hash {
	return Hash(blake3.Sum256(src))
}

// entry is the cache's value type: an entry with hasHash == false denotes the
// in-flight sentinel inserted while a file is currently being parsed/
// type-checked, including during include recursion on the same path.
type entry struct {
	hash    Hash
	hasHash bool
	file    *ast.File
}

// Cache is the process-wide incremental AST cache, keyed by absolute path.
// Safe for concurrent use: reads and point-mutations may race across LSP
// lint tasks, with singleflight collapsing concurrent re-parses of the same
// unchanged path into one.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{entries: map[string]entry{}}
}

// pop removes and returns the existing entry for path, if any - mirrors the
// Rust implementation's `pop` which takes ownership of the slot before
// deciding how to handle it.
func (c *Cache) pop(path string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if ok {
		delete(c.entries, path)
	}
	return e, ok
}

func (c *Cache) insertSentinel(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = entry{}
}

func (c *Cache) insert(path string, h Hash, file *ast.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = entry{hash: h, hasHash: true, file: file}
}

// Remove drops a path's entry outright - used by the LSP layer when a
// document's content changes, to force a full reparse on next use.
func (c *Cache) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// ErrCycle is returned by Resolve when path is already in the process of
// being parsed higher up the current include chain.
type ErrCycle struct{ Path string }

func (e ErrCycle) Error() string { return "circular dependency detected while parsing " + e.Path }

// ParseFunc parses src for path into an *ast.File. Called at most once per
// distinct (path, content-hash) pair, modulo singleflight collapsing.
type ParseFunc func(path string, src []byte) (*ast.File, error)

// CheckFunc runs the type checker for path's AST against env - called on
// EVERY Resolve, even on a cache hit, because the checker's side effect
// (writing bindings into the caller's TypeEnv) must happen regardless of
// whether re-parsing was needed.
type CheckFunc func(path string, file *ast.File) error

// Resolve returns the AST for path given its current source bytes src,
// reusing the cached AST when the content hash is unchanged. Returns
// ErrCycle if path is already being resolved somewhere up the current call
// stack (true recursive reentrancy, not cross-task concurrency - concurrent
// unrelated lint tasks on the same path are resolved via singleflight
// instead of erroring).
func (c *Cache) Resolve(path string, src []byte, parse ParseFunc, check CheckFunc) (*ast.File, error) {
	h := HashBytes(src)

	prev, existed := c.pop(path)
	if existed && !prev.hasHash {
		// The sentinel was still in place: something up this exact call
		// stack is already resolving `path`.
		c.insertSentinel(path)
		return nil, ErrCycle{Path: path}
	}

	if existed && prev.hash == h {
		c.insertSentinel(path)
		if err := check(path, prev.file); err != nil {
			c.insert(path, h, prev.file)
			return prev.file, err
		}
		c.insert(path, h, prev.file)
		return prev.file, nil
	}

	c.insertSentinel(path)
	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		file, perr := parse(path, src)
		if perr != nil {
			return nil, perr
		}
		return file, nil
	})
	if err != nil {
		c.Remove(path)
		return nil, err
	}
	file := v.(*ast.File)
	if cerr := check(path, file); cerr != nil {
		c.insert(path, h, file)
		return file, cerr
	}
	c.insert(path, h, file)
	return file, nil
}
