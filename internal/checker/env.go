// Package checker implements the XS static type checker: the per-file
// TypeEnv, its identifier/function bookkeeping, and the statement/expression
// visitor that walks an *ast.File and reports diag.Diagnostic values.
package checker

import (
	"github.com/Divy1211/xs-check/internal/diag"
	"github.com/Divy1211/xs-check/internal/doc"
	"github.com/Divy1211/xs-check/internal/span"
	"github.com/Divy1211/xs-check/internal/types"
)

// SrcLoc is the file+span an identifier was declared at.
type SrcLoc struct {
	FilePath string
	Span     span.Span
}

// IdInfo is the binding record stored for every declared identifier.
type IdInfo struct {
	Type      types.Type
	SrcLoc    SrcLoc
	Modifiers []string
	Doc       *doc.Doc
}

// FnInfo is the local scope of a single function body: its parameters and
// locals, plus a synthetic "return" binding holding the declared return type.
type FnInfo struct {
	SrcLoc SrcLoc
	Locals map[string]IdInfo
}

func NewFnInfo(loc SrcLoc, returnType types.Type) *FnInfo {
	fi := &FnInfo{SrcLoc: loc, Locals: map[string]IdInfo{}}
	fi.Locals["return"] = IdInfo{Type: returnType, SrcLoc: loc}
	return fi
}

// TypeEnv is the mutable per-file-analysis type-checking context. A fresh
// clone is taken from the shared prelude TypeEnv before each top-level file
// is checked.
type TypeEnv struct {
	Groups      map[string]bool
	Identifiers map[string]IdInfo
	FnEnvs      map[string][]*FnInfo // ALL overloads of a name ever checked; current binding is identifiers[name]
	Errs        map[string][]diag.Diagnostic
	CurrentDoc  *doc.Doc

	CurrentFnEnv *FnInfo // non-nil while checking inside a function/rule body

	IncludeDirs  []string
	Dependencies map[string]map[string]bool // dependent file -> set of files it includes
}

func NewTypeEnv(includeDirs []string) *TypeEnv {
	return &TypeEnv{
		Groups:       map[string]bool{},
		Identifiers:  map[string]IdInfo{},
		FnEnvs:       map[string][]*FnInfo{},
		Errs:         map[string][]diag.Diagnostic{},
		IncludeDirs:  includeDirs,
		Dependencies: map[string]map[string]bool{},
	}
}

// Clone makes the cheap, file-local working copy each top-level analysis
// starts from: new maps with copied entries (so that writes during this
// file's check do not leak into the shared prelude env), sharing the
// immutable IncludeDirs slice.
func (e *TypeEnv) Clone() *TypeEnv {
	c := &TypeEnv{
		Groups:       copyBoolMap(e.Groups),
		Identifiers:  copyIDMap(e.Identifiers),
		FnEnvs:       map[string][]*FnInfo{},
		Errs:         map[string][]diag.Diagnostic{},
		IncludeDirs:  e.IncludeDirs,
		Dependencies: map[string]map[string]bool{},
	}
	for k, v := range e.FnEnvs {
		c.FnEnvs[k] = append([]*FnInfo{}, v...)
	}
	for k, v := range e.Dependencies {
		c.Dependencies[k] = copyBoolMap(v)
	}
	return c
}

func copyBoolMap(m map[string]bool) map[string]bool {
	c := make(map[string]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyIDMap(m map[string]IdInfo) map[string]IdInfo {
	c := make(map[string]IdInfo, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// AddErr appends a diagnostic to the per-file error map.
func (e *TypeEnv) AddErr(path string, d diag.Diagnostic) {
	e.Errs[path] = append(e.Errs[path], d)
}

// LookupLocal looks up a name in the current function's local scope only.
func (e *TypeEnv) LookupLocal(name string) (IdInfo, bool) {
	if e.CurrentFnEnv == nil {
		return IdInfo{}, false
	}
	info, ok := e.CurrentFnEnv.Locals[name]
	return info, ok
}

// Lookup resolves a name, checking the current function scope first, then
// falling back to file/prelude globals - XS has no block scoping, so a
// function's locals live in one flat map for its whole body.
func (e *TypeEnv) Lookup(name string) (IdInfo, bool) {
	if info, ok := e.LookupLocal(name); ok {
		return info, true
	}
	info, ok := e.Identifiers[name]
	return info, ok
}

// SetGlobal binds name in the global identifier table, used both for
// top-level declarations and for merging an included file's globals into
// the includer's env.
func (e *TypeEnv) SetGlobal(name string, info IdInfo) {
	e.Identifiers[name] = info
}

// SetLocal binds name in the current function's local scope.
func (e *TypeEnv) SetLocal(name string, info IdInfo) {
	e.CurrentFnEnv.Locals[name] = info
}

// SaveFnEnv appends a just-checked function body's local scope to the
// overload history for name, and globally (re)binds name to fnType - XS
// overloads "by redeclaration": the current binding is always the most
// recently written one, but every previously checked body is retained in
// FnEnvs for hover/definition lookups.
func (e *TypeEnv) SaveFnEnv(name string, fnType types.Type, loc SrcLoc, d *doc.Doc) {
	e.FnEnvs[name] = append(e.FnEnvs[name], e.CurrentFnEnv)
	e.SetGlobal(name, IdInfo{Type: fnType, SrcLoc: loc, Doc: d})
}

// SetDoc stashes the most recently lexed doc comment to be consumed by the
// next declaration.
func (e *TypeEnv) SetDoc(d *doc.Doc) {
	e.CurrentDoc = d
}

// TakeDoc returns and clears the pending doc comment.
func (e *TypeEnv) TakeDoc() *doc.Doc {
	d := e.CurrentDoc
	e.CurrentDoc = nil
	return d
}

// RecordDependency registers that `dependent` includes `dependency`.
func (e *TypeEnv) RecordDependency(dependent, dependency string) {
	if e.Dependencies[dependent] == nil {
		e.Dependencies[dependent] = map[string]bool{}
	}
	e.Dependencies[dependent][dependency] = true
}

// Dependents returns every file whose dependency set contains `path`.
func (e *TypeEnv) Dependents(path string) []string {
	var out []string
	for dependent, deps := range e.Dependencies {
		if deps[path] {
			out = append(out, dependent)
		}
	}
	return out
}
