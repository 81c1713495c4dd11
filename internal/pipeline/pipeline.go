// Package pipeline wires the lexer, parser, include resolver, incremental
// cache and type checker into the single entrypoint used by both the CLI
// and the LSP server.
package pipeline

import (
	"fmt"
	"os"

	"github.com/Divy1211/xs-check/internal/ast"
	"github.com/Divy1211/xs-check/internal/cache"
	"github.com/Divy1211/xs-check/internal/checker"
	"github.com/Divy1211/xs-check/internal/diag"
	"github.com/Divy1211/xs-check/internal/lexer"
	"github.com/Divy1211/xs-check/internal/parser"
	"github.com/Divy1211/xs-check/internal/prelude"
	"github.com/Divy1211/xs-check/internal/resolver"
	"github.com/Divy1211/xs-check/internal/span"
)

const PreludePath = prelude.Path

// Pipeline owns the long-lived state shared across analysis runs: the AST
// cache and the prelude-derived TypeEnv every file's checking env is cloned
// from.
type Pipeline struct {
	Cache       *cache.Cache
	PreludeEnv  *checker.TypeEnv
	IncludeDirs []string
	resolver    *resolver.Resolver
}

// New builds a Pipeline and checks the embedded prelude immediately - a
// prelude error is always fatal, matching the original implementation's
// assertion that the prelude itself must never fail to check.
func New(includeDirs []string, extraPreludePath string) (*Pipeline, error) {
	pl := &Pipeline{
		Cache:       cache.New(),
		PreludeEnv:  checker.NewTypeEnv(includeDirs),
		IncludeDirs: includeDirs,
		resolver:    resolver.New(includeDirs),
	}

	if errs := pl.checkInto(pl.PreludeEnv, PreludePath, []byte(prelude.Source)); len(errs) > 0 {
		return nil, fmt.Errorf("prelude has %d error(s), this should never happen: %v", len(errs), errs)
	}

	if extraPreludePath != "" {
		src, err := os.ReadFile(extraPreludePath)
		if err != nil {
			return nil, fmt.Errorf("reading extra prelude: %w", err)
		}
		if errs := pl.checkInto(pl.PreludeEnv, extraPreludePath, src); len(errs) > 0 {
			return nil, fmt.Errorf("extra prelude %s has %d error(s)", extraPreludePath, len(errs))
		}
	}

	return pl, nil
}

// checkInto parses+type-checks src for path directly against env, bypassing
// the cache - used only for one-time prelude loading.
func (p *Pipeline) checkInto(env *checker.TypeEnv, path string, src []byte) []diag.Diagnostic {
	l := lexer.New(string(src))
	prs := parser.New(l)
	file := prs.ParseFile(path)
	for _, pe := range prs.Errors() {
		env.AddErr(path, diag.NewSyntax(pe.Message, pe.Span))
	}
	p.resolveIncludes(env, path, file)
	checker.New(path, env).CheckFile(file)
	return env.Errs[path]
}

// Check runs the full pipeline against path's current bytes, returning the
// diagnostics reported for exactly that file (not its transitive includes -
// callers interested in those consult env.Errs directly).
func (p *Pipeline) Check(path string, src []byte) ([]diag.Diagnostic, *checker.TypeEnv, error) {
	env := p.PreludeEnv.Clone()

	parseFn := func(path string, src []byte) (*ast.File, error) {
		l := lexer.New(string(src))
		prs := parser.New(l)
		file := prs.ParseFile(path)
		for _, pe := range prs.Errors() {
			env.AddErr(path, diag.NewSyntax(pe.Message, pe.Span))
		}
		return file, nil
	}
	checkFn := func(path string, file *ast.File) error {
		p.resolveIncludes(env, path, file)
		checker.New(path, env).CheckFile(file)
		return nil
	}

	file, err := p.Cache.Resolve(path, src, parseFn, checkFn)
	if err != nil {
		if cyc, ok := err.(cache.ErrCycle); ok {
			env.AddErr(path, diag.NewCircularInclude(cyc.Path, span.Span{}))
			return env.Errs[path], env, nil
		}
		return nil, env, err
	}
	_ = file
	return env.Errs[path], env, nil
}

// resolveIncludes walks a parsed file's top-level include declarations,
// recursively resolving and merging each included file's globals into env,
// and records the dependency edge for dependents-relint propagation.
func (p *Pipeline) resolveIncludes(env *checker.TypeEnv, path string, file *ast.File) {
	for _, decl := range file.Decls {
		inc, ok := decl.(*ast.Include)
		if !ok {
			continue
		}
		absPath, err := p.resolver.Resolve(inc.Path.Value)
		if err != nil {
			env.AddErr(path, diag.NewUnresolvedInclude(inc.Path.Value, inc.Path.Span))
			continue
		}
		env.RecordDependency(path, absPath)

		src, err := os.ReadFile(absPath)
		if err != nil {
			env.AddErr(path, diag.NewUnresolvedInclude(inc.Path.Value, inc.Path.Span))
			continue
		}

		parseFn := func(p2 string, s []byte) (*ast.File, error) {
			l := lexer.New(string(s))
			prs := parser.New(l)
			f := prs.ParseFile(p2)
			for _, pe := range prs.Errors() {
				env.AddErr(p2, diag.NewSyntax(pe.Message, pe.Span))
			}
			return f, nil
		}
		checkFn := func(p2 string, f *ast.File) error {
			p.resolveIncludes(env, p2, f)
			checker.New(p2, env).CheckFile(f)
			return nil
		}

		if _, err := p.Cache.Resolve(absPath, src, parseFn, checkFn); err != nil {
			if cyc, ok := err.(cache.ErrCycle); ok {
				env.AddErr(path, diag.NewCircularInclude(cyc.Path, inc.Path.Span))
			}
		}
	}
}
