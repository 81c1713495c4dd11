package checker

import (
	"testing"

	"github.com/Divy1211/xs-check/internal/diag"
	"github.com/Divy1211/xs-check/internal/lexer"
	"github.com/Divy1211/xs-check/internal/parser"
)

func checkSource(t *testing.T, src string) ([]diag.Diagnostic, *TypeEnv) {
	t.Helper()
	p := parser.New(lexer.New(src))
	f := p.ParseFile("test.xs")
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	env := NewTypeEnv(nil)
	fileEnv := env.Clone()
	New("test.xs", fileEnv).CheckFile(f)
	return fileEnv.Errs["test.xs"], fileEnv
}

func hasKind(errs []diag.Diagnostic, k diag.Kind) int {
	n := 0
	for _, e := range errs {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func findKind(errs []diag.Diagnostic, k diag.Kind) diag.Diagnostic {
	for _, e := range errs {
		if e.Kind == k {
			return e
		}
	}
	return diag.Diagnostic{}
}

// TestExtraArg mirrors spec scenario 4: calling f(1, 2) against
// `void f(int x)` should report exactly one ExtraArg, at the second
// argument - arity is checked against len(signature)-1, i.e. the
// parameter count excluding the trailing return-type slot.
func TestExtraArg(t *testing.T) {
	errs, _ := checkSource(t, `void f(int x) {}
void main() { f(1, 2); }`)
	if n := hasKind(errs, diag.ExtraArg); n != 1 {
		t.Fatalf("expected exactly 1 ExtraArg, got %d: %v", n, errs)
	}
	want := "ExtraArg: Extra argument provided to function f"
	if got := findKind(errs, diag.ExtraArg).String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMissingArgsTolerated(t *testing.T) {
	errs, _ := checkSource(t, `void f(int x, int y) {}
void main() { f(1); }`)
	if n := hasKind(errs, diag.ExtraArg); n != 0 {
		t.Fatalf("expected no ExtraArg for missing args, got %d: %v", n, errs)
	}
}

// TestUndefinedName mirrors spec scenario 1: the exact diagnostic string
// is pinned by the spec, not just its kind.
func TestUndefinedName(t *testing.T) {
	errs, _ := checkSource(t, `void main() { x = 1; }`)
	if n := hasKind(errs, diag.UndefinedName); n != 1 {
		t.Fatalf("expected 1 UndefinedName, got %d: %v", n, errs)
	}
	want := "UndefinedName: Name x is not defined"
	if got := findKind(errs, diag.UndefinedName).String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRedefinedNameSameScope(t *testing.T) {
	errs, _ := checkSource(t, `void main() { int x = 1; int x = 2; }`)
	if n := hasKind(errs, diag.RedefinedName); n != 1 {
		t.Fatalf("expected 1 RedefinedName, got %d: %v", n, errs)
	}
}

// XS has no block scoping: rebinding the same name in a nested block is
// still a RedefinedName, not a shadow.
func TestNoBlockScoping(t *testing.T) {
	errs, _ := checkSource(t, `void main() { int x = 1; if (true) { int x = 2; } }`)
	if n := hasKind(errs, diag.RedefinedName); n != 1 {
		t.Fatalf("expected 1 RedefinedName from nested-block rebind, got %d: %v", n, errs)
	}
}

// TestOpMismatchArith mirrors spec scenario 2: the exact diagnostic string
// is pinned by the spec, not just its kind.
func TestOpMismatchArith(t *testing.T) {
	errs, _ := checkSource(t, `int a = 1 + "x";`)
	if n := hasKind(errs, diag.OpMismatch); n != 1 {
		t.Fatalf("expected 1 OpMismatch, got %d: %v", n, errs)
	}
	want := "OpMismatch: Cannot add types int and string"
	if got := findKind(errs, diag.OpMismatch).String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIfConditionMustBeBool(t *testing.T) {
	errs, _ := checkSource(t, `void main() { if (1) {} }`)
	if n := hasKind(errs, diag.TypeMismatch); n != 1 {
		t.Fatalf("expected 1 TypeMismatch for non-bool if condition, got %d: %v", n, errs)
	}
}

func TestIntFloatMutuallyAssignable(t *testing.T) {
	errs, _ := checkSource(t, `float x = 1;`)
	if len(errs) != 0 {
		t.Fatalf("expected int->float assignment to be allowed, got %v", errs)
	}
}

func TestReturnTypeChecked(t *testing.T) {
	errs, _ := checkSource(t, `bool f() { return 1; }`)
	if n := hasKind(errs, diag.TypeMismatch); n != 1 {
		t.Fatalf("expected 1 TypeMismatch for bad return, got %d: %v", n, errs)
	}
}

// Nested function declarations are rejected - either the parser's
// statement-level dispatch refuses to treat a type-keyword-led statement as
// a nested fn def and reports a Syntax error, or (if parsed) the checker's
// CurrentFnEnv guard reports one. Either layer catching it satisfies the
// invariant that nested fn_def never silently succeeds.
func TestNestedFnDefRejected(t *testing.T) {
	p := parser.New(lexer.New(`void outer() { void inner() {} }`))
	f := p.ParseFile("test.xs")
	if len(p.Errors()) > 0 {
		return
	}
	env := NewTypeEnv(nil).Clone()
	New("test.xs", env).CheckFile(f)
	if len(env.Errs["test.xs"]) == 0 {
		t.Fatal("expected an error for nested function declaration, got none")
	}
}

func TestRuleGroupMustBeDeclared(t *testing.T) {
	errs, _ := checkSource(t, `rule r group "undeclared" { }`)
	if n := hasKind(errs, diag.UndefinedName); n != 1 {
		t.Fatalf("expected 1 UndefinedName for undeclared group, got %d: %v", n, errs)
	}
}

func TestRuleGroupDeclaredOk(t *testing.T) {
	errs, _ := checkSource(t, `group "combat";
rule r group "combat" { }`)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestDuplicateRuleOptionWarns(t *testing.T) {
	errs, _ := checkSource(t, `rule r active active { }`)
	found := false
	for _, e := range errs {
		if e.Severity == diag.Warning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning for duplicate rule option, got %v", errs)
	}
}

func TestMinIntervalGreaterThanMaxWarns(t *testing.T) {
	errs, _ := checkSource(t, `rule r minInterval 10 maxInterval 5 { }`)
	found := false
	for _, e := range errs {
		if e.Severity == diag.Warning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning for minInterval > maxInterval, got %v", errs)
	}
}
