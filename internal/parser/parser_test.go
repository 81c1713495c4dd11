package parser

import (
	"testing"

	"github.com/Divy1211/xs-check/internal/ast"
	"github.com/Divy1211/xs-check/internal/lexer"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	p := New(lexer.New(src))
	f := p.ParseFile("test.xs")
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return f
}

func TestParseVarDef(t *testing.T) {
	f := parse(t, `int x = 1 + 2;`)
	if len(f.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(f.Decls))
	}
	vd, ok := f.Decls[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected *ast.VarDef, got %T", f.Decls[0])
	}
	if vd.Name.Value != "x" || vd.Type.Name != "int" {
		t.Fatalf("unexpected var def: %+v", vd)
	}
	if _, ok := vd.Value.(*ast.BinaryArith); !ok {
		t.Fatalf("expected BinaryArith value, got %T", vd.Value)
	}
}

func TestParseFnDef(t *testing.T) {
	f := parse(t, `void main() { x = 1; }`)
	fn, ok := f.Decls[0].(*ast.FnDef)
	if !ok {
		t.Fatalf("expected *ast.FnDef, got %T", f.Decls[0])
	}
	if fn.ReturnType.Name != "void" || fn.Name.Value != "main" {
		t.Fatalf("unexpected fn def: %+v", fn)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Stmts))
	}
}

func TestParseNotIsAlwaysSyntaxError(t *testing.T) {
	p := New(lexer.New(`bool main() { return !true; }`))
	p.ParseFile("test.xs")
	if len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error for unary not")
	}
	found := false
	for _, e := range p.Errors() {
		if e.Message == "Syntax: Unary not (!) is not allowed in XS. yES" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected exact not-allowed message, got: %v", p.Errors())
	}
}

func TestParseCallArgs(t *testing.T) {
	f := parse(t, `void main() { f(1, 2); }`)
	fn := f.Decls[0].(*ast.FnDef)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	call, ok := stmt.X.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", stmt.X)
	}
	if call.Fn.Value != "f" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestParseIfElse(t *testing.T) {
	f := parse(t, `void main() { if (true) { x = 1; } else { x = 2; } }`)
	fn := f.Decls[0].(*ast.FnDef)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", fn.Body.Stmts[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestParseForLoop(t *testing.T) {
	f := parse(t, `void main() { for (int i = 0; i < 10; i++) { } }`)
	fn := f.Decls[0].(*ast.FnDef)
	forStmt, ok := fn.Body.Stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", fn.Body.Stmts[0])
	}
	if forStmt.Init == nil || forStmt.Cond == nil || forStmt.Step == nil {
		t.Fatalf("expected all three for-clauses populated: %+v", forStmt)
	}
}

func TestParseRuleDef(t *testing.T) {
	f := parse(t, `group "combat";
rule attack active highFrequency minInterval 5 group "combat" { }`)
	if len(f.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(f.Decls))
	}
	rd, ok := f.Decls[1].(*ast.RuleDef)
	if !ok {
		t.Fatalf("expected *ast.RuleDef, got %T", f.Decls[1])
	}
	if len(rd.Opts) != 4 {
		t.Fatalf("expected 4 rule opts, got %d: %+v", len(rd.Opts), rd.Opts)
	}
}

func TestParseClassDef(t *testing.T) {
	f := parse(t, `class Point { int x; int y; };`)
	cd, ok := f.Decls[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", f.Decls[0])
	}
	if len(cd.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(cd.Members))
	}
}

func TestParseVecLiteral(t *testing.T) {
	f := parse(t, `vector v = {1, 2, 3};`)
	vd := f.Decls[0].(*ast.VarDef)
	if _, ok := vd.Value.(*ast.VecLit); !ok {
		t.Fatalf("expected *ast.VecLit, got %T", vd.Value)
	}
}

func TestParseCompoundAssign(t *testing.T) {
	f := parse(t, `void main() { x += 1; }`)
	fn := f.Decls[0].(*ast.FnDef)
	assign, ok := fn.Body.Stmts[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", fn.Body.Stmts[0])
	}
	if assign.Op != ast.AssignAdd {
		t.Fatalf("expected AssignAdd, got %v", assign.Op)
	}
}

func TestParseErrorRecoveryDoesNotPanic(t *testing.T) {
	p := New(lexer.New(`int x = ; int y = 2;`))
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("parser panicked: %v", r)
		}
	}()
	p.ParseFile("test.xs")
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one parse error")
	}
}
