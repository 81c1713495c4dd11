// Package ast defines the XS abstract syntax tree.
package ast

import (
	"github.com/Divy1211/xs-check/internal/span"
	"github.com/Divy1211/xs-check/internal/types"
)

// Node is any AST node.
type Node interface {
	node()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function/rule body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
	Span() span.Span
}

// File is the parsed, unresolved contents of one source file.
type File struct {
	Path  string
	Decls []Decl
}

func (*File) node() {}

// TypeRef is a parsed, not-yet-resolved type name (builtin keyword or a
// previously-declared class name).
type TypeRef struct {
	Name string
	Span span.Span
}

// Param is one function parameter.
type Param struct {
	Type TypeRef
	Name span.Spanned[string]
}

// ---- Declarations ----

type VarDef struct {
	Type  TypeRef
	Name  span.Spanned[string]
	Value Expr // nil if uninitialized
	Doc   string
	Sp    span.Span
}

func (*VarDef) node()     {}
func (*VarDef) declNode() {}

type FnDef struct {
	ReturnType TypeRef
	Name       span.Spanned[string]
	Params     []Param
	Body       *Block
	Doc        string
	Sp         span.Span
}

func (*FnDef) node()     {}
func (*FnDef) declNode() {}

type ClassDef struct {
	Name    span.Spanned[string]
	Members []*VarDef
	Doc     string
	Sp      span.Span
}

func (*ClassDef) node()     {}
func (*ClassDef) declNode() {}

// RuleOptKind enumerates the option forms a rule declaration may carry.
type RuleOptKind int

const (
	OptActive RuleOptKind = iota
	OptInactive
	OptRunImmediately
	OptHighFrequency
	OptMinInterval
	OptMaxInterval
	OptPriority
	OptGroup
)

type RuleOpt struct {
	Kind    RuleOptKind
	IntArg  int    // valid for MinInterval/MaxInterval/Priority
	StrArg  string // valid for Group
	Sp      span.Span
}

type RuleDef struct {
	Name span.Spanned[string]
	Opts []RuleOpt
	Body *Block
	Doc  string
	Sp   span.Span
}

func (*RuleDef) node()     {}
func (*RuleDef) declNode() {}

type Include struct {
	Path span.Spanned[string]
	Sp   span.Span
}

func (*Include) node()     {}
func (*Include) declNode() {}

type GroupDecl struct {
	Name span.Spanned[string]
	Sp   span.Span
}

func (*GroupDecl) node()     {}
func (*GroupDecl) declNode() {}

// ---- Statements ----

type Block struct {
	Stmts []Stmt
	Sp    span.Span
}

func (*Block) node()     {}
func (*Block) stmtNode() {}

type VarDefStmt struct{ Def *VarDef }

func (*VarDefStmt) node()     {}
func (*VarDefStmt) stmtNode() {}

type ExprStmt struct {
	X  Expr
	Sp span.Span
}

func (*ExprStmt) node()     {}
func (*ExprStmt) stmtNode() {}

type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
)

type Assign struct {
	Target span.Spanned[string]
	Op     AssignOp
	Value  Expr
	Sp     span.Span
}

func (*Assign) node()     {}
func (*Assign) stmtNode() {}

type IncDecOp int

const (
	IncOp IncDecOp = iota
	DecOp
)

type IncDec struct {
	Target span.Spanned[string]
	Op     IncDecOp
	Sp     span.Span
}

func (*IncDec) node()     {}
func (*IncDec) stmtNode() {}

type If struct {
	Cond Expr
	Then *Block
	Else Stmt // *Block or *If, nil if no else
	Sp   span.Span
}

func (*If) node()     {}
func (*If) stmtNode() {}

type While struct {
	Cond Expr
	Body *Block
	Sp   span.Span
}

func (*While) node()     {}
func (*While) stmtNode() {}

type For struct {
	Init Stmt // VarDefStmt, Assign, or nil
	Cond Expr // nil means "true"
	Step Stmt // Assign, IncDec, or nil
	Body *Block
	Sp   span.Span
}

func (*For) node()     {}
func (*For) stmtNode() {}

type Break struct{ Sp span.Span }

func (*Break) node()     {}
func (*Break) stmtNode() {}

type Continue struct{ Sp span.Span }

func (*Continue) node()     {}
func (*Continue) stmtNode() {}

type Return struct {
	Value Expr // nil for bare `return;`
	Sp    span.Span
}

func (*Return) node()     {}
func (*Return) stmtNode() {}

// ---- Expressions ----

type IntLit struct {
	Value int64
	Sp    span.Span
}

func (*IntLit) node()         {}
func (*IntLit) exprNode()     {}
func (e *IntLit) Span() span.Span { return e.Sp }

type FloatLit struct {
	Value float64
	Sp    span.Span
}

func (*FloatLit) node()         {}
func (*FloatLit) exprNode()     {}
func (e *FloatLit) Span() span.Span { return e.Sp }

type BoolLit struct {
	Value bool
	Sp    span.Span
}

func (*BoolLit) node()         {}
func (*BoolLit) exprNode()     {}
func (e *BoolLit) Span() span.Span { return e.Sp }

type StrLit struct {
	Value string
	Sp    span.Span
}

func (*StrLit) node()         {}
func (*StrLit) exprNode()     {}
func (e *StrLit) Span() span.Span { return e.Sp }

type VecLit struct {
	X, Y, Z Expr
	Sp      span.Span
}

func (*VecLit) node()         {}
func (*VecLit) exprNode()     {}
func (e *VecLit) Span() span.Span { return e.Sp }

type Ident struct {
	Name string
	Sp   span.Span
}

func (*Ident) node()         {}
func (*Ident) exprNode()     {}
func (e *Ident) Span() span.Span { return e.Sp }

type Paren struct {
	X  Expr
	Sp span.Span
}

func (*Paren) node()         {}
func (*Paren) exprNode()     {}
func (e *Paren) Span() span.Span { return e.Sp }

type Call struct {
	Fn   span.Spanned[string]
	Args []Expr
	Sp   span.Span
}

func (*Call) node()         {}
func (*Call) exprNode()     {}
func (e *Call) Span() span.Span { return e.Sp }

type Neg struct {
	X  Expr
	Sp span.Span
}

func (*Neg) node()         {}
func (*Neg) exprNode()     {}
func (e *Neg) Span() span.Span { return e.Sp }

type Not struct {
	X  Expr
	Sp span.Span
}

func (*Not) node()         {}
func (*Not) exprNode()     {}
func (e *Not) Span() span.Span { return e.Sp }

type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
)

func (op ArithOp) Name() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "subtract"
	case Mul:
		return "multiply"
	case Div:
		return "divide"
	case Mod:
		return "reduce modulo"
	}
	return "?"
}

type BinaryArith struct {
	Op          ArithOp
	Left, Right Expr
	Sp          span.Span
}

func (*BinaryArith) node()         {}
func (*BinaryArith) exprNode()     {}
func (e *BinaryArith) Span() span.Span { return e.Sp }

type RelOp int

const (
	Lt RelOp = iota
	Gt
	LtEq
	GtEq
	Eq
	NotEq
)

type BinaryRel struct {
	Op          RelOp
	Left, Right Expr
	Sp          span.Span
}

func (*BinaryRel) node()         {}
func (*BinaryRel) exprNode()     {}
func (e *BinaryRel) Span() span.Span { return e.Sp }

type LogOp int

const (
	LogAnd LogOp = iota
	LogOr
)

type BinaryLog struct {
	Op          LogOp
	Left, Right Expr
	Sp          span.Span
}

func (*BinaryLog) node()         {}
func (*BinaryLog) exprNode()     {}
func (e *BinaryLog) Span() span.Span { return e.Sp }

// ErrorExpr is a synthetic node substituted at a point the parser could not
// produce a valid expression, letting recovery continue without panicking.
type ErrorExpr struct {
	Message string
	Sp      span.Span
}

func (*ErrorExpr) node()         {}
func (*ErrorExpr) exprNode()     {}
func (e *ErrorExpr) Span() span.Span { return e.Sp }

// builtinKinds is consulted (via BuiltinKind) by the checker when it needs to materialize a
// types.Type from a TypeRef; kept here to avoid an import cycle between ast
// and types for the handful of builtin-keyword cases.
var builtinKinds = map[string]types.Kind{
	"int":    types.Int,
	"float":  types.Float,
	"bool":   types.Bool,
	"string": types.Str,
	"vector": types.Vec,
	"void":   types.Void,
}

// BuiltinKind reports the types.Kind for a builtin type keyword, and ok=false
// if name is not one (e.g. it names a user class).
func BuiltinKind(name string) (types.Kind, bool) {
	k, ok := builtinKinds[name]
	return k, ok
}
