// Package types implements the XS static type lattice.
package types

import "strings"

type Kind int

const (
	Int Kind = iota
	Float
	Bool
	Str
	Vec
	Void
	Func
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "string"
	case Vec:
		return "vector"
	case Void:
		return "void"
	case Func:
		return "func"
	}
	return "?"
}

// Type is a value in the XS type lattice. Signature is populated only when
// Kind == Func, and its LAST element is always the function's return type.
type Type struct {
	Kind      Kind
	Signature []Type
}

func T(k Kind) Type { return Type{Kind: k} }

func FuncType(sig []Type) Type { return Type{Kind: Func, Signature: sig} }

// Numeric reports whether t is Int or Float.
func (t Type) Numeric() bool {
	return t.Kind == Int || t.Kind == Float
}

// Params returns the declared parameter types, excluding the trailing
// return-type slot. Empty for non-Func types.
func (t Type) Params() []Type {
	if t.Kind != Func || len(t.Signature) == 0 {
		return nil
	}
	return t.Signature[:len(t.Signature)-1]
}

// Return returns the function's declared return type. Returns Void for
// non-Func types.
func (t Type) Return() Type {
	if t.Kind != Func || len(t.Signature) == 0 {
		return T(Void)
	}
	return t.Signature[len(t.Signature)-1]
}

// Eq reports exact structural equality (Int and Float are NOT equal here -
// the checker's type_cmp applies mutual-numeric-assignability as a separate,
// explicit relaxation).
func (t Type) Eq(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind != Func {
		return true
	}
	if len(t.Signature) != len(other.Signature) {
		return false
	}
	for i := range t.Signature {
		if !t.Signature[i].Eq(other.Signature[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	if t.Kind != Func {
		return t.Kind.String()
	}
	parts := make([]string, len(t.Signature))
	for i, p := range t.Signature {
		parts[i] = p.String()
	}
	return "func(" + strings.Join(parts[:max(0, len(parts)-1)], ", ") + ") -> " + t.Return().String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
