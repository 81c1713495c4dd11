// Package diag defines the XS diagnostic kinds and their rendering, mirroring
// the message templates of the original implementation's errs_to_diags module.
package diag

import (
	"fmt"

	"github.com/Divy1211/xs-check/internal/span"
	"github.com/Divy1211/xs-check/internal/types"
)

type Severity int

const (
	Error Severity = iota
	Warning
)

// Kind is the diagnostic category. Only Warning carries Severity == Warning;
// every other kind is always an Error.
type Kind int

const (
	ExtraArg Kind = iota
	TypeMismatch
	NotCallable
	OpMismatch
	UndefinedName
	RedefinedName
	UnresolvedInclude
	Syntax
	WarningKind
)

// WarningCode enumerates the stable, declaration-ordered warning codes
// (Open Question (c)), starting at 1000 so they never collide with a kind
// ordinal.
type WarningCode int

const (
	WarnDuplicateRuleOption WarningCode = 1000 + iota
	WarnIntervalRange
)

// Diagnostic is one reported finding at a source location.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Span     span.Span
	Severity Severity
	Code     WarningCode // only meaningful when Kind == WarningKind
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", kindName(d.Kind), d.Message)
}

func kindName(k Kind) string {
	switch k {
	case ExtraArg:
		return "ExtraArg"
	case TypeMismatch:
		return "TypeMismatch"
	case NotCallable:
		return "NotCallable"
	case OpMismatch:
		return "OpMismatch"
	case UndefinedName:
		return "UndefinedName"
	case RedefinedName:
		return "RedefinedName"
	case UnresolvedInclude:
		return "UnresolvedInclude"
	case Syntax:
		return "Syntax"
	case WarningKind:
		return "Warning"
	}
	return "Unknown"
}

func NewExtraArg(fnName string, sp span.Span) Diagnostic {
	return Diagnostic{
		Kind:     ExtraArg,
		Message:  fmt.Sprintf("Extra argument provided to function %s", fnName),
		Span:     sp,
		Severity: Error,
	}
}

func NewTypeMismatch(expected, actual types.Type, sp span.Span) Diagnostic {
	return Diagnostic{
		Kind:     TypeMismatch,
		Message:  fmt.Sprintf("Expected type %s but found %s", expected, actual),
		Span:     sp,
		Severity: Error,
	}
}

func NewNotCallable(name string, actual types.Type, sp span.Span) Diagnostic {
	return Diagnostic{
		Kind:     NotCallable,
		Message:  fmt.Sprintf("The variable %s is of type %s and not a function", name, actual),
		Span:     sp,
		Severity: Error,
	}
}

func NewOpMismatch(op string, t1, t2 types.Type, note string, sp span.Span) Diagnostic {
	msg := fmt.Sprintf("Cannot %s types %s and %s", op, t1, t2)
	if note != "" {
		msg += "\nNote: " + note
	}
	return Diagnostic{Kind: OpMismatch, Message: msg, Span: sp, Severity: Error}
}

func NewUndefinedName(name string, sp span.Span) Diagnostic {
	return Diagnostic{
		Kind:     UndefinedName,
		Message:  fmt.Sprintf("Name %s is not defined", name),
		Span:     sp,
		Severity: Error,
	}
}

func NewRedefinedName(name string, sp span.Span) Diagnostic {
	return Diagnostic{
		Kind:     RedefinedName,
		Message:  fmt.Sprintf("Name %s is already defined", name),
		Span:     sp,
		Severity: Error,
	}
}

func NewUnresolvedInclude(path string, sp span.Span) Diagnostic {
	return Diagnostic{
		Kind:     UnresolvedInclude,
		Message:  fmt.Sprintf("Failed to resolve included file %s", path),
		Span:     sp,
		Severity: Error,
	}
}

func NewSyntax(message string, sp span.Span) Diagnostic {
	return Diagnostic{Kind: Syntax, Message: message, Span: sp, Severity: Error}
}

func NewWarning(code WarningCode, message string, sp span.Span) Diagnostic {
	return Diagnostic{Kind: WarningKind, Message: message, Span: sp, Severity: Warning, Code: code}
}

func NewCircularInclude(path string, sp span.Span) Diagnostic {
	return Diagnostic{
		Kind:     Syntax,
		Message:  fmt.Sprintf("Circular dependency detected while parsing %s", path),
		Span:     sp,
		Severity: Error,
	}
}
