package diag

import (
	"testing"

	"github.com/Divy1211/xs-check/internal/span"
	"github.com/Divy1211/xs-check/internal/types"
)

func TestOnlyWarningKindIsWarningSeverity(t *testing.T) {
	sp := span.Span{Start: 0, End: 1}
	kinds := []Diagnostic{
		NewExtraArg("f", sp),
		NewTypeMismatch(types.T(types.Int), types.T(types.Bool), sp),
		NewNotCallable("f", types.T(types.Int), sp),
		NewOpMismatch("add", types.T(types.Int), types.T(types.Bool), "", sp),
		NewUndefinedName("x", sp),
		NewRedefinedName("x", sp),
		NewUnresolvedInclude("a.xs", sp),
		NewSyntax("bad token", sp),
	}
	for _, d := range kinds {
		if d.Severity != Error {
			t.Errorf("%v: expected Error severity, got %v", d.Kind, d.Severity)
		}
	}
	w := NewWarning(WarnIntervalRange, "minInterval exceeds maxInterval", sp)
	if w.Severity != Warning {
		t.Fatal("expected Warning severity for WarningKind")
	}
}

func TestStringFormat(t *testing.T) {
	d := NewUndefinedName("foo", span.Span{})
	want := `UndefinedName: Name foo is not defined`
	if d.String() != want {
		t.Fatalf("got %q, want %q", d.String(), want)
	}
}

func TestWarningCodeFromStringRoundTrips(t *testing.T) {
	for code, name := range warningNames {
		got, ok := WarningCodeFromString(name)
		if !ok || got != code {
			t.Fatalf("WarningCodeFromString(%q) = (%v, %v), want (%v, true)", name, got, ok, code)
		}
	}
	if _, ok := WarningCodeFromString("not-a-real-warning"); ok {
		t.Fatal("expected ok=false for an unrecognized warning name")
	}
}
