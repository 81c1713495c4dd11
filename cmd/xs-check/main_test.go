package main

import (
	"testing"

	"github.com/Divy1211/xs-check/internal/diag"
)

func TestParseIgnoresResolvesNames(t *testing.T) {
	ignores, err := parseIgnores("interval-range, duplicate-rule-option")
	if err != nil {
		t.Fatal(err)
	}
	if !ignores[int(diag.WarnIntervalRange)] || !ignores[int(diag.WarnDuplicateRuleOption)] {
		t.Fatalf("expected both warning names resolved, got %v", ignores)
	}
}

func TestParseIgnoresRejectsUnknownName(t *testing.T) {
	if _, err := parseIgnores("not-a-real-warning"); err == nil {
		t.Fatal("expected an error for an unrecognized warning name")
	}
}

func TestParseIgnoresEmpty(t *testing.T) {
	ignores, err := parseIgnores("")
	if err != nil {
		t.Fatal(err)
	}
	if len(ignores) != 0 {
		t.Fatalf("expected no ignores, got %v", ignores)
	}
}
