package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
	}{
		{"int", INT_TYPE},
		{"rule", RULE},
		{"runImmediately", RUN_IMMEDIATELY},
		{"minInterval", MIN_INTERVAL},
		{"foo", IDENT},
		{"Active", IDENT}, // keywords are case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupIdent(tt.ident); got != tt.want {
				t.Errorf("LookupIdent(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestIsTypeKeyword(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{INT_TYPE, true},
		{VOID_TYPE, true},
		{IDENT, false},
		{RULE, false},
	}
	for _, tt := range tests {
		if got := IsTypeKeyword(tt.typ); got != tt.want {
			t.Errorf("IsTypeKeyword(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
