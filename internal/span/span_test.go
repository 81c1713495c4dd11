package span

import "testing"

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{0, 3}, Span{10, 14}, Span{0, 14}},
		{"overlapping", Span{2, 8}, Span{5, 10}, Span{2, 10}},
		{"nested", Span{0, 20}, Span{5, 10}, Span{0, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"earlier start", Span{0, 5}, Span{1, 5}, true},
		{"same start, shorter", Span{0, 3}, Span{0, 5}, true},
		{"identical", Span{1, 2}, Span{1, 2}, false},
		{"later start", Span{5, 6}, Span{1, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpannedMap(t *testing.T) {
	s := New(3, Span{0, 1})
	doubled := Map(s, func(v int) int { return v * 2 })
	if doubled.Value != 6 {
		t.Errorf("Value = %d, want 6", doubled.Value)
	}
	if doubled.Span != s.Span {
		t.Errorf("Span changed: got %v, want %v", doubled.Span, s.Span)
	}
}
