package matching

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "classic reference case", a: "kitten", b: "sitting", want: 3},
		{name: "identical strings", a: "identical", b: "identical", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "empty against non-empty", a: "", b: "abc", want: 3},
		{name: "non-empty against empty", a: "abcd", b: "", want: 4},
		{name: "single substitution", a: "abc", b: "abd", want: 1},
		{name: "pure insertion", a: "ac", b: "abc", want: 1},
		{name: "pure deletion", a: "abc", b: "ac", want: 1},
		{name: "completely different", a: "abc", b: "xyz", want: 3},
		{name: "multi-byte counts as one edit", a: "café", b: "cafe", want: 1},
		{name: "code points not bytes", a: "日本語", b: "日本", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "hello"},
		{"abc", "abd"},
		{"flaw", "lawn"},
		{"日本語", "nihongo"},
	}

	for _, p := range pairs {
		if ab, ba := Distance(p[0], p[1]), Distance(p[1], p[0]); ab != ba {
			t.Errorf("Distance(%q, %q) = %d but Distance(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestDistance_Deterministic(t *testing.T) {
	first := Distance("saturday", "sunday")
	for i := 0; i < 10; i++ {
		if got := Distance("saturday", "sunday"); got != first {
			t.Fatalf("Distance changed between calls: %d then %d", first, got)
		}
	}
	if first != 3 {
		t.Errorf("Distance(saturday, sunday) = %d, want 3", first)
	}
}
