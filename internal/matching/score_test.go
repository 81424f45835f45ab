package matching

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical strings", a: "some text", b: "some text", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "whitespace only is empty after normalization", a: "   ", b: "\t\n", want: 100},
		{name: "one substitution out of three", a: "abc", b: "abd", want: (3.0 - 1.0) / 3.0 * 100},
		{name: "case and spacing ignored", a: "Hello   World", b: "hello world", want: 100},
		{name: "completely different same length", a: "aaa", b: "zzz", want: 0},
		{name: "empty against non-empty", a: "", b: "abcd", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Two strings of very different lengths must score low even when the shorter
// is a verbatim substring of the longer. This asymmetry is intentional.
func TestSimilarity_LengthAsymmetry(t *testing.T) {
	short := "a needle"
	long := "a needle buried in a very large haystack of additional text that keeps going on"

	got := Similarity(short, long)
	if got > 30 {
		t.Errorf("Similarity(short, long substring) = %v, want a low score", got)
	}
}

func TestSimilarity_Deterministic(t *testing.T) {
	first := Similarity("The quick brown fox", "The quick brown fax")
	for i := 0; i < 10; i++ {
		if got := Similarity("The quick brown fox", "The quick brown fax"); got != first {
			t.Fatalf("Similarity changed between calls: %v then %v", first, got)
		}
	}
}

func TestRounding(t *testing.T) {
	// abc vs abd: distance 1 over max length 3 -> 66.666...
	sim := Similarity("abc", "abd")

	if got := Round2(sim); got != 66.67 {
		t.Errorf("Round2(%v) = %v, want 66.67", sim, got)
	}
	if got := RoundPercent(sim); got != 67 {
		t.Errorf("RoundPercent(%v) = %d, want 67", sim, got)
	}

	// Half rounds away from zero.
	if got := RoundPercent(66.5); got != 67 {
		t.Errorf("RoundPercent(66.5) = %d, want 67", got)
	}
}
