package llm

import "testing"

func TestParseATSScore(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"plain score", "Great resume overall.\nATS Score: 7/10", 7, true},
		{"compatibility rating with decimal", "Summary...\nATS Compatibility Rating: 8.5/10", 8.5, true},
		{"compatibility score", "ATS Compatibility Score: 6/10", 6, true},
		{"case insensitive", "ats score: 9/10", 9, true},
		{"spaced slash", "ATS Score: 4 / 10", 4, true},
		{"no score line", "Solid resume, needs more keywords.", 0, false},
		{"score out of different scale ignored", "ATS Score: 85/100", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseATSScore(tc.in)
			if !tc.ok {
				if got != nil {
					t.Fatalf("expected nil score, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected score, got nil")
			}
			if *got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, *got)
			}
		})
	}
}

func TestParseATSScoreFirstMatchWins(t *testing.T) {
	in := "ATS Score: 3/10\nRevised estimate: ATS Score: 9/10"
	got := ParseATSScore(in)
	if got == nil || *got != 3 {
		t.Fatalf("expected first match 3, got %v", got)
	}
}

func TestParseATSScoreDoesNotClamp(t *testing.T) {
	// Out-of-range values pass through; bounds are enforced at persistence.
	got := ParseATSScore("ATS Rating: 9.9/10")
	if got == nil || *got != 9.9 {
		t.Fatalf("expected 9.9, got %v", got)
	}
}
