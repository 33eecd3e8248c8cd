package game

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Rain  ", "rain"},
		{"CAFÉ", "cafe"},
		{"Señor", "senor"},
		{"rain", "rain"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		guess, target, want string
	}{
		{"rain", "rain", ClassCorrect},
		{"  RAIN ", "rain", ClassCorrect},
		{"café", "cafe", ClassCorrect},

		// One substitution.
		{"raim", "rain", ClassClose},
		// Adjacent transposition.
		{"rian", "rain", ClassClose},
		// One deletion / insertion.
		{"rai", "rain", ClassClose},
		{"rains", "rain", ClassClose},

		// Two edits away, or unrelated.
		{"ram", "rain", ClassGuess},
		{"nair", "rain", ClassGuess},
		{"sunshine", "rain", ClassGuess},
		{"", "rain", ClassGuess},
	}
	for _, tc := range cases {
		if got := Classify(tc.guess, tc.target); got != tc.want {
			t.Fatalf("Classify(%q, %q) = %q, want %q", tc.guess, tc.target, got, tc.want)
		}
	}
}

func TestGuessAward(t *testing.T) {
	cases := []struct{ prior, want int }{
		{0, 100},
		{1, 90},
		{2, 80},
		{9, 10},
		{15, 10}, // floored
	}
	for _, tc := range cases {
		if got := guessAward(tc.prior); got != tc.want {
			t.Fatalf("guessAward(%d) = %d, want %d", tc.prior, got, tc.want)
		}
	}
}
