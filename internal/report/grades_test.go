package report

import "testing"

func TestGradeThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A"}, {90, "A"}, {89.9, "B"}, {80, "B"}, {79, "C"},
		{70, "C"}, {69, "D"}, {50, "D"}, {49, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := Grade(tc.score); got != tc.want {
			t.Fatalf("Grade(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestGradeNoClamping(t *testing.T) {
	if got := Grade(120); got != "A" {
		t.Fatalf("Grade(120) = %q, want A", got)
	}
	if got := Grade(-10); got != "F" {
		t.Fatalf("Grade(-10) = %q, want F", got)
	}
}

func TestGradeMonotonic(t *testing.T) {
	rank := map[string]int{"A": 5, "B": 4, "C": 3, "D": 2, "F": 1}
	prev := 0
	for score := 0.0; score <= 100; score++ {
		cur := rank[Grade(score)]
		if cur < prev {
			t.Fatalf("grade went down at score %v", score)
		}
		prev = cur
	}
}

func TestScoreColorBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "#10b981"}, {80, "#10b981"}, {79, "#f59e0b"},
		{50, "#f59e0b"}, {49, "#ef4444"}, {0, "#ef4444"},
	}
	for _, tc := range cases {
		if got := ScoreColor(tc.score); got != tc.want {
			t.Fatalf("ScoreColor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
