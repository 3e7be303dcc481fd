package report

// Grade maps a 0-100 score to a letter grade. Scores are used as-is, without
// clamping, so an out-of-range input grades like its nearest band.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// ScoreColor returns the hex color for a score band, used in the rendered
// report and email.
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return "#10b981"
	case score >= 50:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}
