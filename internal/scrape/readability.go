package scrape

import "strings"

// Readability level labels, German to match the report language.
const (
	LevelEinfach = "Einfach"
	LevelMittel  = "Mittel"
	LevelKomplex = "Komplex"
)

// ComputeReadability scores page copy from sentence and word length. Long
// sentences cost 2 points per word over 20, long words 10 points per
// character over 6. The score is clamped to [0,100].
func ComputeReadability(text string) Readability {
	sentences := splitSentences(text)
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return Readability{Score: 0, Level: LevelKomplex}
	}

	totalWordLen := 0
	for _, word := range words {
		totalWordLen += len([]rune(word))
	}
	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	avgWordLen := float64(totalWordLen) / float64(len(words))

	score := 100.0
	if avgSentenceLen > 20 {
		score -= 2 * (avgSentenceLen - 20)
	}
	if avgWordLen > 6 {
		score -= 10 * (avgWordLen - 6)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := LevelKomplex
	switch {
	case score >= 80:
		level = LevelEinfach
	case score >= 60:
		level = LevelMittel
	}

	return Readability{
		Score:          int(score),
		Level:          level,
		AvgSentenceLen: avgSentenceLen,
		AvgWordLen:     avgWordLen,
		SentenceCount:  len(sentences),
		WordCount:      len(words),
	}
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); len(s) > 1 {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); len(strings.Fields(s)) >= 3 {
		sentences = append(sentences, s)
	}
	return sentences
}
