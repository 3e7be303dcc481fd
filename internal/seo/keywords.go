package seo

import (
	"sort"
	"strings"
	"unicode"
)

// Keyword is a candidate search term found in page copy.
type Keyword struct {
	Term  string `json:"term"`
	Count int    `json:"count"`

	// Filled in when search volume data is available.
	SearchVolume int     `json:"searchVolume,omitempty"`
	CPC          float64 `json:"cpc,omitempty"`
}

const maxKeywords = 15

var germanStopwords = map[string]struct{}{}

func init() {
	words := []string{
		"aber", "alle", "allem", "allen", "aller", "alles", "auch", "auf",
		"aus", "bei", "beim", "bis", "dann", "das", "dass", "dein", "deine",
		"dem", "den", "der", "des", "dich", "die", "dies", "diese", "diesem",
		"diesen", "dieser", "dieses", "dir", "doch", "dort", "durch", "ein",
		"eine", "einem", "einen", "einer", "eines", "euch", "euer", "eure",
		"für", "gegen", "haben", "hast", "hatte", "hier", "ihre", "ihrem",
		"ihren", "ihrer", "ihres", "immer", "ist", "jede", "jedem", "jeden",
		"jeder", "jedes", "kann", "kein", "keine", "können", "machen", "mehr",
		"mein", "meine", "mit", "nach", "nicht", "noch", "nur", "oder",
		"ohne", "schon", "sehr", "sein", "seine", "sich", "sie", "sind",
		"über", "und", "uns", "unser", "unsere", "unter", "vom", "von",
		"vor", "war", "waren", "was", "weil", "wenn", "werden", "wie",
		"wieder", "wir", "wird", "zum", "zur",
		// English fillers show up on bilingual sites.
		"and", "are", "for", "from", "have", "that", "the", "this", "with",
		"you", "your",
	}
	for _, w := range words {
		germanStopwords[w] = struct{}{}
	}
}

// Extra weight per occurrence in the prominent page parts.
const (
	weightTitle       = 5
	weightDescription = 3
	weightHeading     = 2
)

// ExtractKeywords tokenizes the page copy plus its title, description and
// headings, filters stop words and tokens shorter than three characters, and
// returns the 15 highest-weighted terms. A term in the title or a heading
// outranks one that merely repeats in body copy.
func ExtractKeywords(title, description string, headings []string, content string) []Keyword {
	counts := make(map[string]int)
	collect := func(text string, weight int) {
		for _, raw := range strings.Fields(strings.ToLower(text)) {
			token := strings.TrimFunc(raw, func(r rune) bool {
				return !unicode.IsLetter(r)
			})
			if len([]rune(token)) <= 2 {
				continue
			}
			if _, stop := germanStopwords[token]; stop {
				continue
			}
			if !isAlpha(token) {
				continue
			}
			counts[token] += weight
		}
	}

	collect(content, 1)
	collect(title, weightTitle)
	collect(description, weightDescription)
	for _, heading := range headings {
		collect(heading, weightHeading)
	}

	ranked := make([]Keyword, 0, len(counts))
	for term, count := range counts {
		ranked = append(ranked, Keyword{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})
	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	return ranked
}

func isAlpha(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(token) > 0
}
