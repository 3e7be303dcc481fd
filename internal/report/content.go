package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Content is the structured report text. It comes from the LLM when one is
// configured and from FallbackContent otherwise, so rendering never depends
// on the model following instructions.
type Content struct {
	Greeting            string           `json:"greeting"`
	Summary             string           `json:"summary"`
	KeyInsights         []string         `json:"keyInsights"`
	PerformanceAnalysis string           `json:"performanceAnalysis"`
	SEOAnalysis         string           `json:"seoAnalysis"`
	SecurityAnalysis    string           `json:"securityAnalysis"`
	Recommendations     []Recommendation `json:"recommendations"`
	Positives           []string         `json:"positives"`
	Conclusion          string           `json:"conclusion"`
}

// Recommendation is one prioritized action item.
type Recommendation struct {
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// ParseContent extracts the JSON object from raw model output. Models wrap
// JSON in code fences or prose; everything outside the outermost braces is
// discarded.
func ParseContent(raw string) (Content, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return Content{}, fmt.Errorf("no JSON object in model output")
	}

	var content Content
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &content); err != nil {
		return Content{}, fmt.Errorf("parse model output: %w", err)
	}
	if strings.TrimSpace(content.Summary) == "" && strings.TrimSpace(content.Greeting) == "" {
		return Content{}, fmt.Errorf("model output missing required fields")
	}
	return content, nil
}

// FallbackContent builds deterministic German report text from the measured
// data. Used whenever the model is unavailable or its output unparseable.
func FallbackContent(input Input, summary Summary) Content {
	name := strings.TrimSpace(input.LeadName)
	greeting := "Hallo!"
	if name != "" {
		greeting = fmt.Sprintf("Hallo %s!", name)
	}

	content := Content{
		Greeting: greeting,
		Summary: fmt.Sprintf(
			"Ihre Website %s erreicht die Gesamtnote %s (%.0f von 100 Punkten). "+
				"Die Details zu Performance, SEO und Sicherheit finden Sie unten.",
			input.SiteURL, summary.OverallGrade, summary.OverallScore),
		PerformanceAnalysis: fmt.Sprintf(
			"Die mobile Ladeleistung liegt bei %d von 100 Punkten (Note %s).",
			summary.Scores.Performance, summary.Grades.Performance),
		SEOAnalysis: fmt.Sprintf(
			"Die Suchmaschinenoptimierung erreicht %d von 100 Punkten (Note %s).",
			summary.Scores.SEO, summary.Grades.SEO),
		SecurityAnalysis: fmt.Sprintf(
			"Die Sicherheits-Header Ihrer Website erreichen %d von 100 Punkten (Note %s).",
			summary.Scores.Security, summary.Grades.Security),
		Conclusion: "Gerne besprechen wir die Ergebnisse mit Ihnen im Detail. " +
			"Antworten Sie einfach auf diese E-Mail.",
	}

	if summary.Scores.Performance >= 80 {
		content.Positives = append(content.Positives, "Ihre Website lädt schnell.")
	}
	if input.Scrape != nil {
		if input.Scrape.HTTPS {
			content.Positives = append(content.Positives, "Ihre Website nutzt eine verschlüsselte Verbindung (HTTPS).")
		}
		if input.Scrape.Legal.Impressum {
			content.Positives = append(content.Positives, "Ein Impressum ist vorhanden.")
		}
		if !input.Scrape.Booking.HasBooking {
			content.Recommendations = append(content.Recommendations, Recommendation{
				Priority:    "mittel",
				Title:       "Online-Terminbuchung anbieten",
				Description: "Auf Ihrer Website wurde keine Möglichkeit zur Online-Buchung gefunden.",
				Impact:      "Weniger Telefonaufwand und mehr Buchungen außerhalb der Öffnungszeiten.",
			})
		}
		if summary.SEOOnPage.DescriptionStatus == MissingMarker {
			content.Recommendations = append(content.Recommendations, Recommendation{
				Priority:    "mittel",
				Title:       "Meta-Beschreibung ergänzen",
				Description: "Ihre Startseite hat keine Meta-Beschreibung für Suchmaschinen.",
				Impact:      "Ein besserer Vorschautext in den Google-Ergebnissen bringt mehr Klicks.",
			})
		}
		if summary.SEOOnPage.H1 == MissingMarker {
			content.KeyInsights = append(content.KeyInsights,
				"Der Seite fehlt eine Hauptüberschrift (H1).")
		}
		if summary.Technical.MixedContent > 0 {
			content.Recommendations = append(content.Recommendations, Recommendation{
				Priority:    "hoch",
				Title:       "Unverschlüsselte Inhalte entfernen",
				Description: fmt.Sprintf("%d Inhalte werden über eine unverschlüsselte Verbindung geladen.", summary.Technical.MixedContent),
				Impact:      "Browser-Warnungen verschwinden und die Seite gilt als sicher.",
			})
		}
		if summary.Images.MissingAlt > 0 {
			content.KeyInsights = append(content.KeyInsights,
				fmt.Sprintf("%d Bilder haben keinen Alternativtext.", summary.Images.MissingAlt))
		}
	}
	if summary.BrokenLinks > 0 {
		content.KeyInsights = append(content.KeyInsights,
			fmt.Sprintf("%d defekte Links gefunden.", summary.BrokenLinks))
		content.Recommendations = append(content.Recommendations, Recommendation{
			Priority:    "hoch",
			Title:       "Defekte Links reparieren",
			Description: fmt.Sprintf("Beim Prüfen der Links wurden %d defekte Ziele gefunden.", summary.BrokenLinks),
			Impact:      "Bessere Nutzererfahrung und bessere Bewertung durch Suchmaschinen.",
		})
	}
	if summary.Scores.Performance < 50 {
		content.Recommendations = append(content.Recommendations, Recommendation{
			Priority:    "hoch",
			Title:       "Ladezeit verbessern",
			Description: "Die mobile Ladeleistung liegt deutlich unter dem Richtwert.",
			Impact:      "Schnellere Seiten halten Besucher und verbessern das Google-Ranking.",
		})
	}
	if summary.Scores.Security < 50 {
		content.Recommendations = append(content.Recommendations, Recommendation{
			Priority:    "hoch",
			Title:       "Sicherheits-Header nachrüsten",
			Description: "Wichtige Sicherheits-Header wie Content-Security-Policy fehlen.",
			Impact:      "Schutz Ihrer Besucher und Ihres Rufs.",
		})
	}

	return content
}
