package report

import (
	"strings"
	"testing"

	"github.com/Weboses/analyse.arsenio/internal/scrape"
)

const validModelOutput = `{
	"greeting": "Hallo Max!",
	"summary": "Ihre Website ist solide.",
	"keyInsights": ["Gute Ladezeit"],
	"performanceAnalysis": "Schnell.",
	"seoAnalysis": "Ausbaufähig.",
	"securityAnalysis": "Header fehlen.",
	"recommendations": [{"priority": "hoch", "title": "HTTPS", "description": "...", "impact": "..."}],
	"positives": ["HTTPS aktiv"],
	"conclusion": "Melden Sie sich."
}`

func TestParseContentPlainJSON(t *testing.T) {
	content, err := ParseContent(validModelOutput)
	if err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
	if content.Greeting != "Hallo Max!" || len(content.Recommendations) != 1 {
		t.Fatalf("content = %+v", content)
	}
}

func TestParseContentCodeFences(t *testing.T) {
	raw := "```json\n" + validModelOutput + "\n```"
	content, err := ParseContent(raw)
	if err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
	if content.Summary != "Ihre Website ist solide." {
		t.Fatalf("summary = %q", content.Summary)
	}
}

func TestParseContentSurroundingProse(t *testing.T) {
	raw := "Hier ist die Auswertung:\n" + validModelOutput + "\nViel Erfolg!"
	if _, err := ParseContent(raw); err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
}

func TestParseContentRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "kein json", "{broken", `{"keyInsights": []}`} {
		if _, err := ParseContent(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFallbackContentIsComplete(t *testing.T) {
	input := Input{
		SiteURL:  "https://example.at",
		LeadName: "Max",
		Scrape: &scrape.Result{
			HTTPS: true,
			Legal: scrape.Legal{Impressum: true},
			LinkChecks: []scrape.LinkCheck{
				{Status: scrape.LinkBroken},
			},
		},
	}
	summary := BuildSummary(input)
	content := FallbackContent(input, summary)

	if !strings.Contains(content.Greeting, "Max") {
		t.Fatalf("greeting = %q", content.Greeting)
	}
	if content.Summary == "" || content.Conclusion == "" {
		t.Fatalf("content incomplete: %+v", content)
	}
	if len(content.Positives) == 0 {
		t.Fatalf("expected positives for https and impressum")
	}
	if len(content.Recommendations) == 0 {
		t.Fatalf("expected recommendations for broken links and low scores")
	}
}

func TestFallbackContentFlagsOnPageGaps(t *testing.T) {
	input := Input{
		SiteURL: "https://example.at",
		Scrape: &scrape.Result{
			HTTPS:        true,
			Title:        "Salon Muster",
			MissingAlt:   3,
			MixedContent: 2,
		},
	}
	summary := BuildSummary(input)
	content := FallbackContent(input, summary)

	var titles []string
	for _, rec := range content.Recommendations {
		titles = append(titles, rec.Title)
	}
	joined := strings.Join(titles, "|")
	if !strings.Contains(joined, "Meta-Beschreibung ergänzen") {
		t.Fatalf("recommendations = %v, want meta description hint", titles)
	}
	if !strings.Contains(joined, "Unverschlüsselte Inhalte entfernen") {
		t.Fatalf("recommendations = %v, want mixed content hint", titles)
	}
	insights := strings.Join(content.KeyInsights, "|")
	if !strings.Contains(insights, "Hauptüberschrift") {
		t.Fatalf("keyInsights = %v, want missing H1 insight", content.KeyInsights)
	}
	if !strings.Contains(insights, "3 Bilder") {
		t.Fatalf("keyInsights = %v, want missing alt insight", content.KeyInsights)
	}
}

func TestFallbackContentNoName(t *testing.T) {
	content := FallbackContent(Input{SiteURL: "https://example.at"}, Summary{})
	if content.Greeting != "Hallo!" {
		t.Fatalf("greeting = %q", content.Greeting)
	}
}
