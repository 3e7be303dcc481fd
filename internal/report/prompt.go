package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildPrompt assembles the instruction for the report model. The model is
// asked for a fixed JSON shape; rendering happens locally so the model never
// produces HTML.
func BuildPrompt(input Input, summary Summary) string {
	data, err := json.MarshalIndent(struct {
		Summary Summary `json:"summary"`
		Input   Input   `json:"data"`
	}{summary, input}, "", "  ")
	if err != nil {
		data = []byte("{}")
	}

	var sb strings.Builder
	sb.WriteString("Du bist ein Web-Consultant bei einer Wiener Agentur. ")
	sb.WriteString("Du hast die Website eines kleinen Unternehmens analysiert und schreibst nun die Auswertung. ")
	sb.WriteString("Schreibe auf Deutsch, per Sie, konkret und ohne Fachjargon. ")
	sb.WriteString("Beziehe dich auf die Messwerte, erfinde keine Zahlen.\n\n")

	if name := strings.TrimSpace(input.LeadName); name != "" {
		fmt.Fprintf(&sb, "Der Empfänger heißt %s.\n", name)
	}
	fmt.Fprintf(&sb, "Analysierte Website: %s\n\nMesswerte:\n%s\n\n", input.SiteURL, data)

	sb.WriteString(`Antworte ausschließlich mit einem JSON-Objekt in exakt dieser Form:
{
  "greeting": "kurze persönliche Anrede",
  "summary": "2-3 Sätze Gesamteinschätzung",
  "keyInsights": ["wichtigste Erkenntnis", "..."],
  "performanceAnalysis": "Absatz zur Ladeleistung",
  "seoAnalysis": "Absatz zur Suchmaschinenoptimierung",
  "securityAnalysis": "Absatz zur Sicherheit",
  "recommendations": [
    {"priority": "hoch|mittel|niedrig", "title": "...", "description": "...", "impact": "..."}
  ],
  "positives": ["was bereits gut ist", "..."],
  "conclusion": "Abschluss mit Einladung zum Gespräch"
}
Kein Markdown, keine Code-Fences, nur das JSON-Objekt.`)

	return sb.String()
}
