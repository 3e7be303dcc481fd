package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/Weboses/analyse.arsenio/internal/pagespeed"
)

// RenderHTML assembles the report body from structured content and measured
// scores. All dynamic text is escaped; empty sections are skipped, so the
// function is total over partial content.
func RenderHTML(content Content, summary Summary, input Input) string {
	var sb strings.Builder

	if content.Greeting != "" {
		fmt.Fprintf(&sb, `<p style="font-size:16px;color:#111827;margin:0 0 16px;">%s</p>`,
			html.EscapeString(content.Greeting))
	}
	if content.Summary != "" {
		fmt.Fprintf(&sb, `<p style="font-size:14px;color:#374151;line-height:1.6;margin:0 0 24px;">%s</p>`,
			html.EscapeString(content.Summary))
	}

	renderOverallBadge(&sb, summary)
	renderScoreCards(&sb, summary)
	renderWebVitals(&sb, summary.WebVitals)
	renderOnPage(&sb, summary.SEOOnPage)

	if len(content.KeyInsights) > 0 {
		renderList(&sb, "Wichtigste Erkenntnisse", content.KeyInsights, "#111827")
	}

	renderSection(&sb, "Performance", content.PerformanceAnalysis)
	renderSection(&sb, "Suchmaschinenoptimierung", content.SEOAnalysis)
	renderSection(&sb, "Sicherheit", content.SecurityAnalysis)

	if len(content.Recommendations) > 0 {
		fmt.Fprintf(&sb, `<h3 style="font-size:15px;color:#111827;margin:24px 0 12px;">Unsere Empfehlungen</h3>`)
		for _, rec := range content.Recommendations {
			renderRecommendation(&sb, rec)
		}
	}

	if len(content.Positives) > 0 {
		renderList(&sb, "Das läuft bereits gut", content.Positives, "#10b981")
	}

	if content.Conclusion != "" {
		fmt.Fprintf(&sb, `<p style="font-size:14px;color:#374151;line-height:1.6;margin:24px 0 0;">%s</p>`,
			html.EscapeString(content.Conclusion))
	}

	return sb.String()
}

func renderOverallBadge(sb *strings.Builder, summary Summary) {
	color := ScoreColor(summary.OverallScore)
	fmt.Fprintf(sb, `<div style="text-align:center;margin:0 0 24px;">`+
		`<div style="display:inline-block;width:72px;height:72px;line-height:72px;border-radius:50%%;`+
		`background-color:%s;color:#ffffff;font-size:32px;font-weight:bold;">%s</div>`+
		`<p style="margin:8px 0 0;color:#6b7280;font-size:13px;">Gesamtnote (%.0f/100)</p>`+
		`</div>`,
		color, html.EscapeString(summary.OverallGrade), summary.OverallScore)
}

func renderScoreCards(sb *strings.Builder, summary Summary) {
	cards := []struct {
		label string
		score int
		grade string
	}{
		{"Performance", summary.Scores.Performance, summary.Grades.Performance},
		{"SEO", summary.Scores.SEO, summary.Grades.SEO},
		{"Sicherheit", summary.Scores.Security, summary.Grades.Security},
		{"Barrierefreiheit", summary.Scores.Accessibility, summary.Grades.Accessibility},
	}

	sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="margin:0 0 24px;"><tr>`)
	for _, card := range cards {
		color := ScoreColor(float64(card.score))
		fmt.Fprintf(sb, `<td align="center" style="padding:4px;">`+
			`<div style="background-color:#f9fafb;border:1px solid #e5e7eb;border-radius:6px;padding:12px 4px;">`+
			`<div style="font-size:22px;font-weight:bold;color:%s;">%d</div>`+
			`<div style="font-size:11px;color:#6b7280;">%s</div>`+
			`<div style="font-size:12px;font-weight:bold;color:%s;">Note %s</div>`+
			`</div></td>`,
			color, card.score, html.EscapeString(card.label), color, html.EscapeString(card.grade))
	}
	sb.WriteString(`</tr></table>`)
}

// renderWebVitals shows the lab metrics as Lighthouse reported them. The
// section is skipped entirely when no metric came back.
func renderWebVitals(sb *strings.Builder, vitals pagespeed.CoreWebVitals) {
	rows := []struct {
		label string
		value string
	}{
		{"Größtes sichtbares Element (LCP)", vitals.LCP},
		{"Erster sichtbarer Inhalt (FCP)", vitals.FCP},
		{"Layout-Stabilität (CLS)", vitals.CLS},
		{"Blockierzeit (TBT)", vitals.TBT},
		{"Speed Index", vitals.SpeedIndex},
	}
	empty := true
	for _, row := range rows {
		if row.value != "" {
			empty = false
			break
		}
	}
	if empty {
		return
	}

	sb.WriteString(`<h3 style="font-size:15px;color:#111827;margin:24px 0 8px;">Ladezeit im Detail</h3>` +
		`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="margin:0 0 16px;">`)
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(sb, `<tr><td style="font-size:13px;color:#374151;padding:4px 0;">%s</td>`+
			`<td align="right" style="font-size:13px;font-weight:bold;color:#111827;padding:4px 0;">%s</td></tr>`,
			html.EscapeString(row.label), html.EscapeString(row.value))
	}
	sb.WriteString(`</table>`)
}

// renderOnPage lists the on-page basics with their length verdicts.
func renderOnPage(sb *strings.Builder, page SEOOnPage) {
	if page.Title == "" && page.Description == "" && (page.H1 == "" || page.H1 == MissingMarker) {
		return
	}
	sb.WriteString(`<h3 style="font-size:15px;color:#111827;margin:24px 0 8px;">SEO-Basisdaten</h3>` +
		`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="margin:0 0 16px;">`)
	rows := []struct {
		label string
		value string
	}{
		{"Seitentitel", onPageValue(page.Title, page.TitleStatus)},
		{"Meta-Beschreibung", onPageValue(page.Description, page.DescriptionStatus)},
		{"Hauptüberschrift (H1)", page.H1},
	}
	for _, row := range rows {
		fmt.Fprintf(sb, `<tr><td style="font-size:13px;color:#374151;padding:4px 0;">%s</td>`+
			`<td align="right" style="font-size:13px;color:#111827;padding:4px 0;">%s</td></tr>`,
			html.EscapeString(row.label), html.EscapeString(row.value))
	}
	sb.WriteString(`</table>`)
}

func onPageValue(text, status string) string {
	if text == "" {
		return MissingMarker
	}
	return fmt.Sprintf("%s (%s)", text, status)
}

func renderSection(sb *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(sb, `<h3 style="font-size:15px;color:#111827;margin:24px 0 8px;">%s</h3>`+
		`<p style="font-size:14px;color:#374151;line-height:1.6;margin:0;">%s</p>`,
		html.EscapeString(title), html.EscapeString(body))
}

func renderList(sb *strings.Builder, title string, items []string, accent string) {
	fmt.Fprintf(sb, `<h3 style="font-size:15px;color:%s;margin:24px 0 8px;">%s</h3><ul style="margin:0;padding-left:20px;">`,
		accent, html.EscapeString(title))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		fmt.Fprintf(sb, `<li style="font-size:14px;color:#374151;line-height:1.6;">%s</li>`,
			html.EscapeString(item))
	}
	sb.WriteString(`</ul>`)
}

func renderRecommendation(sb *strings.Builder, rec Recommendation) {
	if strings.TrimSpace(rec.Title) == "" && strings.TrimSpace(rec.Description) == "" {
		return
	}
	badge := priorityBadge(rec.Priority)
	fmt.Fprintf(sb, `<div style="border:1px solid #e5e7eb;border-left:4px solid %s;border-radius:4px;padding:12px 16px;margin:0 0 12px;">`,
		badge.color)
	fmt.Fprintf(sb, `<div style="font-size:14px;font-weight:bold;color:#111827;">%s `+
		`<span style="font-size:11px;font-weight:normal;color:#ffffff;background-color:%s;border-radius:10px;padding:2px 8px;">%s</span></div>`,
		html.EscapeString(rec.Title), badge.color, html.EscapeString(badge.label))
	if rec.Description != "" {
		fmt.Fprintf(sb, `<p style="font-size:13px;color:#374151;line-height:1.5;margin:6px 0 0;">%s</p>`,
			html.EscapeString(rec.Description))
	}
	if rec.Impact != "" {
		fmt.Fprintf(sb, `<p style="font-size:12px;color:#6b7280;margin:6px 0 0;"><b>Nutzen:</b> %s</p>`,
			html.EscapeString(rec.Impact))
	}
	sb.WriteString(`</div>`)
}

type priorityStyle struct {
	label string
	color string
}

func priorityBadge(priority string) priorityStyle {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "hoch", "high":
		return priorityStyle{"Hoch", "#ef4444"}
	case "niedrig", "low":
		return priorityStyle{"Niedrig", "#10b981"}
	default:
		return priorityStyle{"Mittel", "#f59e0b"}
	}
}
