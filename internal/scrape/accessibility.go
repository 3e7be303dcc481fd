package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AuditAccessibility runs the markup-level checks: skip links, ARIA/HTML5
// landmarks, inputs without an accessible label, and positive tabindex
// values that break keyboard order.
func AuditAccessibility(doc *goquery.Document) Accessibility {
	var a11y Accessibility

	doc.Find(`a[href^="#"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(sel.Text())
		if strings.Contains(text, "skip") || strings.Contains(text, "zum inhalt") ||
			strings.Contains(text, "springen") {
			a11y.HasSkipLink = true
			return false
		}
		return true
	})

	a11y.HasLandmarks = doc.Find(`main, nav, [role="main"], [role="navigation"]`).Length() > 0

	doc.Find(`input[type="text"], input[type="email"], input[type="tel"], input[type="search"], textarea`).
		Each(func(_ int, sel *goquery.Selection) {
			if _, ok := sel.Attr("aria-label"); ok {
				return
			}
			if _, ok := sel.Attr("aria-labelledby"); ok {
				return
			}
			if id, ok := sel.Attr("id"); ok && doc.Find(`label[for="`+id+`"]`).Length() > 0 {
				return
			}
			a11y.UnlabeledInputs++
		})

	doc.Find("[tabindex]").Each(func(_ int, sel *goquery.Selection) {
		raw, _ := sel.Attr("tabindex")
		if value, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && value > 0 {
			a11y.PositiveTabindex++
		}
	})

	return a11y
}
