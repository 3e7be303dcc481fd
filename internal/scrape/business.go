package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type bookingPlatform struct {
	name     string
	patterns []string
}

var bookingPlatforms = []bookingPlatform{
	{"Calendly", []string{"calendly.com"}},
	{"Booksy", []string{"booksy.com"}},
	{"Treatwell", []string{"treatwell"}},
	{"Shore", []string{"shore.com"}},
	{"SimplyBook", []string{"simplybook"}},
	{"Acuity", []string{"acuityscheduling"}},
	{"Square Appointments", []string{"squareup.com/appointments", "square.site"}},
	{"Timify", []string{"timify"}},
	{"Terminland", []string{"terminland"}},
	{"Doctolib", []string{"doctolib"}},
}

var bookingTextProbes = []string{"termin", "buchen", "reserv", "book"}

// DetectBooking looks for a known booking platform embed first, then falls
// back to a generic probe for booking vocabulary. The generic probe only
// reads link and button text; body copy mentioning "Termine" (or "Facebook"
// matching "book") must not count as a booking option.
func DetectBooking(html string, doc *goquery.Document) Booking {
	lowerHTML := strings.ToLower(html)
	for _, platform := range bookingPlatforms {
		for _, pattern := range platform.patterns {
			if strings.Contains(lowerHTML, pattern) {
				return Booking{HasBooking: true, Platform: platform.name}
			}
		}
	}

	if doc == nil {
		return Booking{}
	}
	found := false
	doc.Find(`a, button, input[type="submit"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.ToLower(sel.Text())
		if value, ok := sel.Attr("value"); ok {
			text += " " + strings.ToLower(value)
		}
		for _, probe := range bookingTextProbes {
			if strings.Contains(text, probe) {
				found = true
				return false
			}
		}
		return true
	})
	return Booking{HasBooking: found}
}

// DetectLegal probes for the legal pages required in DACH markets. A page
// counts as present when either a link mentions it or the raw HTML contains
// the word, which trades some false positives for not crawling subpages.
func DetectLegal(doc *goquery.Document, html string) Legal {
	lowerHTML := strings.ToLower(html)

	linkHas := func(word string) bool {
		found := false
		doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			if strings.Contains(strings.ToLower(sel.Text()), word) ||
				strings.Contains(strings.ToLower(href), word) {
				found = true
				return false
			}
			return true
		})
		return found
	}

	probe := func(word string) bool {
		return linkHas(word) || strings.Contains(lowerHTML, word)
	}

	return Legal{
		Impressum:   probe("impressum"),
		Datenschutz: probe("datenschutz"),
		AGB:         probe("agb"),
	}
}
