package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var structuredTypeRe = regexp.MustCompile(`"@type"\s*:\s*"([^"]+)"`)

type trackerProbe struct {
	set      func(*Technical)
	patterns []string
}

var trackerProbes = []trackerProbe{
	{func(t *Technical) { t.HasTagManager = true }, []string{"googletagmanager.com/gtm.js", "ns.html?id=gtm-"}},
	{func(t *Technical) { t.HasGoogleAnalytics = true }, []string{"google-analytics.com", "googletagmanager.com/gtag", "gtag("}},
	{func(t *Technical) { t.HasFacebookPixel = true }, []string{"connect.facebook.net", "fbq("}},
	{func(t *Technical) { t.HasHotjar = true }, []string{"static.hotjar.com", "hj("}},
}

// DetectTechnical reads head-level markup signals and probes the raw source
// for the common tracking snippets.
func DetectTechnical(doc *goquery.Document, html string) Technical {
	var tech Technical

	tech.HasViewport = doc.Find(`meta[name="viewport"]`).Length() > 0
	doc.Find("link[rel]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rel, _ := sel.Attr("rel")
		if strings.Contains(strings.ToLower(rel), "icon") {
			tech.HasFavicon = true
			return false
		}
		return true
	})

	seen := make(map[string]struct{})
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		tech.HasStructuredData = true
		for _, match := range structuredTypeRe.FindAllStringSubmatch(sel.Text(), -1) {
			name := strings.TrimSpace(match[1])
			if _, dup := seen[name]; dup || name == "" {
				continue
			}
			seen[name] = struct{}{}
			tech.StructuredDataTypes = append(tech.StructuredDataTypes, name)
		}
	})

	lower := strings.ToLower(html)
	for _, probe := range trackerProbes {
		for _, pattern := range probe.patterns {
			if strings.Contains(lower, pattern) {
				probe.set(&tech)
				break
			}
		}
	}
	return tech
}

// CountMixedContent counts http:// resource references in an https page.
// Only src/href attributes count; a plain link to an http site is not mixed
// content.
func CountMixedContent(html string) int {
	lower := strings.ToLower(html)
	count := strings.Count(lower, `src="http://`) + strings.Count(lower, `src='http://`)
	count += strings.Count(lower, `<link rel="stylesheet" href="http://`)
	return count
}
