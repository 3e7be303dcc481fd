package report

import (
	"github.com/Weboses/analyse.arsenio/internal/pagespeed"
	"github.com/Weboses/analyse.arsenio/internal/scrape"
	"github.com/Weboses/analyse.arsenio/internal/seo"
)

// Input carries everything the report layer needs. Any part may be nil when
// the producing step failed; building a summary from partial input yields
// zero scores for the missing parts instead of failing.
type Input struct {
	SiteURL   string            `json:"siteUrl"`
	LeadName  string            `json:"leadName"`
	PageSpeed *pagespeed.Result `json:"pagespeed,omitempty"`
	Scrape    *scrape.Result    `json:"scrape,omitempty"`
	Keywords  []seo.Keyword     `json:"keywords,omitempty"`
	SEOData   *seo.Insights     `json:"seoData,omitempty"`
}

// Scores are the four sub-scores the overall grade is computed from.
type Scores struct {
	Performance   int `json:"performance"`
	SEO           int `json:"seo"`
	Security      int `json:"security"`
	Accessibility int `json:"accessibility"`
}

// MissingMarker flags a required on-page element that was not found. The
// string appears verbatim in the report, so it stays German and loud.
const MissingMarker = "FEHLT!"

// Summary is the condensed outcome of an analysis, persisted alongside the
// rendered report and projected into the status endpoint.
type Summary struct {
	Scores       Scores  `json:"scores"`
	Grades       Grades  `json:"grades"`
	OverallScore float64 `json:"overallScore"`
	OverallGrade string  `json:"overallGrade"`

	WebVitals     pagespeed.CoreWebVitals `json:"webVitals"`
	ScreenshotURL string                  `json:"screenshotUrl,omitempty"`

	SEOOnPage     SEOOnPage            `json:"seoOnPage"`
	Images        ImagesSummary        `json:"images"`
	Links         LinksSummary         `json:"links"`
	Technical     TechnicalSummary     `json:"technical"`
	Contact       scrape.Contact       `json:"contact"`
	Accessibility scrape.Accessibility `json:"accessibility"`

	ExtractedKeywords []string `json:"extractedKeywords"`
	BrokenLinks       int      `json:"brokenLinks"`
	CMS               string   `json:"cms,omitempty"`
}

// Grades are the letter grades for each sub-score.
type Grades struct {
	Performance   string `json:"performance"`
	SEO           string `json:"seo"`
	Security      string `json:"security"`
	Accessibility string `json:"accessibility"`
}

// SEOOnPage judges the on-page basics against the usual length bands:
// 30-60 characters for the title, 120-160 for the description.
type SEOOnPage struct {
	Title             string `json:"title"`
	TitleLength       int    `json:"titleLength"`
	TitleStatus       string `json:"titleStatus"`
	Description       string `json:"description"`
	DescriptionLength int    `json:"descriptionLength"`
	DescriptionStatus string `json:"descriptionStatus"`
	H1                string `json:"h1"`
	H1Count           int    `json:"h1Count"`
}

// ImagesSummary counts images and missing alt texts.
type ImagesSummary struct {
	Total      int `json:"total"`
	MissingAlt int `json:"missingAlt"`
}

// LinksSummary condenses the link check. BrokenURLs carries at most the
// first five broken targets so the report can name them.
type LinksSummary struct {
	Internal   int      `json:"internal"`
	External   int      `json:"external"`
	Broken     int      `json:"broken"`
	BrokenURLs []string `json:"brokenUrls,omitempty"`
}

// TechnicalSummary lifts the technical signals worth showing a lead.
type TechnicalSummary struct {
	CMS               string   `json:"cms,omitempty"`
	HasViewport       bool     `json:"hasViewport"`
	HasStructuredData bool     `json:"hasStructuredData"`
	HasAnalytics      bool     `json:"hasAnalytics"`
	MixedContent      int      `json:"mixedContent"`
	Technologies      []string `json:"technologies"`
}

const maxSummaryKeywords = 10

// BuildSummary derives scores, grades and the condensed signal blocks from
// the collected input. The performance, SEO and accessibility sub-scores
// come from the mobile PageSpeed run; security from the response-header
// audit.
func BuildSummary(input Input) Summary {
	var scores Scores
	if input.PageSpeed != nil {
		scores.Performance = input.PageSpeed.Mobile.Performance
		scores.SEO = input.PageSpeed.Mobile.SEO
		scores.Accessibility = input.PageSpeed.Mobile.Accessibility
	}
	if input.Scrape != nil {
		scores.Security = input.Scrape.Security.Score
	}

	overall := float64(scores.Performance+scores.SEO+scores.Security+scores.Accessibility) / 4.0

	summary := Summary{
		Scores: scores,
		Grades: Grades{
			Performance:   Grade(float64(scores.Performance)),
			SEO:           Grade(float64(scores.SEO)),
			Security:      Grade(float64(scores.Security)),
			Accessibility: Grade(float64(scores.Accessibility)),
		},
		OverallScore: overall,
		OverallGrade: Grade(overall),
		SEOOnPage: SEOOnPage{
			TitleStatus:       MissingMarker,
			DescriptionStatus: MissingMarker,
			H1:                MissingMarker,
		},
		Technical:         TechnicalSummary{Technologies: []string{}},
		Contact:           scrape.Contact{Emails: []string{}, Phones: []string{}, SocialLinks: []string{}},
		ExtractedKeywords: []string{},
	}

	if input.PageSpeed != nil {
		summary.WebVitals = input.PageSpeed.Mobile.WebVitals
		summary.ScreenshotURL = input.PageSpeed.Mobile.Screenshot
	}

	if input.Scrape != nil {
		sc := input.Scrape
		summary.SEOOnPage = buildSEOOnPage(sc)
		summary.Images = ImagesSummary{Total: sc.ImageCount, MissingAlt: sc.MissingAlt}
		summary.Links = buildLinksSummary(sc)
		summary.BrokenLinks = summary.Links.Broken
		summary.CMS = sc.CMS
		summary.Technical = TechnicalSummary{
			CMS:               sc.CMS,
			HasViewport:       sc.Technical.HasViewport,
			HasStructuredData: sc.Technical.HasStructuredData,
			HasAnalytics:      sc.Technical.HasGoogleAnalytics || sc.Technical.HasTagManager,
			MixedContent:      sc.MixedContent,
			Technologies:      technologies(sc),
		}
		summary.Contact = sc.Contact
		summary.Accessibility = sc.Accessibility
	}

	for i, kw := range input.Keywords {
		if i == maxSummaryKeywords {
			break
		}
		summary.ExtractedKeywords = append(summary.ExtractedKeywords, kw.Term)
	}
	return summary
}

func buildSEOOnPage(sc *scrape.Result) SEOOnPage {
	page := SEOOnPage{
		Title:             sc.Title,
		TitleLength:       len([]rune(sc.Title)),
		Description:       sc.Description,
		DescriptionLength: len([]rune(sc.Description)),
		H1:                MissingMarker,
		H1Count:           len(sc.H1),
	}
	page.TitleStatus = lengthBand(page.TitleLength, 30, 60)
	page.DescriptionStatus = lengthBand(page.DescriptionLength, 120, 160)
	if len(sc.H1) > 0 {
		page.H1 = sc.H1[0]
	}
	return page
}

func lengthBand(length, low, high int) string {
	switch {
	case length == 0:
		return MissingMarker
	case length < low:
		return "zu kurz"
	case length > high:
		return "zu lang"
	default:
		return "optimal"
	}
}

func buildLinksSummary(sc *scrape.Result) LinksSummary {
	links := LinksSummary{
		Internal: len(sc.InternalLinks),
		External: len(sc.ExternalLinks),
	}
	for _, check := range sc.LinkChecks {
		if check.Status != scrape.LinkBroken {
			continue
		}
		links.Broken++
		if len(links.BrokenURLs) < 5 {
			links.BrokenURLs = append(links.BrokenURLs, check.URL)
		}
	}
	return links
}

// technologies lists the detected tooling by name, CMS first.
func technologies(sc *scrape.Result) []string {
	techs := []string{}
	if sc.CMS != "" {
		techs = append(techs, sc.CMS)
	}
	if sc.Technical.HasGoogleAnalytics {
		techs = append(techs, "Google Analytics")
	}
	if sc.Technical.HasTagManager {
		techs = append(techs, "Google Tag Manager")
	}
	if sc.Technical.HasFacebookPixel {
		techs = append(techs, "Facebook Pixel")
	}
	if sc.Technical.HasHotjar {
		techs = append(techs, "Hotjar")
	}
	return techs
}
