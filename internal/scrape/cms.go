package scrape

import "strings"

type cmsSignature struct {
	name     string
	patterns []string
}

// Detection order matters: the first match wins, and the more distinctive
// fingerprints come first.
var cmsSignatures = []cmsSignature{
	{"WordPress", []string{"wp-content", "wp-includes", "/wp-json"}},
	{"Wix", []string{"wix.com", "wixstatic.com", "wixsite.com"}},
	{"Squarespace", []string{"squarespace.com", "squarespace-cdn"}},
	{"Shopify", []string{"cdn.shopify.com", "myshopify.com"}},
	{"Webflow", []string{"webflow.com", "website-files.com"}},
	{"Joomla", []string{"joomla", "/media/jui/"}},
	{"Drupal", []string{"drupal", "/sites/default/files"}},
	{"TYPO3", []string{"typo3"}},
	{"Jimdo", []string{"jimdo"}},
	{"Weebly", []string{"weebly"}},
	{"Ghost", []string{"ghost.io", `content="ghost`}},
}

// DetectCMS fingerprints the content management system from raw HTML.
// Returns an empty string when nothing matches.
func DetectCMS(html string) string {
	lower := strings.ToLower(html)
	for _, sig := range cmsSignatures {
		for _, pattern := range sig.patterns {
			if strings.Contains(lower, pattern) {
				return sig.name
			}
		}
	}
	return ""
}
