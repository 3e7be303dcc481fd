package scrape

import "net/http"

type headerWeight struct {
	name   string
	weight int
}

var securityHeaderWeights = []headerWeight{
	{"Strict-Transport-Security", 20},
	{"Content-Security-Policy", 25},
	{"X-Frame-Options", 15},
	{"X-Content-Type-Options", 10},
	{"Referrer-Policy", 10},
	{"Permissions-Policy", 10},
	{"X-XSS-Protection", 5},
	{"Cross-Origin-Opener-Policy", 5},
}

// ScoreSecurityHeaders grades the response headers of the main document.
// Weights sum to 100.
func ScoreSecurityHeaders(header http.Header) SecurityHeaders {
	report := SecurityHeaders{Present: make(map[string]bool, len(securityHeaderWeights))}
	for _, hw := range securityHeaderWeights {
		if header.Get(hw.name) != "" {
			report.Present[hw.name] = true
			report.Score += hw.weight
		} else {
			report.Present[hw.name] = false
			report.Missing = append(report.Missing, hw.name)
		}
	}
	return report
}
