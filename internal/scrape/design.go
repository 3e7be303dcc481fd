package scrape

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var (
	fontFamilyRe  = regexp.MustCompile(`font-family\s*:\s*([^;{}"']+|"[^"]+"|'[^']+')`)
	googleFontsRe = regexp.MustCompile(`fonts\.googleapis\.com/css2?\?[^"'\s]*family=([^"'\s&:]+)`)
)

var genericFonts = map[string]struct{}{
	"serif": {}, "sans-serif": {}, "monospace": {}, "cursive": {},
	"fantasy": {}, "system-ui": {}, "inherit": {}, "initial": {}, "unset": {},
}

const maxFonts = 5

// ExtractFonts collects the font families declared in inline CSS and Google
// Fonts links, most used first. Generic CSS families are skipped.
func ExtractFonts(html string) []string {
	counts := make(map[string]int)
	display := make(map[string]string)

	add := func(raw string, weight int) {
		name := strings.Trim(strings.TrimSpace(raw), `"'`)
		name = strings.ReplaceAll(name, "+", " ")
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, generic := genericFonts[key]; generic {
			return
		}
		counts[key] += weight
		if _, ok := display[key]; !ok {
			display[key] = name
		}
	}

	for _, match := range fontFamilyRe.FindAllStringSubmatch(html, -1) {
		// Only the first family in the stack names the intended font.
		first, _, _ := strings.Cut(match[1], ",")
		add(first, 1)
	}
	for _, match := range googleFontsRe.FindAllStringSubmatch(html, -1) {
		if name, err := url.QueryUnescape(match[1]); err == nil {
			add(name, 5)
		}
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fonts := make([]string, 0, maxFonts)
	for _, key := range keys {
		fonts = append(fonts, display[key])
		if len(fonts) == maxFonts {
			break
		}
	}
	return fonts
}

// DetectDarkMode reports whether the page declares dark-mode support.
func DetectDarkMode(html string) bool {
	lower := strings.ToLower(html)
	return strings.Contains(lower, "prefers-color-scheme: dark") ||
		strings.Contains(lower, "prefers-color-scheme:dark") ||
		strings.Contains(lower, `color-scheme" content="dark`) ||
		strings.Contains(lower, "color-scheme: light dark")
}
