package scrape

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var hexColorRe = regexp.MustCompile(`#[0-9A-Fa-f]{3,6}`)

var brandSelectorPatterns = []string{
	".btn", ".button", ".primary", ".accent", "--primary", "--accent", "--brand",
}

// Matches a bare anchor selector like "a", "a:hover" or "nav > a".
var anchorSelectorRe = regexp.MustCompile(`(^|[\s,>+~])a([\s,:.#[]|$)`)

// ExtractColors pulls hex colors out of the page source, filters out boring
// shades and returns up to ten, most prominent first. Colors appearing in
// brand-ish CSS rules (buttons, links, --primary custom properties) are
// weighted up so the actual brand palette surfaces.
func ExtractColors(html string) []string {
	weights := make(map[string]int)
	for _, match := range hexColorRe.FindAllString(html, -1) {
		hex, ok := normalizeHex(match)
		if !ok || isBoringColor(hex) {
			continue
		}
		weights[hex]++
	}

	for _, rule := range strings.Split(html, "}") {
		selector, body, found := strings.Cut(rule, "{")
		if !found {
			continue
		}
		if !isBrandSelector(strings.ToLower(selector)) {
			continue
		}
		for _, match := range hexColorRe.FindAllString(body, -1) {
			hex, ok := normalizeHex(match)
			if !ok || isBoringColor(hex) {
				continue
			}
			weights[hex] += 10
		}
	}

	type weighted struct {
		hex    string
		weight int
	}
	ranked := make([]weighted, 0, len(weights))
	for hex, weight := range weights {
		ranked = append(ranked, weighted{hex, weight})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].hex < ranked[j].hex
	})

	var out []string
	for _, entry := range ranked {
		out = append(out, entry.hex)
		if len(out) == 10 {
			break
		}
	}
	return out
}

func isBrandSelector(selector string) bool {
	for _, pattern := range brandSelectorPatterns {
		if strings.Contains(selector, pattern) {
			return true
		}
	}
	return anchorSelectorRe.MatchString(selector)
}

// normalizeHex expands #abc to #aabbcc and lowercases. Returns false for
// lengths that are not valid hex colors (the regex also matches 4 and 5).
func normalizeHex(raw string) (string, bool) {
	hex := strings.ToLower(raw)
	switch len(hex) {
	case 7:
		return hex, true
	case 4:
		return "#" + strings.Repeat(string(hex[1]), 2) +
			strings.Repeat(string(hex[2]), 2) +
			strings.Repeat(string(hex[3]), 2), true
	default:
		return "", false
	}
}

// isBoringColor filters whites, blacks and mid grays that say nothing about
// the brand palette.
func isBoringColor(hex string) bool {
	r, g, b, ok := rgb(hex)
	if !ok {
		return true
	}
	if r == 255 && g == 255 && b == 255 {
		return true
	}
	if r == 0 && g == 0 && b == 0 {
		return true
	}
	maxDiff := maxInt(absInt(r-g), maxInt(absInt(g-b), absInt(r-b)))
	if maxDiff < 20 && r > 30 && r < 230 {
		return true
	}
	if r > 240 && g > 240 && b > 240 {
		return true
	}
	if r < 15 && g < 15 && b < 15 {
		return true
	}
	return false
}

func rgb(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseInt(hex[1:3], 16, 0)
	gv, err2 := strconv.ParseInt(hex[3:5], 16, 0)
	bv, err3 := strconv.ParseInt(hex[5:7], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
