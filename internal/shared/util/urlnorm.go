package util

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL ensures the given address carries a scheme and parses as an
// absolute URL. Addresses without a scheme get https:// prefixed. The result
// is stable: normalizing an already-normalized URL returns it unchanged.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if parsed.Host == "" || !strings.Contains(parsed.Host, ".") {
		return "", fmt.Errorf("invalid host %q", parsed.Host)
	}
	return parsed.String(), nil
}

// Hostname extracts the bare host of a normalized URL, without port.
func Hostname(normalized string) string {
	parsed, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
