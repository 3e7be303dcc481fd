package util

import "testing"

func TestNormalizeURLAddsScheme(t *testing.T) {
	got, err := NormalizeURL("example.at")
	if err != nil {
		t.Fatalf("NormalizeURL: %v", err)
	}
	if got != "https://example.at" {
		t.Fatalf("got %q, want https://example.at", got)
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	first, err := NormalizeURL("http://example.at/path?x=1")
	if err != nil {
		t.Fatalf("NormalizeURL: %v", err)
	}
	second, err := NormalizeURL(first)
	if err != nil {
		t.Fatalf("NormalizeURL second pass: %v", err)
	}
	if first != second {
		t.Fatalf("not idempotent: %q vs %q", first, second)
	}
}

func TestNormalizeURLRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "https://", "nodots"} {
		if _, err := NormalizeURL(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestHostname(t *testing.T) {
	if got := Hostname("https://www.example.at:8443/x"); got != "www.example.at" {
		t.Fatalf("got %q", got)
	}
}
