package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePage = `<!doctype html>
<html>
<head>
<title>Friseur Wien - Salon Muster</title>
<meta name="description" content="Ihr Friseur im 7. Bezirk.">
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="icon" href="/favicon.ico">
<style>.btn{background:#e91e63}body{font-family:'Open Sans',sans-serif}</style>
<script async src="https://www.googletagmanager.com/gtag/js?id=G-TEST"></script>
</head>
<body>
<h1>Willkommen im Salon Muster</h1>
<h2>Unsere Leistungen</h2>
<h2>Preise</h2>
<img src="/team.jpg" alt="Unser Team">
<img src="/salon.jpg">
<a href="/preise">Preise</a>
<a href="/impressum">Impressum</a>
<a href="/termin">Jetzt Termin buchen</a>
<a href="https://instagram.com/salonmuster">Instagram</a>
<a href="#top">Nach oben</a>
<a href="mailto:x@y.at">Mail</a>
<a href="tel:+431234567">Anrufen</a>
<p>Wir freuen uns auf Sie.</p>
</body>
</html>`

func TestFetchPageAndExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	t.Cleanup(srv.Close)

	s := New()
	page, err := s.FetchPage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	res := Extract(page)

	if res.Title != "Friseur Wien - Salon Muster" {
		t.Fatalf("title = %q", res.Title)
	}
	if res.Description != "Ihr Friseur im 7. Bezirk." {
		t.Fatalf("description = %q", res.Description)
	}
	if len(res.H1) != 1 || len(res.H2) != 2 {
		t.Fatalf("headings h1=%v h2=%v", res.H1, res.H2)
	}
	if res.ImageCount != 2 || res.MissingAlt != 1 {
		t.Fatalf("images = %d missing alt = %d", res.ImageCount, res.MissingAlt)
	}
	if len(res.InternalLinks) != 3 {
		t.Fatalf("internal links = %v", res.InternalLinks)
	}
	if len(res.ExternalLinks) != 1 {
		t.Fatalf("external links = %v", res.ExternalLinks)
	}
	if !res.Booking.HasBooking {
		t.Fatalf("booking = %+v, want link text hit", res.Booking)
	}
	if !res.Technical.HasViewport || !res.Technical.HasFavicon || !res.Technical.HasGoogleAnalytics {
		t.Fatalf("technical = %+v", res.Technical)
	}
	if len(res.Contact.Emails) != 1 || res.Contact.Emails[0] != "x@y.at" {
		t.Fatalf("emails = %v", res.Contact.Emails)
	}
	if len(res.Contact.Phones) != 1 {
		t.Fatalf("phones = %v", res.Contact.Phones)
	}
	if len(res.Contact.SocialLinks) != 1 {
		t.Fatalf("social links = %v", res.Contact.SocialLinks)
	}
	if len(res.Fonts) == 0 || res.Fonts[0] != "Open Sans" {
		t.Fatalf("fonts = %v", res.Fonts)
	}
	if !res.Legal.Impressum {
		t.Fatalf("legal = %+v, want impressum", res.Legal)
	}
	if res.Security.Score != 15 {
		t.Fatalf("security score = %d, want 15 (X-Frame-Options)", res.Security.Score)
	}
	if len(res.Colors) == 0 || res.Colors[0] != "#e91e63" {
		t.Fatalf("colors = %v", res.Colors)
	}
}

func TestFetchPageErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	s := New()
	if _, err := s.FetchPage(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error on 503")
	}
}

func TestCheckRobots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nSitemap: /sitemap.xml\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	info := New().CheckRobots(context.Background(), srv.URL+"/")
	if !info.HasRobotsTxt || !info.HasSitemap {
		t.Fatalf("robots = %+v", info)
	}
}

func TestCheckRobotsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	info := New().CheckRobots(context.Background(), srv.URL+"/")
	if info.HasRobotsTxt || info.HasSitemap {
		t.Fatalf("robots = %+v, want none", info)
	}
}
