package scrape

import "testing"

func TestDetectTechnicalMarkupSignals(t *testing.T) {
	html := `<html><head>
<meta name="viewport" content="width=device-width">
<link rel="shortcut icon" href="/favicon.ico">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"HairSalon","name":"Salon Muster"}</script>
</head><body></body></html>`
	tech := DetectTechnical(mustDoc(t, html), html)
	if !tech.HasViewport || !tech.HasFavicon || !tech.HasStructuredData {
		t.Fatalf("got %+v", tech)
	}
	if len(tech.StructuredDataTypes) != 1 || tech.StructuredDataTypes[0] != "HairSalon" {
		t.Fatalf("types = %v", tech.StructuredDataTypes)
	}
}

func TestDetectTechnicalTrackers(t *testing.T) {
	html := `<html><head>
<script src="https://www.googletagmanager.com/gtm.js?id=GTM-ABC"></script>
<script src="https://connect.facebook.net/en_US/fbevents.js"></script>
<script src="https://static.hotjar.com/c/hotjar-1.js"></script>
</head><body></body></html>`
	tech := DetectTechnical(mustDoc(t, html), html)
	if !tech.HasTagManager || !tech.HasFacebookPixel || !tech.HasHotjar {
		t.Fatalf("got %+v", tech)
	}
	if tech.HasGoogleAnalytics {
		t.Fatalf("got %+v, want no GA without gtag snippet", tech)
	}
}

func TestDetectTechnicalEmptyPage(t *testing.T) {
	html := `<html><head></head><body></body></html>`
	tech := DetectTechnical(mustDoc(t, html), html)
	if tech.HasViewport || tech.HasStructuredData || tech.HasGoogleAnalytics {
		t.Fatalf("got %+v, want all false", tech)
	}
}

func TestCountMixedContent(t *testing.T) {
	html := `<img src="http://cdn.example.com/a.jpg"><script src="http://cdn.example.com/b.js"></script>` +
		`<a href="http://other.example.com">Link</a><img src="https://cdn.example.com/c.jpg">`
	if got := CountMixedContent(html); got != 2 {
		t.Fatalf("mixed content = %d, want 2 (plain links do not count)", got)
	}
}
