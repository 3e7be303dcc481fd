package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; ArsenioBot/1.0; +https://arsenio.at)"
	maxBodyBytes     = 5 << 20
)

// Scraper fetches and parses pages.
type Scraper struct {
	HTTPClient *http.Client
	UserAgent  string
}

// Page is a fetched document plus the response metadata extractors need.
type Page struct {
	URL      string
	FinalURL string
	Header   http.Header
	Doc      *goquery.Document
	HTML     string
}

// New returns a Scraper with sane timeouts.
func New() *Scraper {
	return &Scraper{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		UserAgent:  defaultUserAgent,
	}
}

// FetchPage downloads and parses the document at the given URL.
func (s *Scraper) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: http status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	html := string(body)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Page{
		URL:      pageURL,
		FinalURL: finalURL,
		Header:   resp.Header,
		Doc:      doc,
		HTML:     html,
	}, nil
}

// Extract pulls the structural signals out of a parsed page. Network probes
// (robots, link checks) are not part of this and run separately.
func Extract(page *Page) Result {
	doc := page.Doc
	res := Result{
		URL:      page.URL,
		FinalURL: page.FinalURL,
		HTTPS:    strings.HasPrefix(page.FinalURL, "https://"),
	}

	res.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		res.Description = strings.TrimSpace(desc)
	}

	doc.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			res.H1 = append(res.H1, text)
		}
	})
	doc.Find("h2").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			res.H2 = append(res.H2, text)
		}
	})

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		res.ImageCount++
		if alt, ok := sel.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			res.MissingAlt++
		}
	})

	res.InternalLinks, res.ExternalLinks = collectLinks(page)

	res.VisibleText = visibleText(doc)
	res.CMS = DetectCMS(page.HTML)
	res.Colors = ExtractColors(page.HTML)
	res.Fonts = ExtractFonts(page.HTML)
	res.DarkMode = DetectDarkMode(page.HTML)
	res.Technical = DetectTechnical(doc, page.HTML)
	res.Contact = ExtractContact(doc, page.HTML, res.VisibleText)
	res.Accessibility = AuditAccessibility(doc)
	if res.HTTPS {
		res.MixedContent = CountMixedContent(page.HTML)
	}
	res.Booking = DetectBooking(page.HTML, doc)
	res.Legal = DetectLegal(doc, page.HTML)
	res.Readability = ComputeReadability(res.VisibleText)
	res.Security = ScoreSecurityHeaders(page.Header)
	return res
}

func collectLinks(page *Page) (internal, external []string) {
	base, err := url.Parse(page.FinalURL)
	if err != nil {
		return nil, nil
	}
	seen := make(map[string]struct{})
	page.Doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}
		abs, err := base.Parse(href)
		if err != nil || (abs.Scheme != "http" && abs.Scheme != "https") {
			return
		}
		abs.Fragment = ""
		link := abs.String()
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		if abs.Hostname() == base.Hostname() {
			internal = append(internal, link)
		} else {
			external = append(external, link)
		}
	})
	return internal, external
}

func visibleText(doc *goquery.Document) string {
	clone := doc.Clone()
	clone.Find("script, style, noscript, svg, head").Remove()
	text := clone.Find("body").Text()
	return strings.Join(strings.Fields(text), " ")
}

func (s *Scraper) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *Scraper) userAgent() string {
	if s.UserAgent != "" {
		return s.UserAgent
	}
	return defaultUserAgent
}
