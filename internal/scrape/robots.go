package scrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// CheckRobots probes /robots.txt and looks for a sitemap, either declared in
// robots.txt or served at /sitemap.xml.
func (s *Scraper) CheckRobots(ctx context.Context, siteURL string) Robots {
	base, err := url.Parse(siteURL)
	if err != nil {
		return Robots{}
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	var info Robots
	body, ok := s.fetchSmall(ctx, root.JoinPath("robots.txt").String())
	if ok {
		info.HasRobotsTxt = true
		if strings.Contains(strings.ToLower(body), "sitemap:") {
			info.HasSitemap = true
		}
	}
	if !info.HasSitemap {
		if _, ok := s.fetchSmall(ctx, root.JoinPath("sitemap.xml").String()); ok {
			info.HasSitemap = true
		}
	}
	return info
}

func (s *Scraper) fetchSmall(ctx context.Context, target string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", s.userAgent())
	resp, err := s.client().Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256<<10))
	if err != nil {
		return "", false
	}
	return string(body), true
}
