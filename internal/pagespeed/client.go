package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

const (
	maxAttempts    = 3
	retryBaseDelay = 2 * time.Second
)

// Client calls the PageSpeed Insights API.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	// Sleep is swappable for tests.
	Sleep func(time.Duration)
}

// Strategy holds category scores for one strategy run (mobile or desktop).
// Scores are 0-100.
type Strategy struct {
	Strategy      string        `json:"strategy"`
	FinalURL      string        `json:"finalUrl"`
	FetchTime     string        `json:"fetchTime"`
	Performance   int           `json:"performance"`
	SEO           int           `json:"seo"`
	Accessibility int           `json:"accessibility"`
	BestPractices int           `json:"bestPractices"`
	WebVitals     CoreWebVitals `json:"webVitals"`

	// Screenshot is the final-screenshot audit as a data URL, when present.
	Screenshot string `json:"screenshot,omitempty"`
}

// CoreWebVitals carries the lab metrics as Lighthouse's localized display
// strings (e.g. "2,1 s"), shown in the report as-is.
type CoreWebVitals struct {
	LCP        string `json:"lcp"`
	FCP        string `json:"fcp"`
	CLS        string `json:"cls"`
	TBT        string `json:"tbt"`
	SpeedIndex string `json:"speedIndex"`
}

// Result pairs the mobile and desktop runs. Mobile is authoritative; when
// the desktop run fails it carries a copy of the mobile scores.
type Result struct {
	Mobile  Strategy `json:"mobile"`
	Desktop Strategy `json:"desktop"`
}

// New builds a Client. The API works without a key at a much lower quota,
// so an empty key is allowed.
func New(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Analyze runs mobile and desktop strategies for the given URL. The mobile
// run is required; a desktop failure falls back to the mobile scores.
func (c *Client) Analyze(ctx context.Context, siteURL string) (Result, error) {
	mobile, err := c.run(ctx, siteURL, "mobile")
	if err != nil {
		return Result{}, fmt.Errorf("pagespeed mobile: %w", err)
	}

	desktop, err := c.run(ctx, siteURL, "desktop")
	if err != nil {
		desktop = mobile
		desktop.Strategy = "desktop"
	}

	return Result{Mobile: mobile, Desktop: desktop}, nil
}

func (c *Client) run(ctx context.Context, siteURL, strategy string) (Strategy, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(retryBaseDelay * time.Duration(1<<(attempt-2)))
		}
		result, err := c.fetch(ctx, siteURL, strategy)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return Strategy{}, ctx.Err()
		}
	}
	return Strategy{}, lastErr
}

type psiResponse struct {
	LighthouseResult struct {
		FinalDisplayedURL string `json:"finalDisplayedUrl"`
		FetchTime         string `json:"fetchTime"`
		Categories        map[string]struct {
			Score *float64 `json:"score"`
		} `json:"categories"`
		Audits map[string]psiAudit `json:"audits"`
	} `json:"lighthouseResult"`
}

type psiAudit struct {
	DisplayValue string `json:"displayValue"`
	Details      struct {
		Data string `json:"data"`
	} `json:"details"`
}

func (c *Client) fetch(ctx context.Context, siteURL, strategy string) (Strategy, error) {
	query := url.Values{}
	query.Set("url", siteURL)
	query.Set("strategy", strategy)
	query["category"] = []string{"performance", "seo", "accessibility", "best-practices"}
	if c.APIKey != "" {
		query.Set("key", c.APIKey)
	}

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return Strategy{}, fmt.Errorf("build request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Strategy{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Strategy{}, fmt.Errorf("http status %d: %s", resp.StatusCode, string(body))
	}

	var decoded psiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Strategy{}, fmt.Errorf("decode response: %w", err)
	}

	lh := decoded.LighthouseResult
	return Strategy{
		Strategy:      strategy,
		FinalURL:      lh.FinalDisplayedURL,
		FetchTime:     lh.FetchTime,
		Performance:   categoryScore(lh.Categories, "performance"),
		SEO:           categoryScore(lh.Categories, "seo"),
		Accessibility: categoryScore(lh.Categories, "accessibility"),
		BestPractices: categoryScore(lh.Categories, "best-practices"),
		WebVitals: CoreWebVitals{
			LCP:        lh.Audits["largest-contentful-paint"].DisplayValue,
			FCP:        lh.Audits["first-contentful-paint"].DisplayValue,
			CLS:        lh.Audits["cumulative-layout-shift"].DisplayValue,
			TBT:        lh.Audits["total-blocking-time"].DisplayValue,
			SpeedIndex: lh.Audits["speed-index"].DisplayValue,
		},
		Screenshot: lh.Audits["final-screenshot"].Details.Data,
	}, nil
}

func categoryScore(categories map[string]struct {
	Score *float64 `json:"score"`
}, name string) int {
	cat, ok := categories[name]
	if !ok || cat.Score == nil {
		return 0
	}
	return int(math.Round(*cat.Score * 100))
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}
