package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const dataForSEOBaseURL = "https://api.dataforseo.com"

const (
	maxAttempts    = 3
	retryBaseDelay = 2 * time.Second

	rankedKeywordLimit = 10
	backlinkTopLimit   = 5
	competitorLimit    = 5
)

// Google Ads location codes.
const (
	locationAustria = 2040
	locationGermany = 2276
	locationUS      = 2840
)

// DataForSEO fetches keyword, backlink and competitor data. Credentials are
// optional; when absent the client reports itself unconfigured and the whole
// analysis is skipped.
type DataForSEO struct {
	Login      string
	Password   string
	BaseURL    string
	HTTPClient *http.Client

	// Sleep is swappable for tests.
	Sleep func(time.Duration)
}

// NewDataForSEO builds a client with the given basic-auth credentials.
func NewDataForSEO(login, password string) *DataForSEO {
	return &DataForSEO{
		Login:      login,
		Password:   password,
		BaseURL:    dataForSEOBaseURL,
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Configured reports whether credentials are present.
func (d *DataForSEO) Configured() bool {
	return d != nil && d.Login != "" && d.Password != ""
}

// LocationCode maps a site hostname to the Google Ads location of its
// likely market.
func LocationCode(hostname string) int {
	switch {
	case strings.HasSuffix(hostname, ".at"):
		return locationAustria
	case strings.HasSuffix(hostname, ".de"):
		return locationGermany
	default:
		return locationUS
	}
}

// Insights bundles the outcome of the full DataForSEO analysis. Every part
// degrades independently: a failed call leaves its field at the typed zero
// value while the others still fill in.
type Insights struct {
	Keywords       []Keyword       `json:"keywords"`
	RankedKeywords []RankedKeyword `json:"rankedKeywords"`
	Backlinks      BacklinkSummary `json:"backlinks"`
	Competitors    []Competitor    `json:"competitors"`
}

// RankedKeyword is a term the domain already ranks for in Google.
type RankedKeyword struct {
	Term         string `json:"term"`
	Position     int    `json:"position"`
	SearchVolume int    `json:"searchVolume"`
}

// BacklinkSummary condenses the domain's backlink profile.
type BacklinkSummary struct {
	Total            int        `json:"total"`
	ReferringDomains int        `json:"referringDomains"`
	Top              []Backlink `json:"top,omitempty"`
}

// Backlink is one referring page.
type Backlink struct {
	URL  string `json:"url"`
	Rank int    `json:"rank"`
}

// Competitor is a domain ranking for the same keywords.
type Competitor struct {
	Domain        string  `json:"domain"`
	Intersections int     `json:"intersections"`
	AvgPosition   float64 `json:"avgPosition"`
}

// Analyze runs the full analysis: search volume for the extracted keywords,
// ranked keywords, backlink summary and competitors. Partial failures
// degrade; the joined error reports what could not be fetched.
func (d *DataForSEO) Analyze(ctx context.Context, keywords []Keyword, hostname string) (Insights, error) {
	insights := Insights{
		Keywords:       keywords,
		RankedKeywords: []RankedKeyword{},
		Competitors:    []Competitor{},
	}
	if !d.Configured() {
		return insights, nil
	}

	var errs []error
	if enriched, err := d.Enrich(ctx, keywords, hostname); err != nil {
		errs = append(errs, fmt.Errorf("search volume: %w", err))
	} else {
		insights.Keywords = enriched
	}
	if ranked, err := d.RankedKeywords(ctx, hostname); err != nil {
		errs = append(errs, fmt.Errorf("ranked keywords: %w", err))
	} else {
		insights.RankedKeywords = ranked
	}
	if backlinks, err := d.BacklinkSummary(ctx, hostname); err != nil {
		errs = append(errs, fmt.Errorf("backlinks: %w", err))
	} else {
		insights.Backlinks = backlinks
	}
	if competitors, err := d.Competitors(ctx, hostname); err != nil {
		errs = append(errs, fmt.Errorf("competitors: %w", err))
	} else {
		insights.Competitors = competitors
	}
	return insights, errors.Join(errs...)
}

type volumeTask struct {
	Keywords     []string `json:"keywords"`
	LocationCode int      `json:"location_code"`
	LanguageCode string   `json:"language_code"`
}

type volumeResponse struct {
	StatusCode int `json:"status_code"`
	Tasks      []struct {
		Result []struct {
			Keyword      string  `json:"keyword"`
			SearchVolume int     `json:"search_volume"`
			CPC          float64 `json:"cpc"`
		} `json:"result"`
	} `json:"tasks"`
}

// Enrich fills in search volume and CPC for the given keywords. The input
// slice is returned enriched; on any failure it is returned unchanged with
// the error.
func (d *DataForSEO) Enrich(ctx context.Context, keywords []Keyword, hostname string) ([]Keyword, error) {
	if !d.Configured() || len(keywords) == 0 {
		return keywords, nil
	}

	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		terms = append(terms, kw.Term)
	}

	var decoded volumeResponse
	err := d.post(ctx, "/v3/keywords_data/google_ads/search_volume/live", []volumeTask{{
		Keywords:     terms,
		LocationCode: LocationCode(hostname),
		LanguageCode: "de",
	}}, &decoded)
	if err != nil {
		return keywords, err
	}

	volumes := make(map[string]struct {
		volume int
		cpc    float64
	})
	for _, task := range decoded.Tasks {
		for _, res := range task.Result {
			volumes[strings.ToLower(res.Keyword)] = struct {
				volume int
				cpc    float64
			}{res.SearchVolume, res.CPC}
		}
	}

	enriched := make([]Keyword, len(keywords))
	copy(enriched, keywords)
	for i := range enriched {
		if v, ok := volumes[strings.ToLower(enriched[i].Term)]; ok {
			enriched[i].SearchVolume = v.volume
			enriched[i].CPC = v.cpc
		}
	}
	return enriched, nil
}

type labsTask struct {
	Target       string `json:"target"`
	LocationCode int    `json:"location_code"`
	LanguageCode string `json:"language_code"`
	Limit        int    `json:"limit"`
}

type rankedResponse struct {
	Tasks []struct {
		Result []struct {
			Items []struct {
				KeywordData struct {
					Keyword     string `json:"keyword"`
					KeywordInfo struct {
						SearchVolume int `json:"search_volume"`
					} `json:"keyword_info"`
				} `json:"keyword_data"`
				RankedSerpElement struct {
					SerpItem struct {
						RankAbsolute int `json:"rank_absolute"`
					} `json:"serp_item"`
				} `json:"ranked_serp_element"`
			} `json:"items"`
		} `json:"result"`
	} `json:"tasks"`
}

// RankedKeywords returns the terms the domain already ranks for.
func (d *DataForSEO) RankedKeywords(ctx context.Context, hostname string) ([]RankedKeyword, error) {
	var decoded rankedResponse
	err := d.post(ctx, "/v3/dataforseo_labs/google/ranked_keywords/live", []labsTask{{
		Target:       hostname,
		LocationCode: LocationCode(hostname),
		LanguageCode: "de",
		Limit:        rankedKeywordLimit,
	}}, &decoded)
	if err != nil {
		return nil, err
	}

	ranked := []RankedKeyword{}
	for _, task := range decoded.Tasks {
		for _, res := range task.Result {
			for _, item := range res.Items {
				ranked = append(ranked, RankedKeyword{
					Term:         item.KeywordData.Keyword,
					Position:     item.RankedSerpElement.SerpItem.RankAbsolute,
					SearchVolume: item.KeywordData.KeywordInfo.SearchVolume,
				})
			}
		}
	}
	return ranked, nil
}

type backlinkSummaryTask struct {
	Target            string `json:"target"`
	IncludeSubdomains bool   `json:"include_subdomains"`
}

type backlinkSummaryResponse struct {
	Tasks []struct {
		Result []struct {
			Backlinks        int `json:"backlinks"`
			ReferringDomains int `json:"referring_domains"`
		} `json:"result"`
	} `json:"tasks"`
}

type backlinkListTask struct {
	Target string `json:"target"`
	Limit  int    `json:"limit"`
}

type backlinkListResponse struct {
	Tasks []struct {
		Result []struct {
			Items []struct {
				URLFrom string `json:"url_from"`
				Rank    int    `json:"rank"`
			} `json:"items"`
		} `json:"result"`
	} `json:"tasks"`
}

// BacklinkSummary returns the domain's backlink totals plus the strongest
// referring pages. A failure of the top-links call still returns the totals.
func (d *DataForSEO) BacklinkSummary(ctx context.Context, hostname string) (BacklinkSummary, error) {
	var decoded backlinkSummaryResponse
	err := d.post(ctx, "/v3/backlinks/summary/live", []backlinkSummaryTask{{
		Target:            hostname,
		IncludeSubdomains: true,
	}}, &decoded)
	if err != nil {
		return BacklinkSummary{}, err
	}

	var summary BacklinkSummary
	for _, task := range decoded.Tasks {
		for _, res := range task.Result {
			summary.Total = res.Backlinks
			summary.ReferringDomains = res.ReferringDomains
		}
	}

	var topDecoded backlinkListResponse
	err = d.post(ctx, "/v3/backlinks/backlinks/live", []backlinkListTask{{
		Target: hostname,
		Limit:  backlinkTopLimit,
	}}, &topDecoded)
	if err != nil {
		return summary, nil
	}
	for _, task := range topDecoded.Tasks {
		for _, res := range task.Result {
			for _, item := range res.Items {
				summary.Top = append(summary.Top, Backlink{URL: item.URLFrom, Rank: item.Rank})
			}
		}
	}
	return summary, nil
}

type competitorResponse struct {
	Tasks []struct {
		Result []struct {
			Items []struct {
				Domain        string  `json:"domain"`
				Intersections int     `json:"intersections"`
				AvgPosition   float64 `json:"avg_position"`
			} `json:"items"`
		} `json:"result"`
	} `json:"tasks"`
}

// Competitors returns domains ranking for the same keyword set.
func (d *DataForSEO) Competitors(ctx context.Context, hostname string) ([]Competitor, error) {
	var decoded competitorResponse
	err := d.post(ctx, "/v3/dataforseo_labs/google/competitors_domain/live", []labsTask{{
		Target:       hostname,
		LocationCode: LocationCode(hostname),
		LanguageCode: "de",
		Limit:        competitorLimit,
	}}, &decoded)
	if err != nil {
		return nil, err
	}

	competitors := []Competitor{}
	for _, task := range decoded.Tasks {
		for _, res := range task.Result {
			for _, item := range res.Items {
				if item.Domain == hostname {
					continue
				}
				competitors = append(competitors, Competitor{
					Domain:        item.Domain,
					Intersections: item.Intersections,
					AvgPosition:   item.AvgPosition,
				})
			}
		}
	}
	return competitors, nil
}

// post sends one task payload with basic auth, retrying transient failures
// with exponential backoff before giving up.
func (d *DataForSEO) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			d.sleep(retryBaseDelay * time.Duration(1<<(attempt-2)))
		}
		if err := d.postOnce(ctx, path, body, out); err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		return nil
	}
	return lastErr
}

func (d *DataForSEO) postOnce(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(d.Login, d.Password)
	req.Header.Set("Content-Type", "application/json")

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: http status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (d *DataForSEO) sleep(duration time.Duration) {
	if d.Sleep != nil {
		d.Sleep(duration)
		return
	}
	time.Sleep(duration)
}
