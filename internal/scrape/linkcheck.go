package scrape

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultLinkLimit  = 8
	linkProbeTimeout  = 3 * time.Second
	linkCacheCapacity = 512
)

// LinkChecker probes outgoing links with HEAD requests. Results are cached
// so repeated analyses of similar sites don't re-hit the same targets.
type LinkChecker struct {
	Client *http.Client
	Limit  int

	cacheOnce sync.Once
	cache     *lru.Cache[string, LinkCheck]
}

// NewLinkChecker returns a checker that does not follow redirects, so 3xx
// responses can be classified as such.
func NewLinkChecker(limit int) *LinkChecker {
	return &LinkChecker{
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Limit: limit,
	}
}

// Check probes up to Limit of the given links concurrently. Links that fail
// for reasons other than status or timeout are dropped from the result.
func (lc *LinkChecker) Check(ctx context.Context, links []string) []LinkCheck {
	limit := lc.Limit
	if limit <= 0 {
		limit = defaultLinkLimit
	}
	if len(links) > limit {
		links = links[:limit]
	}

	results := make([]*LinkCheck, len(links))
	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, link string) {
			defer wg.Done()
			if check, ok := lc.cached(link); ok {
				results[i] = &check
				return
			}
			check, ok := lc.probe(ctx, link)
			if !ok {
				return
			}
			lc.store(link, check)
			results[i] = &check
		}(i, link)
	}
	wg.Wait()

	var out []LinkCheck
	for _, res := range results {
		if res != nil {
			out = append(out, *res)
		}
	}
	return out
}

func (lc *LinkChecker) probe(ctx context.Context, link string) (LinkCheck, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, linkProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, link, nil)
	if err != nil {
		return LinkCheck{}, false
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	client := lc.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return LinkCheck{URL: link, Status: LinkTimeout}, true
		}
		return LinkCheck{}, false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400:
		return LinkCheck{URL: link, Status: LinkBroken, StatusCode: resp.StatusCode}, true
	case resp.StatusCode >= 300:
		return LinkCheck{URL: link, Status: LinkRedirect, StatusCode: resp.StatusCode}, true
	default:
		return LinkCheck{URL: link, Status: LinkOK, StatusCode: resp.StatusCode}, true
	}
}

func (lc *LinkChecker) cached(link string) (LinkCheck, bool) {
	lc.ensureCache()
	return lc.cache.Get(link)
}

func (lc *LinkChecker) store(link string, check LinkCheck) {
	lc.ensureCache()
	lc.cache.Add(link, check)
}

func (lc *LinkChecker) ensureCache() {
	lc.cacheOnce.Do(func() {
		cache, err := lru.New[string, LinkCheck](linkCacheCapacity)
		if err != nil {
			panic(err)
		}
		lc.cache = cache
	})
}

// BrokenCount tallies links classified as broken.
func BrokenCount(checks []LinkCheck) int {
	count := 0
	for _, check := range checks {
		if check.Status == LinkBroken {
			count++
		}
	}
	return count
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
