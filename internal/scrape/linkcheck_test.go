package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLinkCheckerClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/moved":
			w.Header().Set("Location", "/ok")
			w.WriteHeader(http.StatusMovedPermanently)
		}
	}))
	t.Cleanup(srv.Close)

	lc := NewLinkChecker(8)
	checks := lc.Check(context.Background(), []string{
		srv.URL + "/ok",
		srv.URL + "/gone",
		srv.URL + "/moved",
	})
	if len(checks) != 3 {
		t.Fatalf("got %d checks, want 3", len(checks))
	}
	byURL := make(map[string]LinkCheck)
	for _, c := range checks {
		byURL[c.URL] = c
	}
	if byURL[srv.URL+"/ok"].Status != LinkOK {
		t.Fatalf("ok link: %+v", byURL[srv.URL+"/ok"])
	}
	if got := byURL[srv.URL+"/gone"]; got.Status != LinkBroken || got.StatusCode != 404 {
		t.Fatalf("broken link: %+v", got)
	}
	if byURL[srv.URL+"/moved"].Status != LinkRedirect {
		t.Fatalf("redirect link: %+v", byURL[srv.URL+"/moved"])
	}
}

func TestLinkCheckerTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	t.Cleanup(srv.Close)

	lc := NewLinkChecker(8)
	checks := lc.Check(context.Background(), []string{srv.URL + "/slow"})
	if len(checks) != 1 || checks[0].Status != LinkTimeout {
		t.Fatalf("got %+v, want timeout", checks)
	}
}

func TestLinkCheckerLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	var links []string
	for i := 0; i < 20; i++ {
		links = append(links, srv.URL+"/p"+string(rune('a'+i)))
	}
	lc := NewLinkChecker(8)
	checks := lc.Check(context.Background(), links)
	if len(checks) != 8 {
		t.Fatalf("got %d checks, want 8", len(checks))
	}
}

func TestLinkCheckerDropsUnreachable(t *testing.T) {
	lc := NewLinkChecker(8)
	checks := lc.Check(context.Background(), []string{"http://127.0.0.1:1/x"})
	if len(checks) != 0 {
		t.Fatalf("got %+v, want unreachable link dropped", checks)
	}
}

func TestBrokenCount(t *testing.T) {
	checks := []LinkCheck{
		{Status: LinkOK}, {Status: LinkBroken}, {Status: LinkBroken}, {Status: LinkTimeout},
	}
	if got := BrokenCount(checks); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}
