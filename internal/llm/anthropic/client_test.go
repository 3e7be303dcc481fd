package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "model"); err == nil {
		t.Fatalf("expected error on empty api key")
	}
	if _, err := NewClient("key", " "); err == nil {
		t.Fatalf("expected error on empty model")
	}
}

func TestGenerateReportContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicVersion {
			t.Errorf("anthropic-version = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var req messageRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		if req.MaxTokens != maxTokens || len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "{\"greeting\": \"Hallo\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 100, "output_tokens": 50}
		}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key", "test-model")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.baseURL = srv.URL

	out, err := c.GenerateReportContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateReportContent: %v", err)
	}
	if out != `{"greeting": "Hallo"}` {
		t.Fatalf("out = %q", out)
	}
}

func TestGenerateReportContentAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(529)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key", "test-model")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.baseURL = srv.URL

	if _, err := c.GenerateReportContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error on non-200")
	}
}
