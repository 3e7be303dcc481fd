package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBrevoSend(t *testing.T) {
	var captured sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/smtp/email" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("api-key"); got != "test-key" {
			t.Errorf("api-key = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("unmarshal: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@smtp-relay>"}`))
	}))
	t.Cleanup(srv.Close)

	b, err := NewBrevo("test-key", Sender{Name: "Bojan - arsenio.at", Email: "office@arsenio.at"})
	if err != nil {
		t.Fatalf("NewBrevo: %v", err)
	}
	b.BaseURL = srv.URL

	err = b.Send(context.Background(), Message{
		ToAddress: "kunde@example.at",
		ToName:    "Max",
		Subject:   "Ihre Website-Analyse",
		HTML:      "<p>Report</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(captured.To) != 1 || captured.To[0].Email != "kunde@example.at" {
		t.Fatalf("to = %+v", captured.To)
	}
	if len(captured.CC) != 1 || captured.CC[0].Email != "office@arsenio.at" {
		t.Fatalf("cc = %+v, want office copy", captured.CC)
	}
	if captured.HTMLContent != "<p>Report</p>" {
		t.Fatalf("htmlContent = %q", captured.HTMLContent)
	}
}

func TestBrevoSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
	}))
	t.Cleanup(srv.Close)

	b, err := NewBrevo("bad-key", Sender{Email: "office@arsenio.at"})
	if err != nil {
		t.Fatalf("NewBrevo: %v", err)
	}
	b.BaseURL = srv.URL

	if err := b.Send(context.Background(), Message{ToAddress: "x@y.at"}); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestNewBrevoValidation(t *testing.T) {
	if _, err := NewBrevo("", Sender{Email: "x@y.at"}); err == nil {
		t.Fatalf("expected error on empty key")
	}
	if _, err := NewBrevo("key", Sender{}); err == nil {
		t.Fatalf("expected error on empty sender")
	}
}

func TestWrapInTemplate(t *testing.T) {
	out := WrapInTemplate("<p>Inhalt</p>", "https://example.at")
	if !strings.Contains(out, "<p>Inhalt</p>") {
		t.Fatalf("report body missing")
	}
	if !strings.Contains(out, "https://example.at") {
		t.Fatalf("site url missing")
	}
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Fatalf("outer shell missing")
	}
}
