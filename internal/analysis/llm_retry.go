package analysis

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/Weboses/analyse.arsenio/internal/llm"
	"github.com/Weboses/analyse.arsenio/internal/shared/telemetry"
)

const (
	llmMaxAttempts    = 3
	llmRetryBaseDelay = 2 * time.Second
)

type retryingLLM struct {
	base       llm.Client
	requestID  string
	analysisID string
	sleep      func(time.Duration)
}

func newRetryingLLM(base llm.Client, analysisID, requestID string, sleep func(time.Duration)) llm.Client {
	if base == nil {
		return nil
	}
	return retryingLLM{
		base:       base,
		requestID:  requestID,
		analysisID: analysisID,
		sleep:      sleep,
	}
}

func (r retryingLLM) GenerateReportContent(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= llmMaxAttempts; attempt++ {
		if attempt > 1 {
			telemetry.Warn("llm.retry", map[string]any{
				"request_id":  r.requestID,
				"analysis_id": r.analysisID,
				"attempt":     attempt,
				"error":       sanitizeError(lastErr),
			})
			if err := r.wait(ctx, llmRetryBaseDelay*time.Duration(1<<(attempt-2))); err != nil {
				return "", err
			}
		}
		resp, err := r.base.GenerateReportContent(ctx, prompt)
		if err == nil || !shouldRetryLLM(err) {
			return resp, err
		}
		lastErr = err
	}
	return "", lastErr
}

func (r retryingLLM) wait(ctx context.Context, delay time.Duration) error {
	if r.sleep != nil {
		r.sleep(delay)
		return ctx.Err()
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "overloaded") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "anthropic") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
