package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const brevoBaseURL = "https://api.brevo.com"

// Brevo sends email through the Brevo transactional API.
type Brevo struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	Sender     Sender
	CopyToSelf bool
}

// Sender identifies the from address.
type Sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewBrevo builds a Brevo mailer. CopyToSelf puts the sender address in CC
// so the team sees every report that goes out.
func NewBrevo(apiKey string, sender Sender) (*Brevo, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("BREVO_API_KEY is required")
	}
	if strings.TrimSpace(sender.Email) == "" {
		return nil, fmt.Errorf("sender address is required")
	}
	return &Brevo{
		APIKey:     apiKey,
		BaseURL:    brevoBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Sender:     sender,
		CopyToSelf: true,
	}, nil
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      Sender      `json:"sender"`
	To          []recipient `json:"to"`
	CC          []recipient `json:"cc,omitempty"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

// Send delivers one message.
func (b *Brevo) Send(ctx context.Context, msg Message) error {
	reqBody := sendRequest{
		Sender:      b.Sender,
		To:          []recipient{{Email: msg.ToAddress, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	if b.CopyToSelf {
		reqBody.CC = []recipient{{Email: b.Sender.Email, Name: b.Sender.Name}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	base := b.BaseURL
	if base == "" {
		base = brevoBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v3/smtp/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", b.APIKey)
	req.Header.Set("Accept", "application/json")

	client := b.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("brevo: http status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
