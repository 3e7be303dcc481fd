package mail

import (
	"context"
	"errors"
)

// Message is one outbound transactional email.
type Message struct {
	ToAddress string
	ToName    string
	Subject   string
	HTML      string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ErrNotConfigured is returned by the placeholder mailer.
var ErrNotConfigured = errors.New("mailer not configured")

// PlaceholderMailer stands in when no provider credentials are present.
type PlaceholderMailer struct{}

// Send returns ErrNotConfigured.
func (PlaceholderMailer) Send(ctx context.Context, msg Message) error {
	_ = ctx
	_ = msg
	return ErrNotConfigured
}
