package email

import (
	"context"
	"strings"
)

// EmailSender delivers plain-text mail. SESClient is the production
// implementation; tests substitute fakes.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
	SendFrom(ctx context.Context, recipient, subject, body, sender string) error
}

// Message is a rendered plain-text email.
type Message struct {
	Subject string
	Body    string
}

// Empty reports whether the message has nothing worth sending.
func (m Message) Empty() bool {
	return strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Body) == ""
}
