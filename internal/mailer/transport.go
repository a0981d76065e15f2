// Package mailer contains the outbound mail transport and the threaded
// email dispatcher that orchestrates rendering, sending, and persistence.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
	"gopkg.in/gomail.v2"
)

// OutboundEmail is the message handed to the transport.
type OutboundEmail struct {
	To          string
	ReplyTo     string
	Subject     string
	HTMLContent string
	TextContent string
}

// SendResult reports a successful transport dispatch.
type SendResult struct {
	MessageID string
}

// Transport sends a single email. Implementations must respect context
// cancellation and must not block past their configured timeout.
type Transport interface {
	Send(ctx context.Context, email *OutboundEmail) (*SendResult, error)
}

// SMTPConfig holds the outbound SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Domain used in generated Message-ID headers.
	MessageDomain string
	Timeout       time.Duration
}

// smtpTransport implements Transport over an SMTP relay
type smtpTransport struct {
	dialer        *gomail.Dialer
	from          string
	messageDomain string
	timeout       time.Duration
}

// NewSMTPTransport creates a Transport backed by the configured SMTP relay.
func NewSMTPTransport(cfg SMTPConfig) Transport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &smtpTransport{
		dialer:        gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:          cfg.From,
		messageDomain: cfg.MessageDomain,
		timeout:       timeout,
	}
}

// Send delivers the email through the SMTP relay. A Message-ID is generated
// locally so every sent message has a stable transport identifier even when
// the relay does not echo one back.
func (t *smtpTransport) Send(ctx context.Context, email *OutboundEmail) (*SendResult, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), t.messageDomain)

	m := gomail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-ID", messageID)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}

	if email.TextContent != "" {
		m.SetBody("text/plain", email.TextContent)
		if email.HTMLContent != "" {
			m.AddAlternative("text/html", email.HTMLContent)
		}
	} else {
		m.SetBody("text/html", email.HTMLContent)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	// DialAndSend has no context support; run it in a goroutine and give up
	// when the deadline passes. The goroutine finishes on its own once the
	// underlying TCP connection times out.
	errCh := make(chan error, 1)
	go func() {
		errCh <- t.dialer.DialAndSend(m)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrTransportFailure, err)
		}
		return &SendResult{MessageID: messageID}, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: send to %s exceeded %s", apperrors.ErrTransportTimeout, email.To, t.timeout)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTransportFailure, ctx.Err())
	}
}
