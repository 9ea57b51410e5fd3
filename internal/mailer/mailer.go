// Package mailer sends plain-text email for the contact form.
package mailer

import (
	"context"
	"errors"
	"net"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrNotConfigured = errors.New("mailer: SMTP credentials not configured")

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
	ReplyTo string
}

// Bytes renders the message with headers for an SMTP DATA command.
func (m Message) Bytes(from string) []byte {
	var b strings.Builder
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + headerSafe(m.Subject) + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	if m.ReplyTo != "" {
		b.WriteString("Reply-To: " + headerSafe(m.ReplyTo) + "\r\n")
	}
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.Body + "\r\n")
	return []byte(b.String())
}

// headerSafe drops line breaks so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// Sender delivers a message. Implementations report failure through the
// returned error only.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SendFunc adapts a function to Sender.
type SendFunc func(ctx context.Context, m Message) error

func (f SendFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
}

// SMTP sends through an authenticated SMTP relay.
type SMTP struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg, send: smtp.SendMail}
}

func (s *SMTP) Send(ctx context.Context, m Message) error {
	if s.cfg.User == "" || s.cfg.Pass == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	// smtp.SendMail has no context; run it aside so cancellation unblocks the caller.
	done := make(chan error, 1)
	go func() {
		done <- s.send(addr, auth, s.cfg.User, []string{m.To}, m.Bytes(s.cfg.User))
	}()
	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Str("to", m.To).Msg("error sending email")
			return err
		}
		log.Info().Str("to", m.To).Msg("email sent")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
