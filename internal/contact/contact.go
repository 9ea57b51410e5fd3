// Package contact handles contact form submissions: composing the email,
// forwarding it to the mail sender, and deciding what the form shows next.
package contact

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Zachkp/portfolio/internal/mailer"
)

const (
	sendTimeout  = 30 * time.Second
	maxVisitors  = 10000
	subjectFront = "Portfolio Contact: "
)

// Form is the visitor's input. Field names match the HTML inputs.
type Form struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject" binding:"required"`
	Message string `form:"message" binding:"required"`
}

// State is what the contact form renders after a submission attempt.
type State struct {
	Form  Form
	Sent  bool
	Error string
}

type Stats struct {
	Sent      int64 `json:"sent"`
	Failed    int64 `json:"failed"`
	Throttled int64 `json:"throttled"`
}

type Service struct {
	sender mailer.Sender
	to     string

	limit rate.Limit
	burst int

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	maxVisitors int

	sent, failed, throttled atomic.Int64
}

// NewService forwards submissions to "to" through sender. perMinute and burst
// bound how often one visitor can submit; perMinute <= 0 disables throttling.
func NewService(sender mailer.Sender, to string, perMinute float64, burst int) *Service {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}
	if burst < 1 {
		burst = 1
	}
	return &Service{
		sender:      sender,
		to:          to,
		limit:       limit,
		burst:       burst,
		limiters:    map[string]*rate.Limiter{},
		maxVisitors: maxVisitors,
	}
}

// Compose builds the outgoing email for a form. The body is text/plain, so the
// fields are forwarded exactly as typed.
func (s *Service) Compose(f Form) mailer.Message {
	body := fmt.Sprintf(`
Name: %s
Email: %s
Subject: %s

Message:
%s
`, f.Name, f.Email, f.Subject, f.Message)
	return mailer.Message{
		To:      s.to,
		Subject: subjectFront + f.Subject,
		Body:    body,
		ReplyTo: f.Email,
	}
}

// Submit sends the form. On success the returned state has an empty form; on
// any failure the visitor's input is returned unchanged with an error message.
// The submit control is never left disabled and nothing is retried.
func (s *Service) Submit(ctx context.Context, visitor string, f Form) State {
	id := uuid.NewString()

	if !s.allow(visitor) {
		s.throttled.Add(1)
		log.Warn().Str("submission", id).Str("visitor", visitor).Msg("contact submission throttled")
		return State{Form: f, Error: "You're sending messages too quickly. Please wait a minute and try again."}
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := s.sender.Send(ctx, s.Compose(f)); err != nil {
		s.failed.Add(1)
		log.Error().Err(err).Str("submission", id).Msg("error sending contact email")
		return State{Form: f, Error: "Sorry, there was an error sending your message. Please try again later."}
	}

	s.sent.Add(1)
	log.Info().Str("submission", id).Str("visitor", visitor).Msg("contact email sent")
	return State{Sent: true}
}

func (s *Service) Stats() Stats {
	return Stats{Sent: s.sent.Load(), Failed: s.failed.Load(), Throttled: s.throttled.Load()}
}

func (s *Service) allow(visitor string) bool {
	if s.limit == rate.Inf {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lim, ok := s.limiters[visitor]
	if !ok {
		if len(s.limiters) >= s.maxVisitors {
			s.sweep()
		}
		if len(s.limiters) >= s.maxVisitors {
			// everyone is mid-throttle; start over rather than grow
			clear(s.limiters)
		}
		lim = rate.NewLimiter(s.limit, s.burst)
		s.limiters[visitor] = lim
	}
	return lim.Allow()
}

// sweep drops limiters that have refilled, i.e. visitors gone quiet.
func (s *Service) sweep() {
	for k, lim := range s.limiters {
		if lim.Tokens() >= float64(s.burst) {
			delete(s.limiters, k)
		}
	}
}
