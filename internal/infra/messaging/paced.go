package messaging

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	domainMessaging "collection_compliance_engine/internal/domain/messaging"
)

// Paced senders wrap a transport with a single-token bucket so consecutive
// sends are spaced at least one interval apart. Reminder batches go through
// these wrappers sequentially, which keeps batch throughput inside provider
// rate limits.

// PacedSMSSender delays each SMS send to the configured rate.
type PacedSMSSender struct {
	next    domainMessaging.SMSSender
	limiter *rate.Limiter
}

var _ domainMessaging.SMSSender = (*PacedSMSSender)(nil)

func NewPacedSMSSender(next domainMessaging.SMSSender, interval time.Duration) *PacedSMSSender {
	return &PacedSMSSender{next: next, limiter: newSendLimiter(interval)}
}

func (s *PacedSMSSender) Send(ctx context.Context, toPhone, body string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.next.Send(ctx, toPhone, body)
}

// PacedEmailSender delays each email send to the configured rate.
type PacedEmailSender struct {
	next    domainMessaging.EmailSender
	limiter *rate.Limiter
}

var _ domainMessaging.EmailSender = (*PacedEmailSender)(nil)

func NewPacedEmailSender(next domainMessaging.EmailSender, interval time.Duration) *PacedEmailSender {
	return &PacedEmailSender{next: next, limiter: newSendLimiter(interval)}
}

func (s *PacedEmailSender) Send(ctx context.Context, toEmail, subject, textBody, htmlBody string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.next.Send(ctx, toEmail, subject, textBody, htmlBody)
}

// newSendLimiter holds a single token: the first send goes out immediately,
// every following send waits out the interval.
func newSendLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
