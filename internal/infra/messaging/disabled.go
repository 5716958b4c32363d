package messaging

import (
	"context"
	"fmt"

	domainMessaging "collection_compliance_engine/internal/domain/messaging"
)

// Disabled senders fail every send with a configuration message. They are
// wired when transport credentials are missing, so reminder operations
// surface the problem as per-recipient failure results instead of crashing
// at startup.

type DisabledSMSSender struct {
	reason string
}

var _ domainMessaging.SMSSender = (*DisabledSMSSender)(nil)

func NewDisabledSMSSender(reason string) *DisabledSMSSender {
	return &DisabledSMSSender{reason: reason}
}

func (s *DisabledSMSSender) Send(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf("sms transport not configured: %s", s.reason)
}

type DisabledEmailSender struct {
	reason string
}

var _ domainMessaging.EmailSender = (*DisabledEmailSender)(nil)

func NewDisabledEmailSender(reason string) *DisabledEmailSender {
	return &DisabledEmailSender{reason: reason}
}

func (s *DisabledEmailSender) Send(_ context.Context, _, _, _, _ string) (string, error) {
	return "", fmt.Errorf("email transport not configured: %s", s.reason)
}
