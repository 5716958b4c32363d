package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domainMessaging "collection_compliance_engine/internal/domain/messaging"
)

// Console senders log messages instead of delivering them. They stand in for
// the real transports in development so the reminder flow can be exercised
// end to end without provider credentials.

type ConsoleSMSSender struct {
	log *logrus.Logger
}

var _ domainMessaging.SMSSender = (*ConsoleSMSSender)(nil)

func NewConsoleSMSSender(log *logrus.Logger) *ConsoleSMSSender {
	return &ConsoleSMSSender{log: log}
}

func (s *ConsoleSMSSender) Send(_ context.Context, toPhone, body string) (string, error) {
	s.log.WithFields(logrus.Fields{
		"channel": "sms",
		"to":      toPhone,
	}).Infof("console transport: %s", body)
	return consoleMessageID(), nil
}

type ConsoleEmailSender struct {
	log *logrus.Logger
}

var _ domainMessaging.EmailSender = (*ConsoleEmailSender)(nil)

func NewConsoleEmailSender(log *logrus.Logger) *ConsoleEmailSender {
	return &ConsoleEmailSender{log: log}
}

func (s *ConsoleEmailSender) Send(_ context.Context, toEmail, subject, textBody, _ string) (string, error) {
	s.log.WithFields(logrus.Fields{
		"channel": "email",
		"to":      toEmail,
		"subject": subject,
	}).Infof("console transport: %s", textBody)
	return consoleMessageID(), nil
}

func consoleMessageID() string {
	return fmt.Sprintf("console-%d", time.Now().UnixNano())
}
