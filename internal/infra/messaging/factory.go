package messaging

import (
	domainMessaging "collection_compliance_engine/internal/domain/messaging"
	"collection_compliance_engine/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// BuildSMSSender picks the SMS transport for the current environment.
// A real provider is always paced; the console sender used in development
// logs instead of sending and needs no pacing.
func BuildSMSSender(cfg *config.AppConfig, log *logrus.Logger) domainMessaging.SMSSender {
	if cfg.SMSConfigured() {
		sender := NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		log.Infof("SMS transport: Twilio from %s, paced at %s.", cfg.TwilioFromNumber, cfg.SendInterval)
		return NewPacedSMSSender(sender, cfg.SendInterval)
	}
	if cfg.Environment == "development" {
		log.Warn("SMS transport: console (Twilio credentials not set).")
		return NewConsoleSMSSender(log)
	}
	log.Warn("SMS transport disabled: Twilio credentials not set.")
	return NewDisabledSMSSender("Twilio credentials not set")
}

// BuildEmailSender picks the email transport for the current environment.
func BuildEmailSender(cfg *config.AppConfig, log *logrus.Logger) domainMessaging.EmailSender {
	if cfg.EmailConfigured() {
		sender := NewSendGridEmailSender(cfg.SendGridAPIKey, cfg.FromName, cfg.FromEmail)
		log.Infof("Email transport: SendGrid as %s <%s>, paced at %s.", cfg.FromName, cfg.FromEmail, cfg.SendInterval)
		return NewPacedEmailSender(sender, cfg.SendInterval)
	}
	if cfg.Environment == "development" {
		log.Warn("Email transport: console (SendGrid API key not set).")
		return NewConsoleEmailSender(log)
	}
	log.Warn("Email transport disabled: SendGrid API key not set.")
	return NewDisabledEmailSender("SendGrid API key not set")
}
