package messaging

import "context"

// SMSSender sends a text message through an external SMS provider.
// Implementations return the provider's message id on success. This mirrors
// the shape of the provider capability so application code stays decoupled
// from any particular SDK.
type SMSSender interface {
	Send(ctx context.Context, toPhone, body string) (providerID string, err error)
}

// EmailSender sends one email with a plain-text body and an HTML alternative
// through an external email provider.
type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, textBody, htmlBody string) (providerID string, err error)
}
