package messaging

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	domainMessaging "collection_compliance_engine/internal/domain/messaging"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridEmailSender sends reminder emails through the SendGrid v3 mail
// API.
type SendGridEmailSender struct {
	key  string
	from *sgmail.Email
}

var _ domainMessaging.EmailSender = (*SendGridEmailSender)(nil)

func NewSendGridEmailSender(key, fromName, fromEmail string) *SendGridEmailSender {
	return &SendGridEmailSender{
		key:  key,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

func (s *SendGridEmailSender) Send(ctx context.Context, toEmail, subject, textBody, htmlBody string) (string, error) {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", toEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", textBody),
		sgmail.NewContent("text/html", htmlBody),
	)

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("sendgrid rejected message (status %d): %s", res.StatusCode, strings.TrimSpace(res.Body))
	}

	// SendGrid returns the message id in a response header, not the body.
	if ids := res.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
