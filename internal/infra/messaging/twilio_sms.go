package messaging

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	domainMessaging "collection_compliance_engine/internal/domain/messaging"
)

// TwilioSMSSender sends reminder texts through the Twilio Programmable
// Messaging API.
type TwilioSMSSender struct {
	client     *twilio.RestClient
	fromNumber string
}

var _ domainMessaging.SMSSender = (*TwilioSMSSender)(nil)

func NewTwilioSMSSender(accountSID, authToken, fromNumber string) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{client: client, fromNumber: fromNumber}
}

func (s *TwilioSMSSender) Send(ctx context.Context, toPhone, body string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("error sending SMS: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
