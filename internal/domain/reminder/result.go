// internal/domain/reminder/result.go
package reminder

import (
	"github.com/google/uuid"

	"collection_compliance_engine/internal/domain/contact"
)

// Channel is a reminder delivery channel.
type Channel string

const (
	ChannelSMS   Channel = "SMS"
	ChannelEmail Channel = "EMAIL"
	// ChannelAuto lets the dispatcher pick per target: SMS when a phone
	// number is on file, email otherwise.
	ChannelAuto Channel = ""
)

// ParseChannel maps operator input to a Channel. Empty input means auto.
func ParseChannel(s string) (Channel, bool) {
	switch s {
	case "", "auto":
		return ChannelAuto, true
	case "sms", "SMS":
		return ChannelSMS, true
	case "email", "EMAIL":
		return ChannelEmail, true
	}
	return ChannelAuto, false
}

// DispatchResult records one reminder send attempt. Produced for the
// immediate response and run log only; the engine keeps no durable audit
// trail of individual sends.
type DispatchResult struct {
	Location          string
	Channel           Channel
	Target            contact.Contact
	Success           bool
	ProviderMessageID string
	Error             string // empty on success
}

// DispatchSummary is the outcome of a reminder batch. A batch succeeds when
// at least one send went through; individual failures ride along in Results
// rather than aborting the batch.
type DispatchSummary struct {
	BatchID uuid.UUID
	Results []DispatchResult
	Sent    int
	Failed  int
	Success bool
}

// Summarize counts results into a DispatchSummary under a fresh batch id.
func Summarize(results []DispatchResult) DispatchSummary {
	summary := DispatchSummary{
		BatchID: uuid.New(),
		Results: results,
	}
	for _, res := range results {
		if res.Success {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}
	summary.Success = summary.Sent >= 1
	return summary
}
