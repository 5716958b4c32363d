// internal/app/reminder_service.go
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"collection_compliance_engine/internal/domain/contact"
	"collection_compliance_engine/internal/domain/messaging"
	"collection_compliance_engine/internal/domain/reminder"
	"collection_compliance_engine/internal/domain/report"
	"collection_compliance_engine/internal/domain/runlog"
	idb "collection_compliance_engine/internal/infra/database" // Alias for repository errors

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReminderService defines the reminder escalation operations, invoked by the
// out-of-scope HTTP layer and by the compliance scheduler.
type ReminderService interface {
	// SendLocationReminder reminds whoever still owes a submission for the
	// named location in the current week. Transport problems come back as
	// per-recipient failure rows, never as an error; the error return is
	// reserved for unknown locations and report failures.
	SendLocationReminder(ctx context.Context, locationName string, channel reminder.Channel, appURL string) (reminder.DispatchSummary, error)
	// RunComplianceCheck builds the current week's report and dispatches
	// reminders for every gap. Scheduled slots are guarded against running
	// twice on the same day; force bypasses the guard for manual runs.
	RunComplianceCheck(ctx context.Context, slot runlog.Slot, force bool) (CheckOutcome, error)
}

// CheckOutcome reports what a compliance-check run did. Skipped means the
// once-per-day guard stopped the run; Triggered is true only when a
// reminder dispatch actually happened.
type CheckOutcome struct {
	Skipped          bool
	Triggered        bool
	RunID            uuid.UUID
	LocationsChecked int
	GapsFound        int
	RemindersSent    int
	RemindersFailed  int
}

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	reports     *ReportService
	directory   contact.Directory
	smsSender   messaging.SMSSender
	emailSender messaging.EmailSender
	ledger      runlog.Ledger
	appBaseURL  string
	logger      *logrus.Logger
}

var _ ReminderService = (*ReminderServiceImpl)(nil)

func NewReminderServiceImpl(
	reports *ReportService,
	directory contact.Directory,
	smsSender messaging.SMSSender,
	emailSender messaging.EmailSender,
	ledger runlog.Ledger,
	appBaseURL string,
	logger *logrus.Logger,
) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		reports:     reports,
		directory:   directory,
		smsSender:   smsSender,
		emailSender: emailSender,
		ledger:      ledger,
		appBaseURL:  appBaseURL,
		logger:      logger,
	}
}

// dispatchItem is one pending send: a target bound to its location and the
// window the reminder speaks about.
type dispatchItem struct {
	location string
	window   report.Window
	target   reminder.Target
}

// SendLocationReminder implements the on-demand reminder operation.
func (s *ReminderServiceImpl) SendLocationReminder(ctx context.Context, locationName string, channel reminder.Channel, appURL string) (reminder.DispatchSummary, error) {
	if appURL == "" {
		appURL = s.appBaseURL
	}

	// 1. Resolve the location and its current-week status.
	status, window, err := s.reports.LocationStatus(ctx, locationName, 0)
	if err != nil {
		return reminder.DispatchSummary{}, err
	}

	// 2. Select the minimal target set.
	contacts, err := s.directory.ListByLocation(ctx, status.Location.Name)
	if err != nil {
		return reminder.DispatchSummary{}, fmt.Errorf("failed to look up contacts for %s: %w", status.Location.Name, err)
	}
	targets := reminder.SelectTargets(status, contacts)
	if len(targets) == 0 {
		if status.HasSubmitted {
			s.logger.Infof("Location %s is compliant for window %s. No reminder needed.", status.Location.Name, window.Label())
		} else {
			s.logger.Warnf("Location %s owes a submission but has no reachable contacts.", status.Location.Name)
		}
		return reminder.Summarize(nil), nil
	}

	// 3. Dispatch sequentially through the paced transports.
	items := make([]dispatchItem, 0, len(targets))
	for _, t := range targets {
		items = append(items, dispatchItem{location: status.Location.Name, window: window, target: t})
	}
	summary := reminder.Summarize(s.dispatch(ctx, items, channel, appURL))

	s.logger.Infof("Reminder dispatch for %s complete: %d sent, %d failed.", status.Location.Name, summary.Sent, summary.Failed)
	return summary, nil
}

// RunComplianceCheck implements the scheduled/manual compliance check.
func (s *ReminderServiceImpl) RunComplianceCheck(ctx context.Context, slot runlog.Slot, force bool) (CheckOutcome, error) {
	today := dateOnly(time.Now())

	// 1. Re-run guard: a designated slot runs at most once per day.
	if !force {
		existing, err := s.ledger.Find(ctx, slot, today)
		if err == nil {
			s.logger.Infof("Compliance check for slot %s already ran today (run %s). Skipping.", slot, existing.ID)
			return CheckOutcome{
				Skipped:          true,
				RunID:            existing.ID,
				LocationsChecked: existing.LocationsChecked,
				GapsFound:        existing.GapsFound,
				RemindersSent:    existing.RemindersSent,
				RemindersFailed:  existing.RemindersFailed,
			}, nil
		}
		if err != idb.ErrRunNotFound {
			return CheckOutcome{}, fmt.Errorf("failed to consult run ledger: %w", err)
		}
	}

	// 2. Build the current week's report.
	wk, err := s.reports.WeeklyReport(ctx, 0)
	if err != nil {
		return CheckOutcome{}, fmt.Errorf("compliance check aborted: %w", err)
	}

	// 3. Collect targets for every location still owing a submission.
	// Contact-lookup failures become failed results so the run log still
	// shows the gap; they must not abort the remaining locations.
	var results []reminder.DispatchResult
	var items []dispatchItem
	gaps := 0
	for _, st := range wk.Statuses {
		if st.HasSubmitted {
			continue
		}
		gaps++

		contacts, err := s.directory.ListByLocation(ctx, st.Location.Name)
		if err != nil {
			s.logger.Errorf("Contact lookup failed for location %s: %v", st.Location.Name, err)
			results = append(results, reminder.DispatchResult{
				Location: st.Location.Name,
				Error:    fmt.Sprintf("contact lookup failed: %v", err),
			})
			continue
		}

		targets := reminder.SelectTargets(st, contacts)
		if len(targets) == 0 {
			s.logger.Warnf("Location %s owes a submission but has no reachable contacts.", st.Location.Name)
			continue
		}
		for _, t := range targets {
			items = append(items, dispatchItem{location: st.Location.Name, window: wk.Window, target: t})
		}
	}

	outcome := CheckOutcome{
		RunID:            uuid.New(),
		LocationsChecked: len(wk.Statuses),
		GapsFound:        gaps,
	}

	// 4. Dispatch and summarize.
	if len(items) > 0 || len(results) > 0 {
		results = append(results, s.dispatch(ctx, items, reminder.ChannelAuto, s.appBaseURL)...)
		summary := reminder.Summarize(results)
		outcome.Triggered = true
		outcome.RemindersSent = summary.Sent
		outcome.RemindersFailed = summary.Failed
		s.logger.Infof("Compliance check %s: %d locations, %d gaps, %d reminders sent, %d failed.",
			slot, outcome.LocationsChecked, gaps, outcome.RemindersSent, outcome.RemindersFailed)
	} else {
		s.logger.Infof("Compliance check %s: all %d locations compliant for window %s.",
			slot, outcome.LocationsChecked, wk.Window.Label())
	}

	// 5. Record the run. Reminders already went out, so a ledger write
	// failure is logged rather than failing the whole run.
	entry := &runlog.Entry{
		ID:               outcome.RunID,
		Slot:             slot,
		RunDate:          today,
		LocationsChecked: outcome.LocationsChecked,
		GapsFound:        outcome.GapsFound,
		RemindersSent:    outcome.RemindersSent,
		RemindersFailed:  outcome.RemindersFailed,
	}
	if err := s.ledger.Append(ctx, entry); err != nil {
		s.logger.Errorf("Failed to record compliance run %s: %v", entry.ID, err)
	}

	return outcome, nil
}

// dispatch issues the pending sends one at a time, in order, never
// concurrently. The paced transports enforce the inter-send delay; a failure
// on one target never blocks the rest.
func (s *ReminderServiceImpl) dispatch(ctx context.Context, items []dispatchItem, channel reminder.Channel, appURL string) []reminder.DispatchResult {
	results := make([]reminder.DispatchResult, 0, len(items))
	for _, item := range items {
		res := s.sendOne(ctx, item, channel, appURL)
		if res.Success {
			s.logger.WithFields(logrus.Fields{
				"location": res.Location,
				"contact":  res.Target.Name,
				"channel":  res.Channel,
				"provider": res.ProviderMessageID,
			}).Info("Reminder sent.")
		} else {
			s.logger.WithFields(logrus.Fields{
				"location": res.Location,
				"contact":  res.Target.Name,
				"channel":  res.Channel,
			}).Warnf("Reminder send failed: %s", res.Error)
		}
		results = append(results, res)
	}
	return results
}

// sendOne delivers a single reminder over the chosen channel. An explicit
// channel wins; otherwise SMS is preferred when a phone number is on file.
// A missing address for the chosen channel is a failed result, not a skip.
func (s *ReminderServiceImpl) sendOne(ctx context.Context, item dispatchItem, channel reminder.Channel, appURL string) reminder.DispatchResult {
	res := reminder.DispatchResult{
		Location: item.location,
		Target:   item.target.Contact,
	}

	chosen := channel
	if chosen == reminder.ChannelAuto {
		if item.target.Contact.Phone != "" {
			chosen = reminder.ChannelSMS
		} else {
			chosen = reminder.ChannelEmail
		}
	}
	res.Channel = chosen

	switch chosen {
	case reminder.ChannelSMS:
		if item.target.Contact.Phone == "" {
			res.Error = "no phone number on file"
			return res
		}
		id, err := s.smsSender.Send(ctx, item.target.Contact.Phone, s.smsBody(item, appURL))
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Success = true
		res.ProviderMessageID = id

	case reminder.ChannelEmail:
		if item.target.Contact.Email == "" {
			res.Error = "no email address on file"
			return res
		}
		subject, text, html := s.emailBody(item, appURL)
		id, err := s.emailSender.Send(ctx, item.target.Contact.Email, subject, text, html)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Success = true
		res.ProviderMessageID = id

	default:
		res.Error = fmt.Sprintf("unsupported channel %q", chosen)
	}
	return res
}

func (s *ReminderServiceImpl) smsBody(item dispatchItem, appURL string) string {
	return fmt.Sprintf("Hi %s, reminder for %s: %s (week of %s). Submit here: %s",
		firstName(item.target.Contact.Name), item.location, item.target.Reason, item.window.Label(), appURL)
}

func (s *ReminderServiceImpl) emailBody(item dispatchItem, appURL string) (subject, text, html string) {
	subject = fmt.Sprintf("Weekly collection report needed for %s", item.location)
	text = fmt.Sprintf("Hi %s,\n\nReminder for %s: %s (week of %s).\n\nPlease log in and submit your report: %s\n\nThank you!",
		firstName(item.target.Contact.Name), item.location, item.target.Reason, item.window.Label(), appURL)
	html = fmt.Sprintf("<p>Hi %s,</p><p>Reminder for <strong>%s</strong>: %s (week of %s).</p><p><a href=%q>Submit your report</a></p><p>Thank you!</p>",
		firstName(item.target.Contact.Name), item.location, item.target.Reason, item.window.Label(), appURL)
	return subject, text, html
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
