package scheduler

import (
	"context"
	"time"

	"collection_compliance_engine/internal/app"
	"collection_compliance_engine/internal/domain/runlog"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ComplianceScheduler drives the two designated reminder slots. Each slot
// runs on its own cron spec and is guarded service-side against repeating
// on the same day.
type ComplianceScheduler struct {
	cronEngine      *cron.Cron
	reminders       app.ReminderService // Using the interface
	logger          *logrus.Logger
	cronSpecPrimary string
	cronSpecFinal   string
}

func NewComplianceScheduler(
	reminders app.ReminderService,
	logger *logrus.Logger,
	cronSpecPrimary string, // e.g., "0 10 * * 1" (10:00 AM Monday)
	cronSpecFinal string, // e.g., "0 16 * * 2" (4:00 PM Tuesday)
) *ComplianceScheduler {
	return &ComplianceScheduler{
		cronEngine:      cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		reminders:       reminders,
		logger:          logger,
		cronSpecPrimary: cronSpecPrimary,
		cronSpecFinal:   cronSpecFinal,
	}
}

func (s *ComplianceScheduler) Start() {
	s.logger.Info("Starting compliance scheduler...")

	// Primary reminder, early in the collection week
	_, err := s.cronEngine.AddFunc(s.cronSpecPrimary, func() {
		s.logger.Info("Cron job triggered for primary reminder slot.")
		s.executeComplianceCheck(runlog.SlotPrimaryReminder)
	})
	if err != nil {
		s.logger.Fatalf("Could not add primary reminder cron job: %v", err)
	}

	// Final reminder, shortly before the window closes
	_, err = s.cronEngine.AddFunc(s.cronSpecFinal, func() {
		s.logger.Info("Cron job triggered for final reminder slot.")
		s.executeComplianceCheck(runlog.SlotFinalReminder)
	})
	if err != nil {
		s.logger.Fatalf("Could not add final reminder cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Info("Compliance scheduler started with jobs.")
}

// executeComplianceCheck is a helper to handle the common logic for both slots.
func (s *ComplianceScheduler) executeComplianceCheck(slot runlog.Slot) {
	// Sequential paced dispatch can take a while with many gaps.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	outcome, err := s.reminders.RunComplianceCheck(ctx, slot, false)
	if err != nil {
		s.logger.Errorf("Error during compliance check for slot %s: %v", slot, err)
		return
	}
	if outcome.Skipped {
		s.logger.Infof("Compliance check for slot %s already ran today. Skipping.", slot)
		return
	}
	s.logger.Infof("Compliance check for slot %s finished: %d locations, %d gaps, %d sent, %d failed.",
		slot, outcome.LocationsChecked, outcome.GapsFound, outcome.RemindersSent, outcome.RemindersFailed)
}

func (s *ComplianceScheduler) Stop() {
	s.logger.Info("Stopping compliance scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Compliance scheduler gracefully stopped.")
}
