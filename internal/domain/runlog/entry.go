// internal/domain/runlog/entry.go
package runlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Slot names one of the designated compliance-check run times. The scheduled
// slots are guarded against double-firing per day; manual runs are recorded
// but never guarded.
type Slot string

const (
	SlotPrimaryReminder Slot = "PRIMARY_REMINDER"
	SlotFinalReminder   Slot = "FINAL_REMINDER"
	SlotManual          Slot = "MANUAL"
)

// Entry is one recorded compliance-check run. The (slot, run date) pair is
// what the scheduler consults before dispatching, so a restart inside a slot
// window cannot re-send the same reminders.
type Entry struct {
	ID               uuid.UUID
	Slot             Slot
	RunDate          time.Time // date only, local midnight
	LocationsChecked int
	GapsFound        int
	RemindersSent    int
	RemindersFailed  int
	CreatedAt        time.Time
}

// Ledger persists compliance-check runs.
type Ledger interface {
	// Find returns the most recent entry recorded for the slot on the given
	// date, or the repository's not-found error when none exists.
	Find(ctx context.Context, slot Slot, runDate time.Time) (*Entry, error)
	// Append records a completed run.
	Append(ctx context.Context, entry *Entry) error
}
