// internal/domain/report/window.go
package report

import (
	"fmt"
	"time"
)

// Window is one collection week: Wednesday 00:00:00 through the following
// Tuesday 23:59:59.999. Windows are derived values, recomputed per report and
// never persisted. Callers compute a Window once per report and thread the
// same value through; re-deriving mid-report could straddle a week boundary.
type Window struct {
	OffsetWeeks int
	Start       time.Time
	End         time.Time
}

const daysPerWeek = 7

// CollectionWeek returns the reporting window weeksAgo weeks before now.
// Offset 0 is the week containing now. The cadence is anchored to Wednesday
// regardless of the weekday now falls on: for Wednesday through Saturday the
// window started earlier the same week, for Sunday through Tuesday it started
// the previous Wednesday.
func CollectionWeek(now time.Time, weeksAgo int) Window {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dayOfWeek := int(today.Weekday()) // 0 = Sunday
	var daysSinceWednesday int
	if dayOfWeek >= 3 {
		daysSinceWednesday = dayOfWeek - 3
	} else {
		daysSinceWednesday = dayOfWeek + 4
	}

	start := today.AddDate(0, 0, -daysSinceWednesday-daysPerWeek*weeksAgo)
	end := start.AddDate(0, 0, 6).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)

	return Window{OffsetWeeks: weeksAgo, Start: start, End: end}
}

// Contains reports whether t falls inside the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label renders the window for reminder messages and report output,
// e.g. "Mar 6 - Mar 12, 2024".
func (w Window) Label() string {
	return fmt.Sprintf("%s - %s", w.Start.Format("Jan 2"), w.End.Format("Jan 2, 2006"))
}
