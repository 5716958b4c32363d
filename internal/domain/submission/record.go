package submission

import (
	"context"
	"time"
)

// Record is one weekly collection report as entered through the portal's
// collection-entry routes. The location name is free text typed by the
// submitter; it is reconciled against the tracked-location roster at report
// time. Records are read-only from the compliance engine's perspective.
type Record struct {
	ID             int64
	LocationRaw    string // submitter-entered location name, not canonical
	SubmitterName  string
	CollectionDate time.Time
}

// Store reads submission records from the portal's record store.
type Store interface {
	// ListByDateRange returns all records whose collection date falls in
	// [start, end] inclusive.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Record, error)
}
