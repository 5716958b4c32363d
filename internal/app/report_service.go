package app

import (
	"context"
	"fmt"
	"time"

	"collection_compliance_engine/internal/domain/contact"
	"collection_compliance_engine/internal/domain/report"
	"collection_compliance_engine/internal/domain/roster"
	"collection_compliance_engine/internal/domain/submission"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for report operations
var ErrUnknownLocation = fmt.Errorf("tracked location not found")

// ReportService builds weekly compliance reports over the tracked-location
// roster. All computation is synchronous; the only I/O is the submission
// read and the proxy lookup per report.
type ReportService struct {
	roster    *roster.Roster
	store     submission.Store
	directory contact.Directory
	logger    *logrus.Logger
}

func NewReportService(r *roster.Roster, store submission.Store, directory contact.Directory, logger *logrus.Logger) *ReportService {
	return &ReportService{
		roster:    r,
		store:     store,
		directory: directory,
		logger:    logger,
	}
}

// WeeklyStatus returns one status per tracked location for the window
// weeksAgo weeks back. Offset 0 is the current week.
func (s *ReportService) WeeklyStatus(ctx context.Context, weeksAgo int) ([]report.SubmissionStatus, error) {
	wk, err := s.WeeklyReport(ctx, weeksAgo)
	if err != nil {
		return nil, err
	}
	return wk.Statuses, nil
}

// WeeklyReport builds the full report (window plus statuses) for one week.
func (s *ReportService) WeeklyReport(ctx context.Context, weeksAgo int) (report.WeekReport, error) {
	if weeksAgo < 0 {
		return report.WeekReport{}, fmt.Errorf("weeksAgo must not be negative, got %d", weeksAgo)
	}
	return s.buildWeek(ctx, report.CollectionWeek(time.Now(), weeksAgo))
}

// MultiWeekReport builds reports for the numberOfWeeks most recent windows
// and aggregates them into reliability rankings. Weeks come back most recent
// first. Store reads are issued sequentially, one per week.
func (s *ReportService) MultiWeekReport(ctx context.Context, numberOfWeeks int) (report.MultiWeekReport, error) {
	if numberOfWeeks < 1 {
		return report.MultiWeekReport{}, fmt.Errorf("number of weeks must be at least 1, got %d", numberOfWeeks)
	}

	// One clock read for the whole report so every window derives from the
	// same moment.
	now := time.Now()

	weeks := make([]report.WeekReport, 0, numberOfWeeks)
	for i := 0; i < numberOfWeeks; i++ {
		wk, err := s.buildWeek(ctx, report.CollectionWeek(now, i))
		if err != nil {
			return report.MultiWeekReport{}, err
		}
		weeks = append(weeks, wk)
	}

	// Offset 0 is built first, so weeks are already ordered most recent
	// first.
	return report.MultiWeekReport{
		Weeks:   weeks,
		Summary: report.Aggregate(weeks),
	}, nil
}

// LocationStatus resolves one tracked location by operator-entered name and
// returns its status for the given week, along with the window it was
// evaluated against. The whole roster is still evaluated underneath so that
// record bucketing cannot differ from the weekly report.
func (s *ReportService) LocationStatus(ctx context.Context, locationName string, weeksAgo int) (report.SubmissionStatus, report.Window, error) {
	loc, ok := s.roster.Resolve(locationName)
	if !ok {
		return report.SubmissionStatus{}, report.Window{}, ErrUnknownLocation
	}

	wk, err := s.WeeklyReport(ctx, weeksAgo)
	if err != nil {
		return report.SubmissionStatus{}, report.Window{}, err
	}
	for _, st := range wk.Statuses {
		if st.Location.Name == loc.Name {
			return st, wk.Window, nil
		}
	}
	// Unreachable while statuses cover the whole roster.
	return report.SubmissionStatus{}, report.Window{}, ErrUnknownLocation
}

// buildWeek fetches the window's records and evaluates every roster entry.
// A store or directory failure aborts the report; partial reports are never
// returned.
func (s *ReportService) buildWeek(ctx context.Context, window report.Window) (report.WeekReport, error) {
	records, err := s.store.ListByDateRange(ctx, window.Start, window.End)
	if err != nil {
		return report.WeekReport{}, fmt.Errorf("failed to fetch submissions for window %s: %w", window.Label(), err)
	}

	proxies, err := s.resolveProxies(ctx)
	if err != nil {
		return report.WeekReport{}, err
	}

	statuses := report.BuildWeekStatuses(s.roster, records, proxies)

	s.logger.WithFields(logrus.Fields{
		"window":  window.Label(),
		"records": len(records),
	}).Debug("Built weekly compliance report.")

	return report.WeekReport{Window: window, Statuses: statuses}, nil
}

// resolveProxies looks up proxy contact names once per quorum role label
// used in the roster, so each report makes at most one directory call per
// role.
func (s *ReportService) resolveProxies(ctx context.Context) (map[string][]string, error) {
	var proxies map[string][]string
	for _, loc := range s.roster.Locations() {
		if !loc.IsQuorum() || !loc.Policy.RoleB.AllowProxy {
			continue
		}
		label := loc.Policy.RoleB.Label
		if _, done := proxies[label]; done {
			continue
		}
		contacts, err := s.directory.ListProxies(ctx, label)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve proxies for role %s: %w", label, err)
		}
		names := make([]string, 0, len(contacts))
		for _, c := range contacts {
			names = append(names, c.Name)
		}
		if proxies == nil {
			proxies = make(map[string][]string)
		}
		proxies[label] = names
	}
	return proxies, nil
}
