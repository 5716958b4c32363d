// internal/domain/report/aggregate.go
package report

import (
	"math"
	"sort"
)

const rankingSize = 3

// reliableThreshold is the minimum completion percentage for a location to
// appear in the most-reliable ranking.
const reliableThreshold = 75

// WeekReport pairs a window with the per-location statuses computed for it.
type WeekReport struct {
	Window   Window
	Statuses []SubmissionStatus
}

// LocationReliability is one location's multi-week track record.
type LocationReliability struct {
	Location   string
	Submitted  int
	Missed     int
	Percentage int // rounded completion percentage, 0 when no weeks counted
}

// OverallStats summarizes an entire multi-week report.
type OverallStats struct {
	WeeksCovered   int
	Locations      int
	TotalExpected  int
	TotalSubmitted int
	TotalMissed    int
	CompletionRate int // rounded percentage across all locations and weeks
}

// Summary carries the rankings and totals derived from a set of week reports.
type Summary struct {
	MostReliable []LocationReliability // percentage >= 75, best first, top 3
	MostMissing  []LocationReliability // missed > 0, worst first, top 3
	Locations    []LocationReliability // every location, roster order
	Overall      OverallStats
}

// MultiWeekReport is the full output of the multi-week operation. Weeks are
// ordered most recent first (offset 0 at index 0).
type MultiWeekReport struct {
	Weeks   []WeekReport
	Summary Summary
}

// Aggregate folds per-week statuses into reliability counts and rankings.
// Every location is expected to submit every week, so each (location, week)
// pair counts as exactly one submitted or one missed.
func Aggregate(weeks []WeekReport) Summary {
	counts := make(map[string]*LocationReliability)
	var order []string // roster order, from first week seen

	for _, wk := range weeks {
		for _, st := range wk.Statuses {
			name := st.Location.Name
			row, ok := counts[name]
			if !ok {
				row = &LocationReliability{Location: name}
				counts[name] = row
				order = append(order, name)
			}
			if st.HasSubmitted {
				row.Submitted++
			} else {
				row.Missed++
			}
		}
	}

	summary := Summary{
		Locations: make([]LocationReliability, 0, len(order)),
	}
	for _, name := range order {
		row := counts[name]
		row.Percentage = roundedPercent(row.Submitted, row.Submitted+row.Missed)
		summary.Locations = append(summary.Locations, *row)

		summary.Overall.TotalSubmitted += row.Submitted
		summary.Overall.TotalMissed += row.Missed
	}

	summary.Overall.WeeksCovered = len(weeks)
	summary.Overall.Locations = len(order)
	summary.Overall.TotalExpected = summary.Overall.TotalSubmitted + summary.Overall.TotalMissed
	summary.Overall.CompletionRate = roundedPercent(summary.Overall.TotalSubmitted, summary.Overall.TotalExpected)

	summary.MostReliable = rankMostReliable(summary.Locations)
	summary.MostMissing = rankMostMissing(summary.Locations)
	return summary
}

// rankMostReliable keeps locations at or above the reliability threshold,
// best percentage first, ties broken by name.
func rankMostReliable(rows []LocationReliability) []LocationReliability {
	ranked := make([]LocationReliability, 0, len(rows))
	for _, row := range rows {
		if row.Percentage >= reliableThreshold {
			ranked = append(ranked, row)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Percentage != ranked[j].Percentage {
			return ranked[i].Percentage > ranked[j].Percentage
		}
		return ranked[i].Location < ranked[j].Location
	})
	return topN(ranked, rankingSize)
}

// rankMostMissing keeps locations with at least one missed week, most missed
// first, ties broken by name.
func rankMostMissing(rows []LocationReliability) []LocationReliability {
	ranked := make([]LocationReliability, 0, len(rows))
	for _, row := range rows {
		if row.Missed > 0 {
			ranked = append(ranked, row)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Missed != ranked[j].Missed {
			return ranked[i].Missed > ranked[j].Missed
		}
		return ranked[i].Location < ranked[j].Location
	})
	return topN(ranked, rankingSize)
}

func topN(rows []LocationReliability, n int) []LocationReliability {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func roundedPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
