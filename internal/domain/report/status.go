// internal/domain/report/status.go
package report

import (
	"strings"
	"time"

	"collection_compliance_engine/internal/domain/roster"
	"collection_compliance_engine/internal/domain/submission"
)

// QuorumDetail exposes the two sub-flags of a quorum location's completion
// rule, so partial completion can be messaged precisely.
type QuorumDetail struct {
	RoleALabel string
	RoleBLabel string
	RoleAMet   bool
	RoleBMet   bool
}

// SubmissionStatus is one tracked location's compliance for one window.
// Built fresh per report; never stored. Location is always a roster entry.
type SubmissionStatus struct {
	Location       roster.Location
	HasSubmitted   bool
	Submitters     []string
	LastSubmission *time.Time
	Quorum         *QuorumDetail // nil for default-policy locations
}

// BucketRecords assigns each record to at most one tracked location, first
// match in roster order. Records matching no roster entry are dropped; the
// compliance report only speaks for the canonical roster.
func BucketRecords(r *roster.Roster, records []submission.Record) map[string][]submission.Record {
	buckets := make(map[string][]submission.Record, r.Len())
	for _, rec := range records {
		loc, ok := r.Match(rec.LocationRaw)
		if !ok {
			continue
		}
		buckets[loc.Name] = append(buckets[loc.Name], rec)
	}
	return buckets
}

// EvaluateLocation applies a location's completion policy to its matched
// in-window records. proxyNames are the names of contacts authorized to
// submit in place of the quorum's second role; ignored for default-policy
// locations.
func EvaluateLocation(loc roster.Location, records []submission.Record, proxyNames []string) SubmissionStatus {
	status := SubmissionStatus{
		Location:   loc,
		Submitters: distinctSubmitters(records),
	}
	if last, ok := lastCollectionDate(records); ok {
		status.LastSubmission = &last
	}

	switch loc.Policy.Kind {
	case roster.PolicyQuorum:
		detail := evaluateQuorum(loc.Policy, records, proxyNames)
		status.Quorum = &detail
		status.HasSubmitted = detail.RoleAMet && detail.RoleBMet
	default:
		status.HasSubmitted = len(records) > 0
	}
	return status
}

// evaluateQuorum checks the two-submitter rule: role A's holder must have
// submitted, and role B's holder or an authorized proxy must have submitted.
// A single record whose submitter text satisfies both role checks counts
// toward both; the rule does not demand two distinct records.
func evaluateQuorum(p roster.Policy, records []submission.Record, proxyNames []string) QuorumDetail {
	detail := QuorumDetail{
		RoleALabel: p.RoleA.Label,
		RoleBLabel: p.RoleB.Label,
	}
	for _, rec := range records {
		if !detail.RoleAMet && submitterMatches(rec.SubmitterName, p.RoleA.Submitter) {
			detail.RoleAMet = true
		}
		if !detail.RoleBMet {
			if submitterMatches(rec.SubmitterName, p.RoleB.Submitter) {
				detail.RoleBMet = true
			} else if p.RoleB.AllowProxy && anySubmitterMatch(rec.SubmitterName, proxyNames) {
				detail.RoleBMet = true
			}
		}
		if detail.RoleAMet && detail.RoleBMet {
			break
		}
	}
	return detail
}

// submitterMatches reports whether every name token of identity appears in
// the record's submitter text, case-insensitive. Submitters sign entries
// free-hand ("Lisa Hiles", "lisa h.", "Hiles, Lisa"), so token containment
// is the workable test.
func submitterMatches(submitter, identity string) bool {
	tokens := strings.Fields(strings.ToLower(identity))
	if len(tokens) == 0 {
		return false
	}
	submitter = strings.ToLower(submitter)
	for _, tok := range tokens {
		if !strings.Contains(submitter, tok) {
			return false
		}
	}
	return true
}

func anySubmitterMatch(submitter string, identities []string) bool {
	for _, id := range identities {
		if submitterMatches(submitter, id) {
			return true
		}
	}
	return false
}

// distinctSubmitters returns submitter names in first-seen order, once each.
func distinctSubmitters(records []submission.Record) []string {
	seen := make(map[string]bool, len(records))
	names := make([]string, 0, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(rec.SubmitterName)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}

func lastCollectionDate(records []submission.Record) (time.Time, bool) {
	var last time.Time
	for _, rec := range records {
		if rec.CollectionDate.After(last) {
			last = rec.CollectionDate
		}
	}
	return last, !last.IsZero()
}

// BuildWeekStatuses produces one SubmissionStatus per roster entry for a
// single window, in roster order. records must already be limited to the
// window; proxies maps a quorum role label to the proxy contact names
// resolved for it. Pure; all I/O happens in the caller.
func BuildWeekStatuses(r *roster.Roster, records []submission.Record, proxies map[string][]string) []SubmissionStatus {
	buckets := BucketRecords(r, records)
	statuses := make([]SubmissionStatus, 0, r.Len())
	for _, loc := range r.Locations() {
		var proxyNames []string
		if loc.IsQuorum() && loc.Policy.RoleB.AllowProxy {
			proxyNames = proxies[loc.Policy.RoleB.Label]
		}
		statuses = append(statuses, EvaluateLocation(loc, buckets[loc.Name], proxyNames))
	}
	return statuses
}
