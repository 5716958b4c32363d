// internal/domain/reminder/target.go
package reminder

import (
	"fmt"

	"collection_compliance_engine/internal/domain/contact"
	"collection_compliance_engine/internal/domain/report"
	"collection_compliance_engine/internal/domain/roster"
)

// Target is one contact who still owes a submission for the current window.
type Target struct {
	Contact contact.Contact
	Role    string // owed quorum role label, empty for default-policy locations
	Reason  string // human phrase used in the reminder body
}

// SelectTargets computes the minimal set of contacts to remind for one
// location's current status. Parties who already complied are never
// re-notified: a compliant location yields no targets, and a half-complete
// quorum location targets only the missing role.
func SelectTargets(status report.SubmissionStatus, contacts []contact.Contact) []Target {
	if status.HasSubmitted {
		return nil
	}

	if status.Location.IsQuorum() && status.Quorum != nil {
		return selectQuorumTargets(status.Location, *status.Quorum, contacts)
	}

	target, ok := primaryContact(contacts)
	if !ok {
		return nil
	}
	return []Target{{
		Contact: target,
		Reason:  "no collection report has been received this week",
	}}
}

// selectQuorumTargets applies the four-case quorum table: both roles owed,
// only role A owed, only role B owed, or nothing owed.
func selectQuorumTargets(loc roster.Location, detail report.QuorumDetail, contacts []contact.Contact) []Target {
	var targets []Target
	if !detail.RoleAMet {
		if t, ok := roleTarget(detail.RoleALabel, contacts); ok {
			targets = append(targets, t)
		}
	}
	if !detail.RoleBMet {
		if t, ok := roleTarget(detail.RoleBLabel, contacts); ok {
			targets = append(targets, t)
		}
	}
	return dedupeTargets(targets)
}

// roleTarget finds the contact holding a quorum role. A role nobody is
// tagged for falls back to the location primary so the gap still surfaces
// somewhere.
func roleTarget(label string, contacts []contact.Contact) (Target, bool) {
	for _, c := range contacts {
		if c.HoldsRole(label) {
			return Target{
				Contact: c,
				Role:    label,
				Reason:  fmt.Sprintf("the %s report is still outstanding this week", label),
			}, true
		}
	}
	if c, ok := primaryContact(contacts); ok {
		return Target{
			Contact: c,
			Role:    label,
			Reason:  fmt.Sprintf("the %s report is still outstanding this week", label),
		}, true
	}
	return Target{}, false
}

// primaryContact picks the primary-tagged contact when it is reachable,
// otherwise the first contact with a usable channel.
func primaryContact(contacts []contact.Contact) (contact.Contact, bool) {
	for _, c := range contacts {
		if c.IsPrimary() && c.Reachable() {
			return c, true
		}
	}
	for _, c := range contacts {
		if c.Reachable() {
			return c, true
		}
	}
	return contact.Contact{}, false
}

// dedupeTargets collapses the case where both owed roles resolve to the same
// person (for example both falling back to the primary). The first target's
// reason wins.
func dedupeTargets(targets []Target) []Target {
	if len(targets) < 2 {
		return targets
	}
	seen := make(map[string]bool, len(targets))
	out := targets[:0]
	for _, t := range targets {
		key := contactKey(t.Contact)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func contactKey(c contact.Contact) string {
	if c.ID != 0 {
		return fmt.Sprintf("#%d", c.ID)
	}
	return c.Name
}
