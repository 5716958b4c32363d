package roster

import "fmt"

// PolicyKind selects how a location's weekly submission is judged complete.
type PolicyKind string

const (
	// PolicyDefault marks a location complete on any matched submission.
	PolicyDefault PolicyKind = "DEFAULT"
	// PolicyQuorum requires two role-specific submissions (see QuorumRole).
	PolicyQuorum PolicyKind = "QUORUM"
)

// QuorumRole names one of the two submitters a quorum location expects.
type QuorumRole struct {
	Label      string // short role name used in contact tags and reminder copy, e.g. "inventory"
	Submitter  string // identifying name tokens of the person holding the role, e.g. "Lisa Hiles"
	AllowProxy bool   // directory-resolved proxies may submit in place of this role
}

// Policy is a location's completion rule. RoleA and RoleB are only set for
// quorum locations.
type Policy struct {
	Kind  PolicyKind
	RoleA *QuorumRole
	RoleB *QuorumRole
}

// Location is one canonical entry of the tracked-location roster.
// The roster is configuration-owned and immutable at runtime; submission
// records are reconciled against it by name.
type Location struct {
	Name    string
	Aliases []string // accepted alternate spellings of the name
	Policy  Policy
}

// IsQuorum reports whether the location uses the two-submitter rule.
func (l Location) IsQuorum() bool {
	return l.Policy.Kind == PolicyQuorum
}

// Roster is the fixed set of tracked locations, in configured order.
// Order matters: free-text reconciliation buckets a record to the FIRST
// matching entry, so ambiguous names resolve deterministically.
type Roster struct {
	locations []Location
	matcher   Matcher
}

// NewRoster validates the configured locations and returns an immutable
// roster. A nil matcher falls back to the standard FuzzyMatcher.
func NewRoster(locations []Location, matcher Matcher) (*Roster, error) {
	if len(locations) == 0 {
		return nil, fmt.Errorf("roster has no locations")
	}
	if matcher == nil {
		matcher = FuzzyMatcher{}
	}

	seen := make(map[string]bool, len(locations))
	for _, loc := range locations {
		key := canonicalKey(loc.Name)
		if key == "" {
			return nil, fmt.Errorf("roster location with empty name")
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate roster location %q", loc.Name)
		}
		seen[key] = true

		if loc.Policy.Kind == "" {
			return nil, fmt.Errorf("location %q has no policy kind", loc.Name)
		}
		switch loc.Policy.Kind {
		case PolicyDefault:
			// no extra requirements
		case PolicyQuorum:
			if loc.Policy.RoleA == nil || loc.Policy.RoleB == nil {
				return nil, fmt.Errorf("quorum location %q must define both roles", loc.Name)
			}
			if loc.Policy.RoleA.Submitter == "" || loc.Policy.RoleB.Submitter == "" {
				return nil, fmt.Errorf("quorum location %q has a role without a submitter name", loc.Name)
			}
			if loc.Policy.RoleA.Label == "" || loc.Policy.RoleB.Label == "" {
				return nil, fmt.Errorf("quorum location %q has a role without a label", loc.Name)
			}
		default:
			return nil, fmt.Errorf("location %q has unknown policy kind %q", loc.Name, loc.Policy.Kind)
		}
	}

	return &Roster{locations: locations, matcher: matcher}, nil
}

// Locations returns the tracked locations in roster order.
func (r *Roster) Locations() []Location {
	return r.locations
}

// Len returns the number of tracked locations.
func (r *Roster) Len() int {
	return len(r.locations)
}

// Match buckets a raw submitter-entered location name to the first roster
// entry the matcher accepts. The boolean is false when no entry matches;
// such records are excluded from compliance computation.
func (r *Roster) Match(raw string) (Location, bool) {
	for _, loc := range r.locations {
		if r.matcher.Match(raw, loc) {
			return loc, true
		}
	}
	return Location{}, false
}

// Resolve finds a location by operator-entered name, preferring an exact
// normalized name match over fuzzy matching. Used by the reminder path where
// the caller names one specific location.
func (r *Roster) Resolve(name string) (Location, bool) {
	key := canonicalKey(name)
	if key == "" {
		return Location{}, false
	}
	for _, loc := range r.locations {
		if canonicalKey(loc.Name) == key {
			return loc, true
		}
	}
	return r.Match(name)
}
