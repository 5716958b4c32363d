package roster

import "strings"

// Matcher decides whether a raw submitter-entered location name refers to a
// canonical roster entry. It is a pluggable strategy so the reconciliation
// rule can evolve without touching report building.
type Matcher interface {
	Match(raw string, loc Location) bool
}

// FuzzyMatcher is the standard reconciliation rule. Submitters type location
// names free-hand ("East Cobb", "east cobb / roswell"), so exact comparison
// is useless. A raw name matches a location when, after normalization, either
// string contains the other, checked against the canonical name and each
// configured alias.
type FuzzyMatcher struct{}

// Match implements Matcher.
func (FuzzyMatcher) Match(raw string, loc Location) bool {
	rawKey := canonicalKey(raw)
	if rawKey == "" {
		return false
	}
	if keysOverlap(rawKey, canonicalKey(loc.Name)) {
		return true
	}
	for _, alias := range loc.Aliases {
		if keysOverlap(rawKey, canonicalKey(alias)) {
			return true
		}
	}
	return false
}

// canonicalKey lowercases, trims, and strips separators ("/", "-", and all
// whitespace) so that "East Cobb/Roswell" and "east cobb - roswell" compare
// equal.
func canonicalKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "")
	return strings.NewReplacer("/", "", "-", "").Replace(s)
}

// keysOverlap is bidirectional substring containment on canonical keys.
// This tolerates partial names in either direction ("eastcobb" inside
// "eastcobbroswell") but is not a guaranteed 1:1 mapping; callers resolve
// ambiguity by roster order.
func keysOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
