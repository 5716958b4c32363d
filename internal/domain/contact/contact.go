package contact

import (
	"context"
	"strings"
)

// Role tags recognized on directory contacts.
//
// TagPrimary marks the contact reminders go to for plain locations.
// Role tags ("role:<label>") bind a contact to a named quorum role at their
// location. Proxy tags ("proxy:<label>") let a trusted operator submit in
// place of the named role at any location.
const (
	TagPrimary  = "primary"
	rolePrefix  = "role:"
	proxyPrefix = "proxy:"
)

// RoleTag builds the tag binding a contact to a quorum role.
func RoleTag(label string) string {
	return rolePrefix + strings.ToLower(label)
}

// ProxyTag builds the tag authorizing a contact to stand in for a role.
func ProxyTag(label string) string {
	return proxyPrefix + strings.ToLower(label)
}

// Contact is a person attached to a tracked location in the external
// directory. Owned elsewhere; read-only here. Email and Phone are empty when
// not on file.
type Contact struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	RoleTags []string
}

// HasTag reports whether the contact carries the given tag (case-insensitive).
func (c Contact) HasTag(tag string) bool {
	for _, t := range c.RoleTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// IsPrimary reports whether the contact is the location's primary contact.
func (c Contact) IsPrimary() bool {
	return c.HasTag(TagPrimary)
}

// HoldsRole reports whether the contact holds the named quorum role.
func (c Contact) HoldsRole(label string) bool {
	return c.HasTag(RoleTag(label))
}

// CanProxyFor reports whether the contact may submit in place of the named
// quorum role.
func (c Contact) CanProxyFor(label string) bool {
	return c.HasTag(ProxyTag(label))
}

// Reachable reports whether at least one delivery channel is on file.
func (c Contact) Reachable() bool {
	return c.Email != "" || c.Phone != ""
}

// Directory looks up contacts in the external contact directory.
type Directory interface {
	// ListByLocation returns the contacts attached to a tracked location,
	// in directory order.
	ListByLocation(ctx context.Context, locationName string) ([]Contact, error)
	// ListProxies returns every contact authorized to submit in place of
	// the named quorum role, regardless of location.
	ListProxies(ctx context.Context, roleLabel string) ([]Contact, error)
}
