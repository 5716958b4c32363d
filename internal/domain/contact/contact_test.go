package contact

import "testing"

func TestTagBuilders(t *testing.T) {
	if got, want := RoleTag("Inventory"), "role:inventory"; got != want {
		t.Errorf("RoleTag = %q, want %q", got, want)
	}
	if got, want := ProxyTag("Inventory"), "proxy:inventory"; got != want {
		t.Errorf("ProxyTag = %q, want %q", got, want)
	}
}

func TestContact_TagChecks(t *testing.T) {
	c := Contact{
		Name:     "Lisa Hiles",
		Phone:    "+14045550100",
		RoleTags: []string{"Primary", "role:collections"},
	}

	if !c.IsPrimary() {
		t.Error("tag match should be case-insensitive")
	}
	if !c.HoldsRole("Collections") {
		t.Error("role lookup should normalize the label")
	}
	if c.HoldsRole("inventory") {
		t.Error("unexpected role held")
	}
	if c.CanProxyFor("collections") {
		t.Error("role tag must not imply proxy authority")
	}
}

func TestContact_Reachable(t *testing.T) {
	if (Contact{Name: "No Channels"}).Reachable() {
		t.Error("contact without email or phone should be unreachable")
	}
	if !(Contact{Email: "a@b.org"}).Reachable() {
		t.Error("email alone should be reachable")
	}
	if !(Contact{Phone: "+14045550100"}).Reachable() {
		t.Error("phone alone should be reachable")
	}
}
