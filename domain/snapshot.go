package domain

import (
	"cmp"
	"slices"
)

// Snapshot is a read-only copy of the ledger. Mutating a snapshot never affects the ledger
// it was taken from.
type Snapshot struct {
	Tenants []Tenant // Tenants ordered by name.
	Sites   []Site   // Sites ordered by number.
	Leases  []Lease  // Leases ordered by site, tenant and term.
	Errors  []string // Pending error messages, oldest first.
	Debug   bool     // Whether the debug view is enabled.
}

func (s *Snapshot) normalize() {
	if s.Tenants == nil {
		s.Tenants = make([]Tenant, 0)
	}
	if s.Sites == nil {
		s.Sites = make([]Site, 0)
	}
	if s.Leases == nil {
		s.Leases = make([]Lease, 0)
	}
	if s.Errors == nil {
		s.Errors = make([]string, 0)
	}
	slices.SortFunc(s.Tenants, func(a, b Tenant) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortFunc(s.Sites, func(a, b Site) int { return cmp.Compare(a.Number, b.Number) })
	slices.SortFunc(s.Leases, compareLeases)
}

// Tenant looks up a tenant by name.
func (s Snapshot) Tenant(name string) (Tenant, bool) {
	i, ok := slices.BinarySearchFunc(s.Tenants, name, func(t Tenant, name string) int {
		return cmp.Compare(t.Name, name)
	})
	if !ok {
		return Tenant{}, false
	}
	return s.Tenants[i], true
}

// Site looks up a site by number.
func (s Snapshot) Site(number string) (Site, bool) {
	i, ok := slices.BinarySearchFunc(s.Sites, number, func(site Site, number string) int {
		return cmp.Compare(site.Number, number)
	})
	if !ok {
		return Site{}, false
	}
	return s.Sites[i], true
}
