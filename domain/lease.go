package domain

import "cmp"

// Term is the period and price of a lease.
type Term struct {
	Start         Date   // First day of the lease.
	DurationDays  uint32 // Length of the lease in days.
	RentPerPeriod uint32 // Rent charged per rental period (fortnightly).
}

// End returns the first day after the term.
func (t Term) End() Date {
	return t.Start.AddDays(int(t.DurationDays))
}

// Overlaps reports whether both terms share at least one day.
// A term with zero duration covers no days and overlaps nothing.
func (t Term) Overlaps(other Term) bool {
	if t.DurationDays == 0 || other.DurationDays == 0 {
		return false
	}
	return t.Start.Before(other.End()) && other.Start.Before(t.End())
}

// Lease binds a tenant to a site for a term.
// Leases are values: two leases with identical fields are the same lease.
type Lease struct {
	TenantName string // Name of the leasing tenant.
	SiteNumber string // Number of the leased site.
	Term       Term   // The lease term.
}

// compareLeases orders leases by site, tenant, start, duration and rent.
func compareLeases(a, b Lease) int {
	if c := cmp.Compare(a.SiteNumber, b.SiteNumber); c != 0 {
		return c
	}
	if c := cmp.Compare(a.TenantName, b.TenantName); c != 0 {
		return c
	}
	if c := a.Term.Start.Time().Compare(b.Term.Start.Time()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Term.DurationDays, b.Term.DurationDays); c != 0 {
		return c
	}
	return cmp.Compare(a.Term.RentPerPeriod, b.Term.RentPerPeriod)
}
