package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrEmptyKey is returned when a tenant name or a site number is empty.
	ErrEmptyKey = errors.New("key must not be empty")
	// ErrTenantExists is returned when a tenant with the same name is already registered.
	ErrTenantExists = errors.New("tenant already registered")
	// ErrSiteExists is returned when a site with the same number is already listed.
	ErrSiteExists = errors.New("site already listed")
	// ErrUnknownTenant is returned when a lease references a tenant that is not registered.
	ErrUnknownTenant = errors.New("tenant not registered")
	// ErrUnknownSite is returned when a lease references a site that is not listed.
	ErrUnknownSite = errors.New("site not listed")
	// ErrErrorIndex is returned when dismissing an error index that is not in the queue.
	ErrErrorIndex = errors.New("error index out of range")
)

// Ledger is the aggregate root holding every tenant, site and lease, plus the queue of
// user-visible error messages. It is not safe for concurrent use; callers serialize access.
type Ledger struct {
	tenants map[string]Tenant
	sites   map[string]Site
	leases  map[Lease]struct{}
	errors  []string
	debug   bool
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		tenants: make(map[string]Tenant),
		sites:   make(map[string]Site),
		leases:  make(map[Lease]struct{}),
		errors:  make([]string, 0),
	}
}

// Tenant returns the tenant registered under name.
func (l *Ledger) Tenant(name string) (Tenant, bool) {
	t, ok := l.tenants[name]
	return t, ok
}

// HasTenant reports whether a tenant is registered under name.
func (l *Ledger) HasTenant(name string) bool {
	_, ok := l.tenants[name]
	return ok
}

// Site returns the site listed under number.
func (l *Ledger) Site(number string) (Site, bool) {
	s, ok := l.sites[number]
	return s, ok
}

// HasSite reports whether a site is listed under number.
func (l *Ledger) HasSite(number string) bool {
	_, ok := l.sites[number]
	return ok
}

// SiteLeases returns the leases on the given site, ordered by tenant and start date.
func (l *Ledger) SiteLeases(number string) []Lease {
	leases := make([]Lease, 0)
	for lease := range l.leases {
		if lease.SiteNumber == number {
			leases = append(leases, lease)
		}
	}
	slices.SortFunc(leases, compareLeases)
	return leases
}

// HasLease reports whether the exact lease is present.
func (l *Ledger) HasLease(lease Lease) bool {
	_, ok := l.leases[lease]
	return ok
}

// Errors returns a copy of the error queue in insertion order.
func (l *Ledger) Errors() []string {
	return slices.Clone(l.errors)
}

// Debug reports whether the debug flag is set.
func (l *Ledger) Debug() bool {
	return l.debug
}

// Counts returns the number of tenants, sites and leases.
func (l *Ledger) Counts() (tenants, sites, leases int) {
	return len(l.tenants), len(l.sites), len(l.leases)
}

// InsertTenant adds a tenant keyed by its name.
func (l *Ledger) InsertTenant(t Tenant) error {
	if t.Name == "" {
		return fmt.Errorf("inserting tenant : %w", ErrEmptyKey)
	}
	if l.HasTenant(t.Name) {
		return fmt.Errorf("inserting tenant %s : %w", t.Name, ErrTenantExists)
	}
	t.ID = t.Name
	l.tenants[t.Name] = t
	return nil
}

// InsertSite adds a site keyed by its number.
func (l *Ledger) InsertSite(s Site) error {
	if s.Number == "" {
		return fmt.Errorf("inserting site : %w", ErrEmptyKey)
	}
	if l.HasSite(s.Number) {
		return fmt.Errorf("inserting site %s : %w", s.Number, ErrSiteExists)
	}
	l.sites[s.Number] = s
	return nil
}

// InsertLease adds a lease between a registered tenant and a listed site.
// It returns false without error when an identical lease is already present.
func (l *Ledger) InsertLease(lease Lease) (bool, error) {
	if !l.HasTenant(lease.TenantName) {
		return false, fmt.Errorf("inserting lease for tenant %s : %w", lease.TenantName, ErrUnknownTenant)
	}
	if !l.HasSite(lease.SiteNumber) {
		return false, fmt.Errorf("inserting lease on site %s : %w", lease.SiteNumber, ErrUnknownSite)
	}
	if l.HasLease(lease) {
		return false, nil
	}
	l.leases[lease] = struct{}{}
	return true, nil
}

// PushError appends a message to the back of the error queue.
func (l *Ledger) PushError(message string) {
	l.errors = append(l.errors, message)
}

// DismissError removes the message at index, keeping the order of the others.
// An index outside the queue leaves the ledger untouched.
func (l *Ledger) DismissError(index int) error {
	if index < 0 || index >= len(l.errors) {
		return fmt.Errorf("dismissing error %d of %d : %w", index, len(l.errors), ErrErrorIndex)
	}
	l.errors = slices.Delete(l.errors, index, index+1)
	return nil
}

// SetDebug sets the debug flag.
func (l *Ledger) SetDebug(debug bool) {
	l.debug = debug
}

// Reset empties the ledger, including the error queue and the debug flag.
func (l *Ledger) Reset() {
	*l = *NewLedger()
}

// Snapshot returns a deep copy of the ledger for rendering or persistence.
func (l *Ledger) Snapshot() Snapshot {
	s := Snapshot{
		Tenants: slices.Collect(maps.Values(l.tenants)),
		Sites:   slices.Collect(maps.Values(l.sites)),
		Leases:  slices.Collect(maps.Keys(l.leases)),
		Errors:  slices.Clone(l.errors),
		Debug:   l.debug,
	}
	s.normalize()
	return s
}

// FromSnapshot rebuilds a ledger from a snapshot. It does not check referential integrity so that
// stored state written under looser rules still loads; duplicate keys keep the last entry.
func FromSnapshot(s Snapshot) *Ledger {
	l := NewLedger()
	for _, t := range s.Tenants {
		t.ID = t.Name
		l.tenants[t.Name] = t
	}
	for _, site := range s.Sites {
		l.sites[site.Number] = site
	}
	for _, lease := range s.Leases {
		l.leases[lease] = struct{}{}
	}
	l.errors = append(l.errors, s.Errors...)
	l.debug = s.Debug
	return l
}
