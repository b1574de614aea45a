package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tfkr-ae/avisha/domain"
)

// LeaseInput is the lease form as typed. Numbers and dates are parsed by ParseLease.
type LeaseInput struct {
	Site     string // Site number.
	Tenant   string // Tenant name.
	Start    string // Start date, YYYY-MM-DD.
	Duration string // Duration in days.
	Rent     string // Rent per period.
}

// Lease validates lease creation.
type Lease struct{}

var _ Validator[LeaseInput] = Lease{}

func (Lease) Entity() string { return "lease" }

func (Lease) Fields() []string { return []string{"site", "tenant", "start", "duration", "rent"} }

// Validate reports every field ParseLease rejects.
func (Lease) Validate(l Ledger, in LeaseInput) FieldErrors {
	_, fe := ParseLease(l, in)
	return fe
}

func (Lease) Empty(in LeaseInput) []string {
	var empty []string
	// Site and tenant are keys and are matched as typed; the parsed fields ignore surrounding space.
	if in.Site == "" {
		empty = append(empty, "site")
	}
	if in.Tenant == "" {
		empty = append(empty, "tenant")
	}
	for _, field := range []struct{ name, value string }{
		{"start", in.Start},
		{"duration", in.Duration},
		{"rent", in.Rent},
	} {
		if strings.TrimSpace(field.value) == "" {
			empty = append(empty, field.name)
		}
	}
	return empty
}

// ParseLease parses the form into a Lease. The lease is only meaningful when the returned
// FieldErrors is empty.
//
// A site and tenant must already exist, the start must be a calendar date, the duration a
// positive number of days and the rent a non-negative whole number. A lease whose term overlaps
// a different lease on the same site is rejected; resubmitting an identical lease is not.
func ParseLease(l Ledger, in LeaseInput) (domain.Lease, FieldErrors) {
	fe := make(FieldErrors)
	var lease domain.Lease

	lease.SiteNumber = in.Site
	if in.Site == "" {
		fe.Set("site", MsgNonZero)
	} else if !utf8.ValidString(in.Site) {
		fe.Set("site", MsgText)
	} else if !l.HasSite(in.Site) {
		fe.Set("site", MsgExists)
	}

	lease.TenantName = in.Tenant
	if in.Tenant == "" {
		fe.Set("tenant", MsgNonZero)
	} else if !utf8.ValidString(in.Tenant) {
		fe.Set("tenant", MsgText)
	} else if !l.HasTenant(in.Tenant) {
		fe.Set("tenant", MsgExists)
	}

	start := strings.TrimSpace(in.Start)
	if start == "" {
		fe.Set("start", MsgNonZero)
	} else if date, err := domain.ParseDate(start); err != nil {
		fe.Set("start", MsgDate)
	} else {
		lease.Term.Start = date
	}

	duration := strings.TrimSpace(in.Duration)
	if duration == "" {
		fe.Set("duration", MsgNonZero)
	} else if days, err := strconv.ParseUint(duration, 10, 32); err != nil || days == 0 {
		fe.Set("duration", MsgPositive)
	} else {
		lease.Term.DurationDays = uint32(days)
	}

	rent := strings.TrimSpace(in.Rent)
	if rent == "" {
		fe.Set("rent", MsgNonZero)
	} else if amount, err := strconv.ParseUint(rent, 10, 32); err != nil {
		fe.Set("rent", MsgWhole)
	} else {
		lease.Term.RentPerPeriod = uint32(amount)
	}

	if len(fe) == 0 {
		for _, existing := range l.SiteLeases(lease.SiteNumber) {
			if existing != lease && existing.Term.Overlaps(lease.Term) {
				fe.Set("site", MsgOverlap)
				break
			}
		}
	}

	return lease, fe
}

// CheckLease parses the form into a Lease, returning an *Error when any field fails.
func CheckLease(l Ledger, in LeaseInput) (domain.Lease, error) {
	lease, fe := ParseLease(l, in)
	if err := newError(Lease{}.Entity(), Lease{}.Fields(), fe); err != nil {
		return domain.Lease{}, err
	}
	return lease, nil
}
