package persist

import (
	"fmt"

	"github.com/tfkr-ae/avisha/domain"
)

// Field names of the records are part of the stored format and must not change.

// ledgerRecord is the persisted form of a ledger.
type ledgerRecord struct {
	Tenants map[string]tenantRecord `json:"tenants"`
	Sites   map[string]siteRecord   `json:"sites"`
	Leases  []leaseRecord           `json:"leases"`
	Errors  []string                `json:"errors"`
	Debug   bool                    `json:"debug,omitempty"`
}

type tenantRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type siteRecord struct {
	Number string     `json:"number"`
	Kind   kindRecord `json:"kind"`
}

// kindRecord stores a domain.SiteKind as a tag plus the label of the other variant.
type kindRecord struct {
	Tag   string `json:"tag"`
	Label string `json:"label,omitempty"`
}

type leaseRecord struct {
	Tenant string     `json:"tenant"`
	Site   string     `json:"site"`
	Term   termRecord `json:"term"`
}

type termRecord struct {
	Start         string `json:"start"`
	DurationDays  uint32 `json:"duration_days"`
	RentPerPeriod uint32 `json:"rent_per_period"`
}

const (
	tagCabin = "cabin"
	tagHouse = "house"
	tagFlat  = "flat"
	tagOther = "other"
)

func fromDomainKind(kind domain.SiteKind) kindRecord {
	switch kind.Tag() {
	case domain.KindHouse:
		return kindRecord{Tag: tagHouse}
	case domain.KindFlat:
		return kindRecord{Tag: tagFlat}
	case domain.KindOther:
		return kindRecord{Tag: tagOther, Label: kind.Label()}
	default:
		return kindRecord{Tag: tagCabin}
	}
}

func toDomainKind(rec kindRecord) (domain.SiteKind, error) {
	switch rec.Tag {
	case tagCabin, "":
		return domain.Cabin, nil
	case tagHouse:
		return domain.House, nil
	case tagFlat:
		return domain.Flat, nil
	case tagOther:
		return domain.OtherKind(rec.Label), nil
	default:
		return domain.SiteKind{}, fmt.Errorf("unknown site kind tag %q", rec.Tag)
	}
}

// fromDomainLedger converts a ledger snapshot to its record.
func fromDomainLedger(s domain.Snapshot) *ledgerRecord {
	rec := &ledgerRecord{
		Tenants: make(map[string]tenantRecord, len(s.Tenants)),
		Sites:   make(map[string]siteRecord, len(s.Sites)),
		Leases:  make([]leaseRecord, len(s.Leases)),
		Errors:  s.Errors,
		Debug:   s.Debug,
	}

	for _, t := range s.Tenants {
		rec.Tenants[t.Name] = tenantRecord{ID: t.ID, Name: t.Name, Contact: t.Contact}
	}

	for _, site := range s.Sites {
		rec.Sites[site.Number] = siteRecord{Number: site.Number, Kind: fromDomainKind(site.Kind)}
	}

	for i, lease := range s.Leases {
		rec.Leases[i] = leaseRecord{
			Tenant: lease.TenantName,
			Site:   lease.SiteNumber,
			Term: termRecord{
				Start:         lease.Term.Start.String(),
				DurationDays:  lease.Term.DurationDays,
				RentPerPeriod: lease.Term.RentPerPeriod,
			},
		}
	}

	return rec
}

// toDomainLedger converts a record back into a ledger.
func toDomainLedger(rec *ledgerRecord) (*domain.Ledger, error) {
	var s domain.Snapshot

	for _, t := range rec.Tenants {
		s.Tenants = append(s.Tenants, domain.NewTenant(t.Name, t.Contact))
	}

	for number, site := range rec.Sites {
		kind, err := toDomainKind(site.Kind)
		if err != nil {
			return nil, fmt.Errorf("decoding site %s : %w", number, err)
		}
		s.Sites = append(s.Sites, domain.Site{Number: site.Number, Kind: kind})
	}

	for i, lease := range rec.Leases {
		start, err := domain.ParseDate(lease.Term.Start)
		if err != nil {
			return nil, fmt.Errorf("decoding lease %d : %w", i, err)
		}
		s.Leases = append(s.Leases, domain.Lease{
			TenantName: lease.Tenant,
			SiteNumber: lease.Site,
			Term: domain.Term{
				Start:         start,
				DurationDays:  lease.Term.DurationDays,
				RentPerPeriod: lease.Term.RentPerPeriod,
			},
		})
	}

	s.Errors = rec.Errors
	s.Debug = rec.Debug

	return domain.FromSnapshot(s), nil
}
