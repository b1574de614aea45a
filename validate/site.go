package validate

import (
	"unicode/utf8"

	"github.com/tfkr-ae/avisha/domain"
)

// SiteInput is the site listing form. Kind is already normalized.
type SiteInput struct {
	Number string
	Kind   domain.SiteKind
}

// Site validates site listings.
type Site struct{}

var _ Validator[SiteInput] = Site{}

func (Site) Entity() string { return "site" }

func (Site) Fields() []string { return []string{"number", "kind"} }

// Validate requires a non-empty, unlisted number and a label for Other kinds, all valid UTF-8.
func (Site) Validate(l Ledger, in SiteInput) FieldErrors {
	fe := make(FieldErrors)

	if in.Number == "" {
		fe.Set("number", MsgNonZero)
	} else if !utf8.ValidString(in.Number) {
		fe.Set("number", MsgText)
	}

	if l.HasSite(in.Number) {
		fe.Set("number", MsgUnique)
	}

	if in.Kind.IsOther() {
		if in.Kind.Label() == "" {
			fe.Set("kind", MsgNonZero)
		} else if !utf8.ValidString(in.Kind.Label()) {
			fe.Set("kind", MsgText)
		}
	}

	return fe
}

func (Site) Empty(in SiteInput) []string {
	var empty []string
	if in.Number == "" {
		empty = append(empty, "number")
	}
	if in.Kind.IsOther() && in.Kind.Label() == "" {
		empty = append(empty, "kind")
	}
	return empty
}
