package domain

import "strings"

// KindTag identifies the variant held by a SiteKind.
type KindTag int

const (
	KindCabin KindTag = iota
	KindHouse
	KindFlat
	KindOther
)

// SiteKind is the closed set of site variants. The Other variant carries a free-form label.
// The zero value is Cabin.
type SiteKind struct {
	tag   KindTag
	label string
}

var (
	Cabin = SiteKind{tag: KindCabin}
	House = SiteKind{tag: KindHouse}
	Flat  = SiteKind{tag: KindFlat}
)

// OtherKind returns the Other variant with the given label.
// The label is kept verbatim, an empty label is representable and rejected by validation.
func OtherKind(label string) SiteKind {
	return SiteKind{tag: KindOther, label: label}
}

// Tag returns the variant of the kind.
func (k SiteKind) Tag() KindTag {
	return k.tag
}

// Label returns the label of an Other kind and an empty string for every other variant.
func (k SiteKind) Label() string {
	if k.tag != KindOther {
		return ""
	}
	return k.label
}

// IsOther reports whether the kind is the Other variant.
func (k SiteKind) IsOther() bool {
	return k.tag == KindOther
}

// String renders the kind for display. Other labels are returned as typed.
func (k SiteKind) String() string {
	switch k.tag {
	case KindHouse:
		return "House"
	case KindFlat:
		return "Flat"
	case KindOther:
		return k.label
	default:
		return "Cabin"
	}
}

// NormalizeKind maps free text from a selector or an override box to a SiteKind.
// Matching is case-insensitive and ignores surrounding whitespace; empty text is a Cabin.
func NormalizeKind(text string) SiteKind {
	trimmed := strings.TrimSpace(text)
	switch strings.ToLower(trimmed) {
	case "", "cabin":
		return Cabin
	case "house":
		return House
	case "flat":
		return Flat
	default:
		return OtherKind(trimmed)
	}
}

// Site represents a rentable unit identified by its number.
type Site struct {
	Number string   // The unique site number, e.g. "12" or "B4".
	Kind   SiteKind // What kind of dwelling the site is.
}
