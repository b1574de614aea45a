package validate

import (
	"slices"
	"strings"

	"github.com/tfkr-ae/avisha/domain"
)

// Messages reported by the validators.
const (
	MsgNonZero  = "must be non-zero"
	MsgUnique   = "must be unique"
	MsgExists   = "must exist"
	MsgDate     = "must be a date (YYYY-MM-DD)"
	MsgPositive = "must be a positive whole number"
	MsgWhole    = "must be a whole number"
	MsgOverlap  = "must not already be leased for this term"
	MsgText     = "must be valid text"
)

// Ledger is the read access validators need. *domain.Ledger implements it.
type Ledger interface {
	HasTenant(name string) bool
	HasSite(number string) bool
	SiteLeases(number string) []domain.Lease
}

var _ Ledger = (*domain.Ledger)(nil)

// Validator checks one kind of input against the ledger.
type Validator[T any] interface {
	// Entity names the kind of record being validated, e.g. "tenant".
	Entity() string
	// Fields lists the form fields in display order.
	Fields() []string
	// Validate returns the failing fields, or an empty FieldErrors when the input is valid.
	Validate(l Ledger, in T) FieldErrors
	// Empty lists the fields of in that currently hold no value.
	Empty(in T) []string
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Set records msg for field, replacing any earlier message.
func (fe FieldErrors) Set(field, msg string) {
	fe[field] = msg
}

// Get returns the message for field, or an empty string.
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// Has reports whether field failed validation.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Error is a failed validation of one entity.
type Error struct {
	Entity string      // Kind of record, e.g. "tenant".
	Fields FieldErrors // Failing fields and their messages.
	order  []string
}

// Messages renders one "<entity> <field> <message>" line per failing field in display order.
func (e *Error) Messages() []string {
	messages := make([]string, 0, len(e.Fields))
	seen := make(map[string]bool, len(e.Fields))
	for _, field := range e.order {
		if msg, ok := e.Fields[field]; ok {
			messages = append(messages, e.Entity+" "+field+" "+msg)
			seen[field] = true
		}
	}

	// Fields a validator did not declare still get reported, in name order.
	var rest []string
	for field := range e.Fields {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	slices.Sort(rest)
	for _, field := range rest {
		messages = append(messages, e.Entity+" "+field+" "+e.Fields[field])
	}
	return messages
}

func (e *Error) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Check runs strict validation and returns an *Error when any field fails.
func Check[T any](v Validator[T], l Ledger, in T) error {
	return newError(v.Entity(), v.Fields(), v.Validate(l, in))
}

// newError returns nil for an empty fe, and an *Error reporting fe in the given field order otherwise.
func newError(entity string, order []string, fe FieldErrors) error {
	if len(fe) == 0 {
		return nil
	}
	return &Error{Entity: entity, Fields: fe, order: order}
}

// Edit runs validation for a form that is still being filled in. A "must be non-zero" error is
// dropped for each field named in editing that is currently empty; every other error is kept.
func Edit[T any](v Validator[T], l Ledger, in T, editing ...string) FieldErrors {
	fe := v.Validate(l, in)
	empty := v.Empty(in)
	for _, field := range editing {
		if slices.Contains(empty, field) && fe.Get(field) == MsgNonZero {
			delete(fe, field)
		}
	}
	return fe
}
