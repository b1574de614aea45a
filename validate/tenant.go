package validate

import "unicode/utf8"

// TenantInput is the tenant registration form.
type TenantInput struct {
	Name    string
	Contact string
}

// Tenant validates tenant registrations.
type Tenant struct{}

var _ Validator[TenantInput] = Tenant{}

func (Tenant) Entity() string { return "tenant" }

func (Tenant) Fields() []string { return []string{"name", "contact"} }

// Validate requires a non-empty name that is not registered yet. Name and contact must be UTF-8.
func (Tenant) Validate(l Ledger, in TenantInput) FieldErrors {
	fe := make(FieldErrors)

	if in.Name == "" {
		fe.Set("name", MsgNonZero)
	} else if !utf8.ValidString(in.Name) {
		fe.Set("name", MsgText)
	}

	if !utf8.ValidString(in.Contact) {
		fe.Set("contact", MsgText)
	}

	if l.HasTenant(in.Name) {
		fe.Set("name", MsgUnique)
	}

	return fe
}

func (Tenant) Empty(in TenantInput) []string {
	var empty []string
	if in.Name == "" {
		empty = append(empty, "name")
	}
	if in.Contact == "" {
		empty = append(empty, "contact")
	}
	return empty
}
