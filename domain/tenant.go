package domain

// Tenant represents a person renting a site.
// The tenant's name doubles as its identifier, so it is unique across the ledger.
type Tenant struct {
	ID      string // Identifier of the tenant, always equal to Name.
	Name    string // The unique name of the tenant.
	Contact string // Free-form contact details such as an email or phone number.
}

// NewTenant returns a Tenant keyed by its name.
func NewTenant(name, contact string) Tenant {
	return Tenant{
		ID:      name,
		Name:    name,
		Contact: contact,
	}
}
