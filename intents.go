package avisha

// Intent is a single command for the Controller. The set of intents is closed; each one
// performs exactly one ledger transition when dispatched.
type Intent interface {
	command() string
}

// RegisterTenant adds a tenant keyed by its name.
type RegisterTenant struct {
	Name    string
	Contact string
}

// ListSite adds a rental site. Kind is free text and is normalized before validation.
type ListSite struct {
	Number string
	Kind   string
}

// LeaseSite leases a site to a tenant. All fields are raw form input.
type LeaseSite struct {
	Site     string // Site number.
	Tenant   string // Tenant name.
	Start    string // Start date, YYYY-MM-DD.
	Duration string // Length of the lease in days.
	Rent     string // Rent per period.
}

// DismissError removes the queued error at Index.
type DismissError struct {
	Index int
}

// ToggleDebug flips the persisted debug flag.
type ToggleDebug struct{}

// Reset clears the whole ledger.
type Reset struct{}

func (RegisterTenant) command() string { return "register_tenant" }
func (ListSite) command() string       { return "list_site" }
func (LeaseSite) command() string      { return "lease_site" }
func (DismissError) command() string   { return "dismiss_error" }
func (ToggleDebug) command() string    { return "toggle_debug" }
func (Reset) command() string          { return "reset" }
