// Package domain defines the core business logic and data structures of the Avisha ledger.
// It contains the primary domain models, such as Tenant, Site and Lease, the Ledger aggregate
// that owns them, and the repository interface that defines the contract for persistence.
//
// The Ledger enforces the structural invariants of the model (unique keys, leases that only
// reference known tenants and sites). User-facing validation with field-level messages lives
// in the validate package, and the domain package remains independent of the storage technology.
package domain
