// Package persist stores and restores the whole ledger as a single blob under one fixed key.
//
// The Gateway converts the ledger into stable record structs, encodes them with a Codec and hands
// the bytes to a domain.BlobRepository (the sqlite slot in package db, or MemoryRepository).
// Restoring never fails: a missing or unreadable blob yields an empty ledger.
package persist
