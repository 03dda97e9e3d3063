// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the store package.
//
// Each store accepts a store.DBTX, so the same implementation runs against
// a *sql.DB or a *sql.Tx handed out by a service-managed transaction.
// Database errors are mapped to the store package's sentinel errors via
// MapError so callers never depend on driver-specific error types.
package postgres
