// Package memory provides in-memory implementations of the store
// interfaces. The server runs on them when no database URL is configured,
// which keeps local development and the service tests free of external
// dependencies. All stores are safe for concurrent use and hand out deep
// copies so callers never share mutable state with the store.
package memory
