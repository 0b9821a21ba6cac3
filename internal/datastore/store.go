// Package datastore persists parsed series into local SQLite or a remote
// Datasette instance.
package datastore

// Store defines the interface for series storage backends
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// DeleteWhere removes rows matching column = value so a series can be
	// re-imported without duplicate rows. Backends without delete support
	// treat this as a no-op.
	DeleteWhere(table string, column string, value any) error

	// BatchInsert inserts multiple records into the specified table
	BatchInsert(table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
