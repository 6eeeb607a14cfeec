// Package database provides SQLite-based snapshot storage for taskseries.
//
// A snapshot is a Mapping saved together with its source label, creation
// time and a SHA3-256 digest of its entries. Entries keep their positions so
// a loaded snapshot iterates in the order it was saved.
//
// The store uses modernc.org/sqlite, a CGO-free driver; the database is a
// single file (taskseries.db) inside the data directory.
package database
