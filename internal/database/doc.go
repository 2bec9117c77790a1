// Package database provides SQLite-based storage for rmcatalog.
//
// The SnapshotDB is a write-mostly log of rendered views saved with
// `browse --save`. Each row keeps a few columns for listing plus the full
// snapshot as JSON so `history <id>` can render it again with any report
// writer.
//
// The driver is modernc.org/sqlite, so the binary stays CGO-free and the
// database is a single file under the XDG data directory.
package database
