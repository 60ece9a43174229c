// Package store provides a SQLite-backed catalog of compiled manifests.
//
// The catalog is content-addressed: each row is keyed by the manifest's
// canonical hash (ir.ManifestHash), so saving the same compiled manifest
// twice is a no-op and two rows with the same hash cannot disagree about
// their IR. The stored payload is the RFC 8785 canonical JSON, byte
// identical to what was hashed.
//
// The database is configured with WAL mode for concurrent reads, NORMAL
// synchronous mode, a 5-second busy timeout, and foreign key enforcement.
package store
