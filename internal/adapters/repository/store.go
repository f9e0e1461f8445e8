// Package repository holds the current country record set.
package repository

import (
	"context"
	"time"

	"github.com/okian/countrydash/internal/domain/country"
)

// Snapshot is an immutable view of a loaded record set. Callers must not
// modify Records.
type Snapshot struct {
	Records  []country.Record
	LoadedAt time.Time // zero when nothing has been loaded
	Version  uint64    // increments on every Replace
}

// Loaded reports whether any record set has been stored.
func (s Snapshot) Loaded() bool { return s.Version > 0 }

// Store provides read/write access to the current record set.
type Store interface {
	// Replace publishes records as the new current set.
	Replace(ctx context.Context, records []country.Record) (Snapshot, error)

	// Snapshot returns the current set. Before the first Replace it is
	// empty with Version 0.
	Snapshot(ctx context.Context) Snapshot

	// Count returns the number of records in the current set.
	Count(ctx context.Context) int
}
