package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/countrydash/internal/domain/country"
	"github.com/okian/countrydash/pkg/metrics"
)

const defaultMaxRecords = 100_000

// MemoryStore keeps the current record set behind an atomic pointer.
// Readers never take a lock; writers serialise on mu so versions are
// strictly increasing.
type MemoryStore struct {
	mu         sync.Mutex
	snapshot   atomic.Pointer[Snapshot]
	maxRecords int
	now        func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		maxRecords: defaultMaxRecords,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&Snapshot{Records: []country.Record{}})
	return s
}

// Replace publishes a copy of records as the current set.
func (s *MemoryStore) Replace(_ context.Context, records []country.Record) (Snapshot, error) {
	if len(records) > s.maxRecords {
		return Snapshot{}, fmt.Errorf("%w: %d > %d", ErrTooManyRecords, len(records), s.maxRecords)
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot.Load()
	next := &Snapshot{
		Records:  slices.Clone(records),
		LoadedAt: s.now(),
		Version:  prev.Version + 1,
	}
	if next.Records == nil {
		next.Records = []country.Record{}
	}
	s.snapshot.Store(next)

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordRepositorySnapshotRebuildDuration(ms)
	metrics.UpdateRepositorySnapshotLastDurationMs(ms)
	metrics.UpdateRepositorySnapshotLastUnix(float64(next.LoadedAt.Unix()))
	metrics.IncrementRepositorySnapshotCount()
	metrics.UpdateRepositoryRecordsTotal(len(next.Records))
	return *next, nil
}

// Snapshot returns the current set.
func (s *MemoryStore) Snapshot(_ context.Context) Snapshot {
	start := time.Now()
	snap := *s.snapshot.Load()
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	return snap
}

// Count returns the number of records in the current set.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.snapshot.Load().Records)
}
