package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxRecords rejects record sets larger than n.
func WithMaxRecords(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxRecords = n
		}
	}
}

// WithClock sets the time source used for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
