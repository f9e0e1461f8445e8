package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/countrydash/internal/domain/country"
)

func named(names ...string) []country.Record {
	out := make([]country.Record, len(names))
	for i, n := range names {
		out[i] = country.Record{Name: country.Name{Common: n}}
	}
	return out
}

func TestMemoryStore_Empty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := store.Snapshot(ctx)
	if snap.Loaded() {
		t.Error("expected empty store to report not loaded")
	}
	if snap.Records == nil || len(snap.Records) != 0 {
		t.Errorf("expected empty non-nil records, got %v", snap.Records)
	}
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}

func TestMemoryStore_Replace(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(WithClock(func() time.Time { return fixed }))

	input := named("Chile", "Peru")
	snap, err := store.Replace(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Version != 1 {
		t.Errorf("expected version 1, got %d", snap.Version)
	}
	if !snap.LoadedAt.Equal(fixed) {
		t.Errorf("expected loadedAt %v, got %v", fixed, snap.LoadedAt)
	}

	// The store keeps its own copy.
	input[0].Name.Common = "Mutated"
	if got := store.Snapshot(ctx).Records[0].DisplayName(); got != "Chile" {
		t.Errorf("expected stored record to be unaffected, got %s", got)
	}

	snap, err = store.Replace(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Version != 2 {
		t.Errorf("expected version 2, got %d", snap.Version)
	}
	if !snap.Loaded() || store.Count(ctx) != 0 {
		t.Errorf("expected a loaded empty set, got loaded=%v count=%d", snap.Loaded(), store.Count(ctx))
	}
}

func TestMemoryStore_MaxRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxRecords(1))

	if _, err := store.Replace(ctx, named("A", "B")); !errors.Is(err, ErrTooManyRecords) {
		t.Fatalf("expected ErrTooManyRecords, got %v", err)
	}
	if store.Snapshot(ctx).Loaded() {
		t.Error("rejected replace must not publish a snapshot")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Replace(ctx, named("X", "Y", "Z")); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := store.Snapshot(ctx)
			if n := len(snap.Records); n != 0 && n != 3 {
				t.Errorf("observed torn snapshot with %d records", n)
			}
		}()
	}
	wg.Wait()

	if v := store.Snapshot(ctx).Version; v != writers {
		t.Errorf("expected version %d, got %d", writers, v)
	}
}
