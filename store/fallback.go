package store

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Fallback is a process-local, mutex-guarded, insertion-ordered collection
// used when the primary database cannot be reached. It is seeded with static
// defaults, never reconciled back into the database, and lost on restart.
type Fallback[T any] struct {
	mu      sync.RWMutex
	records []T
	seed    func() []T
	getID   func(T) uint
	setID   func(*T, uint)
	touch   func(*T, time.Time)
	created func(T) time.Time
}

// NewFallback builds an empty fallback collection. seed returns fresh copies
// of the default records served while the collection is empty.
func NewFallback[T any](
	seed func() []T,
	getID func(T) uint,
	setID func(*T, uint),
	touch func(*T, time.Time),
	created func(T) time.Time,
) *Fallback[T] {
	return &Fallback[T]{
		seed:    seed,
		getID:   getID,
		setID:   setID,
		touch:   touch,
		created: created,
	}
}

// List returns the stored records newest first, or the seeded defaults when
// nothing has been stored in this process lifetime.
func (f *Fallback[T]) List() []T {
	f.mu.RLock()
	defer f.mu.RUnlock()

	src := f.records
	if len(src) == 0 && f.seed != nil {
		src = f.seed()
	}

	out := make([]T, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool {
		return f.created(out[i]).After(f.created(out[j]))
	})
	return out
}

// Insert appends a record, assigning a locally generated id (millisecond
// timestamp plus a random component) and stamping its creation time.
func (f *Fallback[T]) Insert(rec *T) uint {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextIDLocked()
	f.setID(rec, id)
	f.touch(rec, time.Now())
	f.records = append(f.records, *rec)
	return id
}

// Get returns the record with the given id, if present.
func (f *Fallback[T]) Get(id uint) (T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, rec := range f.records {
		if f.getID(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Update applies mutate to the record with the given id. Seeded defaults are
// not mutable; only records written during this process lifetime are.
func (f *Fallback[T]) Update(id uint, mutate func(*T)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.records {
		if f.getID(f.records[i]) == id {
			mutate(&f.records[i])
			return true
		}
	}
	return false
}

// Delete removes the record with the given id and reports whether anything
// was removed. Deleting an absent id is a no-op, so concurrent deletes of the
// same id are idempotent.
func (f *Fallback[T]) Delete(id uint) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.records[:0]
	removed := false
	for _, rec := range f.records {
		if f.getID(rec) == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	f.records = kept
	return removed
}

// Len returns the number of records written during this process lifetime
// (seeded defaults excluded).
func (f *Fallback[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.records)
}

// Reset drops everything written in this process lifetime, reverting List to
// the seeded defaults. Equivalent to a process restart.
func (f *Fallback[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = nil
}

// nextIDLocked derives a collision-resistant local id. Caller holds the lock.
func (f *Fallback[T]) nextIDLocked() uint {
	for {
		id := uint(time.Now().UnixMilli())*1000 + uint(rand.Intn(1000))
		taken := false
		for _, rec := range f.records {
			if f.getID(rec) == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}
