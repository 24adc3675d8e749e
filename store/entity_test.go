package store

import (
	"sync"
	"testing"
	"time"

	"umsjevari_go/models"
)

// The test binary never connects a database, so every facade operation below
// exercises the degraded path the facade takes when the primary store is
// unreachable.

func newTestNotices() *Entity[models.Notice] {
	return NewEntity("notices", noticeFallback())
}

func TestListServesSeededDefaultsWhenPrimaryUnavailable(t *testing.T) {
	e := newTestNotices()

	got, mode := e.List()
	if mode != ModeFallback {
		t.Fatalf("expected fallback mode, got %s", mode)
	}
	if len(got) == 0 {
		t.Fatal("expected seeded default notices, got empty list")
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("list not ordered newest first at index %d", i)
		}
	}
}

func TestInsertDegradesToFallbackAndIsListed(t *testing.T) {
	e := newTestNotices()

	n := models.Notice{Title: "PTA Meeting", Description: "Saturday 10am in the main hall."}
	mode, err := e.Insert(&n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != ModeFallback {
		t.Fatalf("expected fallback mode, got %s", mode)
	}
	if n.ID == 0 {
		t.Fatal("expected a locally assigned id")
	}

	got, _ := e.List()
	found := false
	for _, rec := range got {
		if rec.ID == n.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("inserted record not visible in list")
	}
	// Seeded defaults are replaced by real fallback contents once anything
	// has been written.
	if len(got) != 1 {
		t.Fatalf("expected only the inserted record, got %d records", len(got))
	}
}

func TestRestartRevertsToSeededDefaults(t *testing.T) {
	e := newTestNotices()

	n := models.Notice{Title: "Temporary", Description: "Not durable."}
	if _, err := e.Insert(&n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulated process restart.
	e.FallbackStore().Reset()

	got, _ := e.List()
	if len(got) != 3 {
		t.Fatalf("expected the 3 seeded defaults after restart, got %d", len(got))
	}
	for _, rec := range got {
		if rec.ID == n.ID {
			t.Fatal("fallback record survived a simulated restart")
		}
	}
}

func TestDeleteAcrossStores(t *testing.T) {
	e := newTestNotices()

	n := models.Notice{Title: "To delete", Description: "x"}
	if _, err := e.Insert(&n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !e.Delete(n.ID) {
		t.Fatal("expected delete of existing fallback record to succeed")
	}
	if e.Delete(n.ID) {
		t.Fatal("second delete of the same id should be a no-op")
	}
	if e.Delete(999999) {
		t.Fatal("delete of unknown id should report false")
	}
}

func TestUpdateNotFoundDoesNotMutate(t *testing.T) {
	e := NewEntity("admissions", admissionFallback())

	called := false
	_, found := e.Update(42, func(a *models.Admission) {
		called = true
		a.Status = models.AdmissionApproved
	})
	if found {
		t.Fatal("update of unknown id reported found")
	}
	if called {
		t.Fatal("mutate must not run for an absent record")
	}
}

func TestUpdateStatusInFallback(t *testing.T) {
	e := NewEntity("admissions", admissionFallback())

	a := models.Admission{
		ApplicationID: "FORM1700000000000abc1234",
		StudentName:   "Ravi Kumar",
		Status:        models.AdmissionPending,
	}
	if _, err := e.Insert(&a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mode, found := e.Update(a.ID, func(rec *models.Admission) {
		rec.Status = models.AdmissionApproved
	})
	if !found || mode != ModeFallback {
		t.Fatalf("expected fallback update to succeed, found=%v mode=%s", found, mode)
	}

	got, _, ok := e.Get(a.ID)
	if !ok || got.Status != models.AdmissionApproved {
		t.Fatalf("status transition not applied: ok=%v status=%s", ok, got.Status)
	}
}

func TestConcurrentFallbackInserts(t *testing.T) {
	e := newTestNotices()

	var wg sync.WaitGroup
	const n = 20
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := models.Notice{Title: "concurrent", Description: "x"}
			if _, err := e.Insert(&rec); err != nil {
				t.Errorf("insert failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := e.FallbackStore().Len(); got != n {
		t.Fatalf("expected %d records, got %d", n, got)
	}
}

func TestFallbackIDsAreDistinct(t *testing.T) {
	fb := noticeFallback()
	seen := make(map[uint]bool)
	for i := 0; i < 50; i++ {
		rec := models.Notice{Title: "n", Description: "d"}
		id := fb.Insert(&rec)
		if seen[id] {
			t.Fatalf("duplicate fallback id: %d", id)
		}
		seen[id] = true
	}
}

func TestFallbackInsertStampsCreationTime(t *testing.T) {
	fb := noticeFallback()
	before := time.Now().Add(-time.Second)
	rec := models.Notice{Title: "n", Description: "d"}
	fb.Insert(&rec)
	if rec.CreatedAt.Before(before) {
		t.Fatalf("creation time not stamped: %v", rec.CreatedAt)
	}
}
