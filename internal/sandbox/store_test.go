package sandbox

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(maxReports int, readyAfter time.Duration) (*reportStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return newReportStore(maxReports, readyAfter, clock.Now), clock
}

func TestReportStore_CreateAssignsSequentialIDs(t *testing.T) {
	store, _ := newTestStore(5, 0)

	first, err := store.create("tok", []string{"go"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.create("other", []string{"rust"}, []int64{225})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first+1 {
		t.Errorf("ids %d and %d are not sequential", first, second)
	}
}

func TestReportStore_QueueFullPerToken(t *testing.T) {
	store, _ := newTestStore(2, 0)

	for i := 0; i < 2; i++ {
		if _, err := store.create("tok", []string{"go"}, nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := store.create("tok", []string{"go"}, nil); !errors.Is(err, errQueueFull) {
		t.Errorf("expected errQueueFull, got %v", err)
	}
	if _, err := store.create("another", []string{"go"}, nil); err != nil {
		t.Errorf("other tokens keep their own quota: %v", err)
	}
}

func TestReportStore_ReadyAfter(t *testing.T) {
	store, clock := newTestStore(5, time.Minute)

	id, _ := store.create("tok", []string{"go"}, nil)

	_, ready, err := store.get("tok", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ready {
		t.Error("report should be pending right after creation")
	}

	clock.Advance(59 * time.Second)
	if states := store.list("tok"); len(states) != 1 || states[0].ready {
		t.Errorf("list before deadline = %+v", states)
	}

	clock.Advance(time.Second)
	if _, ready, _ := store.get("tok", id); !ready {
		t.Error("report should be ready once ReadyAfter has elapsed")
	}
}

func TestReportStore_TokenIsolation(t *testing.T) {
	store, _ := newTestStore(5, 0)
	id, _ := store.create("tok", []string{"go"}, nil)

	if _, _, err := store.get("other", id); !errors.Is(err, errReportNotFound) {
		t.Errorf("get from another token: %v", err)
	}
	if err := store.delete("other", id); !errors.Is(err, errReportNotFound) {
		t.Errorf("delete from another token: %v", err)
	}
	if len(store.list("other")) != 0 {
		t.Error("list leaks reports across tokens")
	}
}

func TestReportStore_DeleteFreesSlot(t *testing.T) {
	store, _ := newTestStore(1, 0)
	id, _ := store.create("tok", []string{"go"}, nil)

	if err := store.delete("tok", id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.delete("tok", id); !errors.Is(err, errReportNotFound) {
		t.Errorf("second delete: %v", err)
	}
	if _, err := store.create("tok", []string{"go"}, nil); err != nil {
		t.Errorf("create after delete: %v", err)
	}
}

func TestReportStore_ListOrderedByID(t *testing.T) {
	store, _ := newTestStore(5, 0)
	var ids []int64
	for i := 0; i < 4; i++ {
		id, _ := store.create("tok", []string{"go"}, nil)
		ids = append(ids, id)
	}

	states := store.list("tok")
	if len(states) != len(ids) {
		t.Fatalf("expected %d reports, got %d", len(ids), len(states))
	}
	for i, st := range states {
		if st.id != ids[i] {
			t.Errorf("states[%d].id = %d, want %d", i, st.id, ids[i])
		}
	}
}

func TestReportStore_GetReturnsCopy(t *testing.T) {
	store, _ := newTestStore(5, 0)
	phrases := []string{"go"}
	id, _ := store.create("tok", phrases, nil)
	phrases[0] = "changed"

	r, _, _ := store.get("tok", id)
	if r.phrases[0] != "go" {
		t.Errorf("store kept the caller's slice: %v", r.phrases)
	}
}
