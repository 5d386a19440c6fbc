package cases

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/safety"
)

func caseAt(priority safety.Priority, created time.Time) *Case {
	return &Case{
		ID:        uuid.New(),
		Priority:  priority,
		Status:    safety.StatusPendingReview,
		CreatedAt: created,
	}
}

func TestSortQueue_AsymmetricOrdering(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r1 := caseAt(safety.PriorityRoutine, t0)
	u2 := caseAt(safety.PriorityUrgent, t0.Add(1*time.Hour))
	r3 := caseAt(safety.PriorityRoutine, t0.Add(2*time.Hour))
	e4 := caseAt(safety.PriorityElevated, t0.Add(3*time.Hour))

	items := []*Case{r1, u2, r3, e4}
	SortQueue(items)

	want := []*Case{u2, e4, r1, r3}
	for i := range want {
		if items[i].ID != want[i].ID {
			t.Fatalf("position %d: expected %s@%s, got %s@%s",
				i, want[i].Priority, want[i].CreatedAt, items[i].Priority, items[i].CreatedAt)
		}
	}
}

func TestSortQueue_UrgentNewestFirst(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	older := caseAt(safety.PriorityUrgent, t0)
	newer := caseAt(safety.PriorityUrgent, t0.Add(time.Hour))

	items := []*Case{older, newer}
	SortQueue(items)
	if items[0].ID != newer.ID {
		t.Error("urgent cases should sort newest first")
	}
}

func TestSortQueue_RoutineOldestFirst(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	older := caseAt(safety.PriorityRoutine, t0)
	newer := caseAt(safety.PriorityRoutine, t0.Add(time.Hour))

	items := []*Case{newer, older}
	SortQueue(items)
	if items[0].ID != older.ID {
		t.Error("routine cases should sort oldest first")
	}
}

func TestSortQueue_Empty(t *testing.T) {
	SortQueue(nil)
	SortQueue([]*Case{})
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.Total != 0 || len(stats.ByStatus) != 0 || len(stats.ByPriority) != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}
