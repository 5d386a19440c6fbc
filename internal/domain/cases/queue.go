package cases

import (
	"sort"

	"github.com/clinicbridge/intake/internal/safety"
)

var priorityRank = map[safety.Priority]int{
	safety.PriorityUrgent:   0,
	safety.PriorityElevated: 1,
	safety.PriorityRoutine:  2,
}

// SortQueue orders cases for the review queue. Urgent cases come first and
// elevated cases second, each newest-first so the most time-sensitive work
// surfaces immediately. Routine cases come last, oldest-first, so that
// non-urgent cases are worked strictly FIFO and cannot starve. The sort is
// stable; equal-priority equal-time cases keep their input order.
func SortQueue(items []*Case) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ra, rb := priorityRank[a.Priority], priorityRank[b.Priority]
		if ra != rb {
			return ra < rb
		}
		if a.Priority == safety.PriorityRoutine {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// QueueStats aggregates case counts by status and priority.
type QueueStats struct {
	Total      int                     `json:"total"`
	ByStatus   map[safety.Status]int   `json:"by_status"`
	ByPriority map[safety.Priority]int `json:"by_priority"`
}

// ComputeStats reduces a case set to queue statistics.
func ComputeStats(items []*Case) QueueStats {
	stats := QueueStats{
		Total:      len(items),
		ByStatus:   make(map[safety.Status]int),
		ByPriority: make(map[safety.Priority]int),
	}
	for _, c := range items {
		stats.ByStatus[c.Status]++
		stats.ByPriority[c.Priority]++
	}
	return stats
}
