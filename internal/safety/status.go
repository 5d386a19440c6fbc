// Package safety holds the pure decision tables of the intake engine: the
// case status transition graph, prohibited-term and emergency keyword scans,
// text sanitization, and the field editability policy. Everything here is
// stateless so that services and handlers can call it without coordination.
package safety

// Status is the review lifecycle state of a case.
type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusReviewed      Status = "REVIEWED"
	StatusClosed        Status = "CLOSED"
)

// Priority is the triage tier of a case. It stays adjustable until the case
// is closed so that emergencies can be escalated at any stage.
type Priority string

const (
	PriorityRoutine  Priority = "ROUTINE"
	PriorityElevated Priority = "ELEVATED"
	PriorityUrgent   Priority = "URGENT"
)

var validStatuses = map[Status]bool{
	StatusDraft: true, StatusPendingReview: true,
	StatusReviewed: true, StatusClosed: true,
}

var validPriorities = map[Priority]bool{
	PriorityRoutine: true, PriorityElevated: true, PriorityUrgent: true,
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s Status) bool { return validStatuses[s] }

// ValidPriority reports whether p is a known priority tier.
func ValidPriority(p Priority) bool { return validPriorities[p] }

// statusTransitions is the directed graph of legal lifecycle moves.
// PENDING_REVIEW may fall back to DRAFT for revision and REVIEWED may fall
// back to PENDING_REVIEW for re-review. CLOSED has no outgoing edges.
var statusTransitions = map[Status][]Status{
	StatusDraft:         {StatusPendingReview},
	StatusPendingReview: {StatusReviewed, StatusDraft},
	StatusReviewed:      {StatusClosed, StatusPendingReview},
	StatusClosed:        {},
}

// IsValidTransition reports whether a case may move from one status to
// another. An unknown from-status yields false.
func IsValidTransition(from, to Status) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal next statuses from the given status,
// in graph declaration order. The slice is a copy; callers may keep it.
func AllowedTransitions(from Status) []Status {
	next := statusTransitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
