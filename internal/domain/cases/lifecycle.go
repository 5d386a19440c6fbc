package cases

import (
	"time"

	"github.com/clinicbridge/intake/internal/safety"
)

// Lifecycle transition functions. Each validates the move against the
// status graph before mutating the case; none of them persist.

func transitionFault(c *Case, to safety.Status) *Fault {
	return &Fault{
		Kind:    KindInvalidState,
		Message: string(c.Status) + " cannot transition to " + string(to),
		Details: map[string]interface{}{
			"current_status":      c.Status,
			"allowed_transitions": safety.AllowedTransitions(c.Status),
		},
	}
}

// SubmitForReview moves a case from DRAFT into PENDING_REVIEW. The chief
// complaint must already satisfy the minimum length.
func SubmitForReview(c *Case) *Fault {
	if !safety.IsValidTransition(c.Status, safety.StatusPendingReview) {
		return transitionFault(c, safety.StatusPendingReview)
	}
	if len(c.ChiefComplaint) < minComplaintLen {
		return validationFault([]FieldError{{
			Field:   "chief_complaint",
			Message: "chief complaint is required before review",
		}})
	}
	c.Status = safety.StatusPendingReview
	return nil
}

// MarkReviewed moves a case into REVIEWED, stamping the reviewer and the
// review time.
func MarkReviewed(c *Case, reviewedBy string) *Fault {
	if !safety.IsValidTransition(c.Status, safety.StatusReviewed) {
		return transitionFault(c, safety.StatusReviewed)
	}
	reviewer := safety.Sanitize(reviewedBy)
	if len(reviewer) < 2 {
		return validationFault([]FieldError{{
			Field:   "reviewed_by",
			Message: "reviewer name must be at least 2 characters",
		}})
	}
	now := time.Now().UTC()
	c.Status = safety.StatusReviewed
	c.ReviewedBy = &reviewer
	c.ReviewedAt = &now
	return nil
}

// Close moves a case into CLOSED. The decision text must meet the minimum
// length and pass the prohibited-term scan; violations are returned in the
// fault details.
func Close(c *Case, decision string) *Fault {
	if !safety.IsValidTransition(c.Status, safety.StatusClosed) {
		return transitionFault(c, safety.StatusClosed)
	}
	cleaned := safety.Sanitize(decision)
	if len(cleaned) < minDecisionLen {
		return validationFault([]FieldError{{
			Field:   "doctor_decision",
			Message: "closing decision must be at least 5 characters",
		}})
	}
	if res := safety.ValidateContentSafety(cleaned); !res.Safe {
		return &Fault{
			Kind:    KindSafetyViolation,
			Message: "decision contains prohibited medical language",
			Details: map[string]interface{}{"violations": res.Violations},
		}
	}
	c.Status = safety.StatusClosed
	c.DoctorDecision = &cleaned
	return nil
}
