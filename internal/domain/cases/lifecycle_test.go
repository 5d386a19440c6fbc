package cases

import (
	"testing"

	"github.com/clinicbridge/intake/internal/safety"
)

func draftCase() *Case {
	return &Case{
		Status:         safety.StatusDraft,
		ChiefComplaint: "Recurring acidity after meals",
	}
}

func TestSubmitForReview_Success(t *testing.T) {
	c := draftCase()
	if f := SubmitForReview(c); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if c.Status != safety.StatusPendingReview {
		t.Errorf("expected PENDING_REVIEW, got %s", c.Status)
	}
}

func TestSubmitForReview_ShortComplaint(t *testing.T) {
	c := &Case{Status: safety.StatusDraft, ChiefComplaint: "bad"}
	f := SubmitForReview(c)
	if f == nil || f.Kind != KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", f)
	}
	if c.Status != safety.StatusDraft {
		t.Error("status must not change on a failed transition")
	}
}

func TestSubmitForReview_FromClosed(t *testing.T) {
	c := draftCase()
	c.Status = safety.StatusClosed
	f := SubmitForReview(c)
	if f == nil || f.Kind != KindInvalidState {
		t.Fatalf("expected INVALID_STATE, got %v", f)
	}
}

func TestMarkReviewed_Success(t *testing.T) {
	c := draftCase()
	c.Status = safety.StatusPendingReview
	if f := MarkReviewed(c, "Dr. Mehta"); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if c.Status != safety.StatusReviewed || c.ReviewedBy == nil || c.ReviewedAt == nil {
		t.Error("review fields not set")
	}
}

func TestMarkReviewed_SanitizedReviewerTooShort(t *testing.T) {
	c := draftCase()
	c.Status = safety.StatusPendingReview
	// Sanitizes to a single character.
	f := MarkReviewed(c, "<b>X</b>")
	if f == nil || f.Kind != KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", f)
	}
}

func TestMarkReviewed_FromDraft(t *testing.T) {
	c := draftCase()
	f := MarkReviewed(c, "Dr. Mehta")
	if f == nil || f.Kind != KindInvalidState {
		t.Fatalf("expected INVALID_STATE, got %v", f)
	}
}

func TestClose_Success(t *testing.T) {
	c := draftCase()
	c.Status = safety.StatusReviewed
	if f := Close(c, "Advised dietary changes and follow-up in two weeks"); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if c.Status != safety.StatusClosed || c.DoctorDecision == nil {
		t.Error("close did not record decision")
	}
}

func TestClose_ShortDecision(t *testing.T) {
	c := draftCase()
	c.Status = safety.StatusReviewed
	f := Close(c, "ok")
	if f == nil || f.Kind != KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", f)
	}
}

func TestClose_ProhibitedLanguage(t *testing.T) {
	c := draftCase()
	c.Status = safety.StatusReviewed
	f := Close(c, "You have gastritis, take this medicine for a week")
	if f == nil || f.Kind != KindSafetyViolation {
		t.Fatalf("expected SAFETY_VIOLATION, got %v", f)
	}
	if c.Status != safety.StatusReviewed {
		t.Error("status must not change on a failed close")
	}
}

func TestClose_PendingReviewIsInvalid(t *testing.T) {
	c := draftCase()
	c.Status = safety.StatusPendingReview
	f := Close(c, "Advised rest and hydration")
	if f == nil || f.Kind != KindInvalidState {
		t.Fatalf("expected INVALID_STATE, got %v", f)
	}
}

func TestReReviewPath(t *testing.T) {
	c := draftCase()
	if f := SubmitForReview(c); f != nil {
		t.Fatal(f)
	}
	if f := MarkReviewed(c, "Dr. Mehta"); f != nil {
		t.Fatal(f)
	}
	// REVIEWED may go back for re-review.
	if !safety.IsValidTransition(c.Status, safety.StatusPendingReview) {
		t.Error("REVIEWED -> PENDING_REVIEW should be valid")
	}
}
