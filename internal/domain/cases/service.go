package cases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/domain/patient"
	"github.com/clinicbridge/intake/internal/safety"
)

// Service orchestrates all case mutations. It is the only component that
// writes persisted case state; everything it enforces is delegated to the
// pure predicates in the safety package and the lifecycle functions.
type Service struct {
	cases    Repository
	patients PatientLookup
}

func NewService(repo Repository, patients PatientLookup) *Service {
	return &Service{cases: repo, patients: patients}
}

// SubmitCase validates and creates a new draft case. Emergency keywords in
// the chief complaint force URGENT priority; a differing computed priority
// is reported as a non-blocking suggestion. Both are returned as warnings,
// never as failures.
func (s *Service) SubmitCase(ctx context.Context, in *SubmitInput) (*View, []Warning, error) {
	if fieldErrs := validateSubmit(in); len(fieldErrs) > 0 {
		return nil, nil, validationFault(fieldErrs)
	}

	if _, err := s.patients.GetByID(ctx, in.PatientID); err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return nil, nil, notFoundFault("patient")
		}
		return nil, nil, err
	}

	complaint := safety.Sanitize(in.ChiefComplaint)
	c := &Case{
		PatientID:        in.PatientID,
		Status:           safety.StatusDraft,
		Priority:         in.Priority,
		ChiefComplaint:   complaint,
		SymptomDuration:  in.SymptomDuration,
		VitalSigns:       in.VitalSigns,
		Attachments:      in.Attachments,
		ProcessingStatus: ProcessingNotStarted,
	}
	if c.Priority == "" {
		c.Priority = safety.PriorityRoutine
	}
	if in.RawNotes != nil {
		notes := safety.Sanitize(*in.RawNotes)
		c.RawNotes = &notes
	}

	var warnings []Warning
	requested := c.Priority
	if em := safety.CheckEmergency(complaint); em.IsEmergency {
		c.Priority = safety.PriorityUrgent
		warnings = append(warnings, Warning{
			Code:     WarnEmergencyEscalation,
			Message:  "emergency indicators detected; priority escalated to URGENT",
			Triggers: em.Triggers,
		})
	}
	if suggested := safety.SuggestPriority(complaint); suggested != requested {
		warnings = append(warnings, Warning{
			Code:    WarnPrioritySuggestion,
			Message: fmt.Sprintf("reported symptoms suggest %s priority", suggested),
		})
	}

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, nil, err
	}
	return NewView(c), warnings, nil
}

func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*View, error) {
	c, err := s.getCase(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewView(c), nil
}

// ListCases returns matching cases in queue order: urgent newest-first,
// elevated newest-first, routine oldest-first.
func (s *Service) ListCases(ctx context.Context, f Filter, limit, offset int) ([]*View, int, error) {
	items, err := s.cases.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	SortQueue(items)
	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	views := make([]*View, 0, end-offset)
	for _, c := range items[offset:end] {
		views = append(views, NewView(c))
	}
	return views, total, nil
}

// UpdateCase applies a partial patch. Every field in the patch must pass
// the editability policy for the case's current status or the whole patch
// is rejected; there is no partial application.
func (s *Service) UpdateCase(ctx context.Context, id uuid.UUID, patch *UpdateInput) (*View, error) {
	c, err := s.getCase(ctx, id)
	if err != nil {
		return nil, err
	}

	if fieldErrs := validateUpdate(patch); len(fieldErrs) > 0 {
		return nil, validationFault(fieldErrs)
	}

	var blocked []map[string]string
	for _, field := range patch.Fields() {
		if v := safety.FieldEditable(field, c.Status); !v.Editable {
			blocked = append(blocked, map[string]string{"field": field, "reason": v.Reason})
		}
	}
	if len(blocked) > 0 {
		return nil, &Fault{
			Kind:    KindInvalidState,
			Message: fmt.Sprintf("%d field(s) are not editable while status is %s", len(blocked), c.Status),
			Details: map[string]interface{}{"blocked_fields": blocked},
		}
	}

	if patch.DoctorNotes != nil {
		if res := safety.ValidateContentSafety(*patch.DoctorNotes); !res.Safe {
			return nil, &Fault{
				Kind:    KindSafetyViolation,
				Message: "doctor notes contain prohibited medical language",
				Details: map[string]interface{}{"violations": res.Violations},
			}
		}
	}

	applyPatch(c, patch)

	if err := s.update(ctx, c); err != nil {
		return nil, err
	}
	return NewView(c), nil
}

func applyPatch(c *Case, patch *UpdateInput) {
	if patch.ChiefComplaint != nil {
		c.ChiefComplaint = safety.Sanitize(*patch.ChiefComplaint)
	}
	if patch.SymptomDuration != nil {
		d := safety.Sanitize(*patch.SymptomDuration)
		c.SymptomDuration = &d
	}
	if patch.RawNotes != nil {
		n := safety.Sanitize(*patch.RawNotes)
		c.RawNotes = &n
	}
	if patch.VitalSigns != nil {
		c.VitalSigns = patch.VitalSigns
	}
	if patch.Attachments != nil {
		c.Attachments = *patch.Attachments
	}
	if patch.DoctorNotes != nil {
		n := safety.Sanitize(*patch.DoctorNotes)
		c.DoctorNotes = &n
	}
	if patch.DoctorDecision != nil {
		d := safety.Sanitize(*patch.DoctorDecision)
		c.DoctorDecision = &d
	}
	if patch.ReviewedBy != nil {
		r := safety.Sanitize(*patch.ReviewedBy)
		c.ReviewedBy = &r
	}
	if patch.Priority != nil {
		c.Priority = *patch.Priority
	}
}

// SubmitForReview transitions a draft case into the review queue.
func (s *Service) SubmitForReview(ctx context.Context, id uuid.UUID) (*View, error) {
	return s.transition(ctx, id, func(c *Case) *Fault { return SubmitForReview(c) })
}

// MarkAsReviewed records the reviewer and moves the case to REVIEWED.
func (s *Service) MarkAsReviewed(ctx context.Context, id uuid.UUID, reviewedBy string) (*View, error) {
	return s.transition(ctx, id, func(c *Case) *Fault { return MarkReviewed(c, reviewedBy) })
}

// CloseCase records the final decision and moves the case to CLOSED.
func (s *Service) CloseCase(ctx context.Context, id uuid.UUID, decision string) (*View, error) {
	return s.transition(ctx, id, func(c *Case) *Fault { return Close(c, decision) })
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, fn func(*Case) *Fault) (*View, error) {
	c, err := s.getCase(ctx, id)
	if err != nil {
		return nil, err
	}
	if f := fn(c); f != nil {
		return nil, f
	}
	if err := s.update(ctx, c); err != nil {
		return nil, err
	}
	return NewView(c), nil
}

// GetQueueStats aggregates counts by status and priority over all cases.
func (s *Service) GetQueueStats(ctx context.Context) (QueueStats, error) {
	items, err := s.cases.List(ctx, Filter{})
	if err != nil {
		return QueueStats{}, err
	}
	return ComputeStats(items), nil
}

// ClearRecommendation removes the recommendation link from a case and
// resets its processing status so that generation may run again. Called by
// the recommendation domain when a recommendation is deleted.
func (s *Service) ClearRecommendation(ctx context.Context, caseID uuid.UUID) error {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return err
	}
	c.RecommendationID = nil
	c.ProcessingStatus = ProcessingNotStarted
	return s.cases.Update(ctx, c)
}

// BeginProcessing claims a case for asynchronous summary generation. Only
// NOT_STARTED and FAILED may move to PENDING; the version compare-and-set
// in update makes the claim exclusive, so a concurrent second trigger loses
// and is rejected. Returns the claimed case for snapshotting.
func (s *Service) BeginProcessing(ctx context.Context, id uuid.UUID) (*Case, error) {
	c, err := s.getCase(ctx, id)
	if err != nil {
		return nil, err
	}
	switch c.ProcessingStatus {
	case ProcessingPending:
		return nil, &Fault{Kind: KindInvalidState, Message: "processing is already in progress"}
	case ProcessingCompleted:
		return nil, &Fault{
			Kind:    KindInvalidState,
			Message: "case has already been processed; delete its recommendation to regenerate",
		}
	}
	if c.RecommendationID != nil {
		return nil, &Fault{Kind: KindInvalidState, Message: "case already has a recommendation"}
	}
	c.ProcessingStatus = ProcessingPending
	if err := s.update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FinishProcessing records a successful generation run: derived summary
// fields, the recommendation link, and COMPLETED status.
func (s *Service) FinishProcessing(ctx context.Context, id uuid.UUID, summary string, flags []string, recommendationID uuid.UUID) error {
	c, err := s.getCase(ctx, id)
	if err != nil {
		return err
	}
	c.StructuredSummary = &summary
	c.ClinicalFlags = flags
	rid := recommendationID
	c.RecommendationID = &rid
	c.ProcessingStatus = ProcessingCompleted
	return s.update(ctx, c)
}

// FailProcessing marks the run FAILED. FAILED is recoverable: a later
// BeginProcessing call may claim the case again.
func (s *Service) FailProcessing(ctx context.Context, id uuid.UUID) error {
	c, err := s.getCase(ctx, id)
	if err != nil {
		return err
	}
	c.ProcessingStatus = ProcessingFailed
	return s.update(ctx, c)
}

func (s *Service) getCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundFault("case")
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) update(ctx context.Context, c *Case) error {
	if err := s.cases.Update(ctx, c); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return &Fault{
				Kind:    KindInvalidState,
				Message: "case was modified concurrently; re-read and retry",
			}
		}
		return err
	}
	return nil
}
