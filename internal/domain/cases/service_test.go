package cases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/domain/patient"
	"github.com/clinicbridge/intake/internal/safety"
)

type mockRepo struct {
	store map[uuid.UUID]*Case
	now   time.Time
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*Case), now: time.Now().UTC()}
}

func (m *mockRepo) Create(_ context.Context, c *Case) error {
	c.ID = uuid.New()
	c.Version = 1
	m.now = m.now.Add(time.Second)
	c.CreatedAt = m.now
	c.UpdatedAt = m.now
	cp := *c
	m.store[c.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	c, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, c *Case) error {
	stored, ok := m.store[c.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != c.Version {
		return ErrVersionConflict
	}
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	m.store[c.ID] = &cp
	return nil
}

func (m *mockRepo) List(_ context.Context, f Filter) ([]*Case, error) {
	var items []*Case
	for _, c := range m.store {
		if f.PatientID != nil && c.PatientID != *f.PatientID {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if f.Priority != nil && c.Priority != *f.Priority {
			continue
		}
		cp := *c
		items = append(items, &cp)
	}
	return items, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

type mockPatients struct {
	known map[uuid.UUID]*patient.Patient
}

func newMockPatients(ids ...uuid.UUID) *mockPatients {
	m := &mockPatients{known: make(map[uuid.UUID]*patient.Patient)}
	for _, id := range ids {
		m.known[id] = &patient.Patient{ID: id, FullName: "Test Patient", Age: 30, Gender: "F", Phone: "000"}
	}
	return m
}

func (m *mockPatients) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.known[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	return p, nil
}

func newTestService() (*Service, uuid.UUID) {
	pid := uuid.New()
	return NewService(newMockRepo(), newMockPatients(pid)), pid
}

func submitDraft(t *testing.T, svc *Service, pid uuid.UUID, complaint string) *View {
	t.Helper()
	view, _, err := svc.SubmitCase(context.Background(), &SubmitInput{
		PatientID:      pid,
		ChiefComplaint: complaint,
	})
	if err != nil {
		t.Fatalf("SubmitCase failed: %v", err)
	}
	return view
}

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected Fault, got %v", err)
	}
	return f.Kind
}

func TestSubmitCase_Success(t *testing.T) {
	svc, pid := newTestService()
	view, warnings, err := svc.SubmitCase(context.Background(), &SubmitInput{
		PatientID:      pid,
		ChiefComplaint: "Mild headache since yesterday",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Status != safety.StatusDraft {
		t.Errorf("expected DRAFT, got %s", view.Status)
	}
	if view.Priority != safety.PriorityRoutine {
		t.Errorf("expected ROUTINE, got %s", view.Priority)
	}
	if view.ProcessingStatus != ProcessingNotStarted {
		t.Errorf("expected NOT_STARTED, got %s", view.ProcessingStatus)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestSubmitCase_ValidationListsEveryField(t *testing.T) {
	svc, pid := newTestService()
	temp := 120.0
	pulse := 20
	_, _, err := svc.SubmitCase(context.Background(), &SubmitInput{
		PatientID:      pid,
		ChiefComplaint: "hm",
		VitalSigns:     &VitalSigns{Temperature: &temp, PulseRate: &pulse},
	})
	if kindOf(t, err) != KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	var f *Fault
	errors.As(err, &f)
	fieldErrs := f.Details.([]FieldError)
	if len(fieldErrs) != 3 {
		t.Errorf("expected 3 field errors, got %v", fieldErrs)
	}
}

func TestSubmitCase_UnknownPatient(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.SubmitCase(context.Background(), &SubmitInput{
		PatientID:      uuid.New(),
		ChiefComplaint: "Mild headache since yesterday",
	})
	if kindOf(t, err) != KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSubmitCase_EmergencyEscalation(t *testing.T) {
	svc, pid := newTestService()
	view, warnings, err := svc.SubmitCase(context.Background(), &SubmitInput{
		PatientID:      pid,
		ChiefComplaint: "Sudden chest pain and difficulty breathing",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Priority != safety.PriorityUrgent {
		t.Errorf("expected URGENT, got %s", view.Priority)
	}
	var escalation *Warning
	for i := range warnings {
		if warnings[i].Code == WarnEmergencyEscalation {
			escalation = &warnings[i]
		}
	}
	if escalation == nil {
		t.Fatalf("expected EMERGENCY_ESCALATION warning, got %v", warnings)
	}
	want := []string{"chest pain", "difficulty breathing"}
	if len(escalation.Triggers) != len(want) {
		t.Fatalf("expected triggers %v, got %v", want, escalation.Triggers)
	}
	for i, tr := range want {
		if escalation.Triggers[i] != tr {
			t.Errorf("trigger %d: expected %q, got %q", i, tr, escalation.Triggers[i])
		}
	}
}

func TestSubmitCase_PrioritySuggestion(t *testing.T) {
	svc, pid := newTestService()
	_, warnings, err := svc.SubmitCase(context.Background(), &SubmitInput{
		PatientID:      pid,
		ChiefComplaint: "Severe stomach ache for three days",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != WarnPrioritySuggestion {
		t.Fatalf("expected a PRIORITY_SUGGESTION warning, got %v", warnings)
	}
}

func TestSubmitCase_SanitizesComplaint(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "<b>stomach   pain</b> for two days")
	if view.ChiefComplaint != "stomach pain for two days" {
		t.Errorf("expected sanitized complaint, got %q", view.ChiefComplaint)
	}
}

func TestUpdateCase_DoctorNotesBlockedInDraft(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Mild headache since yesterday")

	notes := "Patient seems stable, follow up next week"
	patch := &UpdateInput{DoctorNotes: &notes}
	patch.SetFields([]string{"doctor_notes"})

	_, err := svc.UpdateCase(context.Background(), view.ID, patch)
	if kindOf(t, err) != KindInvalidState {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestUpdateCase_WholesaleRejection(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Mild headache since yesterday")

	complaint := "Updated complaint description"
	notes := "some doctor notes"
	patch := &UpdateInput{ChiefComplaint: &complaint, DoctorNotes: &notes}
	patch.SetFields([]string{"chief_complaint", "doctor_notes"})

	_, err := svc.UpdateCase(context.Background(), view.ID, patch)
	if kindOf(t, err) != KindInvalidState {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}

	// No partial application: the complaint must be unchanged.
	got, gerr := svc.GetCase(context.Background(), view.ID)
	if gerr != nil {
		t.Fatalf("GetCase failed: %v", gerr)
	}
	if got.ChiefComplaint != view.ChiefComplaint {
		t.Errorf("patch was partially applied: %q", got.ChiefComplaint)
	}
}

func TestUpdateCase_UnknownFieldFailsClosed(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Mild headache since yesterday")

	patch := &UpdateInput{}
	patch.SetFields([]string{"favorite_color"})

	_, err := svc.UpdateCase(context.Background(), view.ID, patch)
	if kindOf(t, err) != KindInvalidState {
		t.Fatalf("expected INVALID_STATE for unknown field, got %v", err)
	}
}

func TestUpdateCase_DraftClinicalEdit(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Mild headache since yesterday")

	complaint := "Throbbing headache with nausea"
	duration := "3 days"
	patch := &UpdateInput{ChiefComplaint: &complaint, SymptomDuration: &duration}
	patch.SetFields([]string{"chief_complaint", "symptom_duration"})

	got, err := svc.UpdateCase(context.Background(), view.ID, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChiefComplaint != complaint {
		t.Errorf("complaint not applied: %q", got.ChiefComplaint)
	}
	if got.SymptomDuration == nil || *got.SymptomDuration != duration {
		t.Error("symptom duration not applied")
	}
}

func TestUpdateCase_UnsafeDoctorNotes(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Mild headache since yesterday")
	if _, err := svc.SubmitForReview(context.Background(), view.ID); err != nil {
		t.Fatalf("submit for review failed: %v", err)
	}

	notes := "Patient diagnosed with migraine"
	patch := &UpdateInput{DoctorNotes: &notes}
	patch.SetFields([]string{"doctor_notes"})

	_, err := svc.UpdateCase(context.Background(), view.ID, patch)
	if kindOf(t, err) != KindSafetyViolation {
		t.Fatalf("expected SAFETY_VIOLATION, got %v", err)
	}
}

func TestUpdateCase_NotFound(t *testing.T) {
	svc, _ := newTestService()
	patch := &UpdateInput{}
	patch.SetFields([]string{"priority"})
	_, err := svc.UpdateCase(context.Background(), uuid.New(), patch)
	if kindOf(t, err) != KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLifecycle_FullPath(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Persistent cough for a week")

	v, err := svc.SubmitForReview(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("submit for review: %v", err)
	}
	if v.Status != safety.StatusPendingReview {
		t.Errorf("expected PENDING_REVIEW, got %s", v.Status)
	}

	v, err = svc.MarkAsReviewed(context.Background(), view.ID, "Dr. Rao")
	if err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if v.Status != safety.StatusReviewed {
		t.Errorf("expected REVIEWED, got %s", v.Status)
	}
	if v.ReviewedBy == nil || *v.ReviewedBy != "Dr. Rao" {
		t.Error("reviewer not recorded")
	}
	if v.ReviewedAt == nil {
		t.Error("review time not recorded")
	}

	v, err = svc.CloseCase(context.Background(), view.ID, "Advised rest and follow-up consultation")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if v.Status != safety.StatusClosed {
		t.Errorf("expected CLOSED, got %s", v.Status)
	}
}

func TestCloseCase_FromDraftIsInvalid(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Persistent cough for a week")

	_, err := svc.CloseCase(context.Background(), view.ID, "Advised rest")
	var f *Fault
	if !errors.As(err, &f) || f.Kind != KindInvalidState {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
	details := f.Details.(map[string]interface{})
	allowed := details["allowed_transitions"].([]safety.Status)
	if len(allowed) != 1 || allowed[0] != safety.StatusPendingReview {
		t.Errorf("expected allowed transitions [PENDING_REVIEW], got %v", allowed)
	}
}

func TestCloseCase_ProhibitedDecision(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Burning stomach ache after meals")
	svc.SubmitForReview(context.Background(), view.ID)
	svc.MarkAsReviewed(context.Background(), view.ID, "Dr. Rao")

	_, err := svc.CloseCase(context.Background(), view.ID,
		"Patient diagnosed with gastritis, prescribe omeprazole 20mg twice daily")
	var f *Fault
	if !errors.As(err, &f) || f.Kind != KindSafetyViolation {
		t.Fatalf("expected SAFETY_VIOLATION, got %v", err)
	}
	violations := f.Details.(map[string]interface{})["violations"].([]string)
	found := map[string]bool{}
	for _, v := range violations {
		found[v] = true
	}
	for _, want := range []string{"diagnosed with", "prescribe", "mg twice daily"} {
		if !found[want] {
			t.Errorf("expected violation %q in %v", want, violations)
		}
	}
}

func TestClosedCaseIsFrozen(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Persistent cough for a week")
	svc.SubmitForReview(context.Background(), view.ID)
	svc.MarkAsReviewed(context.Background(), view.ID, "Dr. Rao")
	svc.CloseCase(context.Background(), view.ID, "Advised rest and fluids")

	p := safety.PriorityUrgent
	patch := &UpdateInput{Priority: &p}
	patch.SetFields([]string{"priority"})
	if _, err := svc.UpdateCase(context.Background(), view.ID, patch); kindOf(t, err) != KindInvalidState {
		t.Errorf("expected INVALID_STATE editing a closed case, got %v", err)
	}

	if _, err := svc.SubmitForReview(context.Background(), view.ID); kindOf(t, err) != KindInvalidState {
		t.Errorf("expected INVALID_STATE transitioning a closed case, got %v", err)
	}
}

func TestGetCase_MetaTracksStatus(t *testing.T) {
	svc, pid := newTestService()
	view := submitDraft(t, svc, pid, "Persistent cough for a week")

	if len(view.Meta.AllowedTransitions) != 1 || view.Meta.AllowedTransitions[0] != safety.StatusPendingReview {
		t.Errorf("DRAFT meta transitions wrong: %v", view.Meta.AllowedTransitions)
	}

	v, _ := svc.SubmitForReview(context.Background(), view.ID)
	if len(v.Meta.AllowedTransitions) != 2 {
		t.Errorf("PENDING_REVIEW meta transitions wrong: %v", v.Meta.AllowedTransitions)
	}
	for _, f := range v.Meta.EditableFields {
		if f == "chief_complaint" {
			t.Error("chief_complaint should not be editable after submission")
		}
	}
}

func TestGetQueueStats(t *testing.T) {
	svc, pid := newTestService()
	submitDraft(t, svc, pid, "Mild headache since yesterday")
	submitDraft(t, svc, pid, "Severe back pain after lifting")
	view := submitDraft(t, svc, pid, "Persistent cough for a week")
	svc.SubmitForReview(context.Background(), view.ID)

	stats, err := svc.GetQueueStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected 3 cases, got %d", stats.Total)
	}
	if stats.ByStatus[safety.StatusDraft] != 2 || stats.ByStatus[safety.StatusPendingReview] != 1 {
		t.Errorf("status counts wrong: %v", stats.ByStatus)
	}
	if stats.ByPriority[safety.PriorityRoutine] != 3 {
		t.Errorf("priority counts wrong: %v", stats.ByPriority)
	}
}

func TestUpdate_VersionConflict(t *testing.T) {
	repo := newMockRepo()
	pid := uuid.New()
	svc := NewService(repo, newMockPatients(pid))
	view := submitDraft(t, svc, pid, "Mild headache since yesterday")

	// Simulate a concurrent writer bumping the stored version.
	stored := repo.store[view.ID]
	stored.Version++

	p := safety.PriorityElevated
	patch := &UpdateInput{Priority: &p}
	patch.SetFields([]string{"priority"})
	_, err := svc.UpdateCase(context.Background(), view.ID, patch)
	if kindOf(t, err) != KindInvalidState {
		t.Fatalf("expected INVALID_STATE on version conflict, got %v", err)
	}
}
