package recommendation

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	store map[uuid.UUID]*Recommendation
}

func newMockRepo() *mockRepo { return &mockRepo{store: make(map[uuid.UUID]*Recommendation)} }

func (m *mockRepo) Create(_ context.Context, r *Recommendation) error {
	r.ID = uuid.New()
	m.store[r.ID] = r
	return nil
}
func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Recommendation, error) {
	r, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}
func (m *mockRepo) GetByCase(_ context.Context, caseID uuid.UUID) (*Recommendation, error) {
	for _, r := range m.store {
		if r.CaseID == caseID {
			return r, nil
		}
	}
	return nil, ErrNotFound
}
func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

type mockCaseLinks struct {
	cleared []uuid.UUID
}

func (m *mockCaseLinks) ClearRecommendation(_ context.Context, caseID uuid.UUID) error {
	m.cleared = append(m.cleared, caseID)
	return nil
}

func many(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "item"
	}
	return out
}

func TestCreate_AppliesDisclaimer(t *testing.T) {
	svc := NewService(newMockRepo(), &mockCaseLinks{})
	rec := &Recommendation{CaseID: uuid.New(), Disclaimer: "short"}
	if err := svc.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Disclaimer != Disclaimer {
		t.Error("fixed disclaimer was not applied")
	}
	if len(rec.Disclaimer) < 50 {
		t.Error("disclaimer must be at least 50 characters")
	}
}

func TestCreate_MissingCase(t *testing.T) {
	svc := NewService(newMockRepo(), &mockCaseLinks{})
	if err := svc.Create(context.Background(), &Recommendation{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreate_SafetyArrayLimits(t *testing.T) {
	svc := NewService(newMockRepo(), &mockCaseLinks{})
	rec := &Recommendation{CaseID: uuid.New(), Contraindications: many(11)}
	if err := svc.Create(context.Background(), rec); err == nil {
		t.Fatal("expected error for too many contraindications")
	}
	rec = &Recommendation{CaseID: uuid.New(), RedFlags: many(11)}
	if err := svc.Create(context.Background(), rec); err == nil {
		t.Fatal("expected error for too many red flags")
	}
	rec = &Recommendation{CaseID: uuid.New(), Contraindications: many(10), RedFlags: many(10)}
	if err := svc.Create(context.Background(), rec); err != nil {
		t.Fatalf("10 items should be allowed: %v", err)
	}
}

func TestDelete_UnlinksCase(t *testing.T) {
	links := &mockCaseLinks{}
	svc := NewService(newMockRepo(), links)
	caseID := uuid.New()
	rec := &Recommendation{CaseID: caseID}
	svc.Create(context.Background(), rec)

	if err := svc.Delete(context.Background(), rec.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links.cleared) != 1 || links.cleared[0] != caseID {
		t.Error("case link was not cleared")
	}
	if _, err := svc.Get(context.Background(), rec.ID); err == nil {
		t.Error("recommendation should be gone")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(newMockRepo(), &mockCaseLinks{})
	if err := svc.Delete(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error")
	}
}
