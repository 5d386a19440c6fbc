package recommendation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CaseLinks is the seam back to the case domain: deleting a recommendation
// must clear the owning case's link so that generation can run again.
type CaseLinks interface {
	ClearRecommendation(ctx context.Context, caseID uuid.UUID) error
}

type Service struct {
	recs  Repository
	cases CaseLinks
}

func NewService(repo Repository, cases CaseLinks) *Service {
	return &Service{recs: repo, cases: cases}
}

// Create validates and persists a recommendation. The fixed disclaimer is
// always applied; safety arrays are capped at their documented limits.
func (s *Service) Create(ctx context.Context, rec *Recommendation) error {
	if rec.CaseID == uuid.Nil {
		return fmt.Errorf("case_id is required")
	}
	if len(rec.Contraindications) > maxSafetyItems {
		return fmt.Errorf("at most %d contraindications allowed", maxSafetyItems)
	}
	if len(rec.RedFlags) > maxSafetyItems {
		return fmt.Errorf("at most %d red flags allowed", maxSafetyItems)
	}
	rec.Disclaimer = Disclaimer
	return s.recs.Create(ctx, rec)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	return s.recs.GetByID(ctx, id)
}

func (s *Service) GetByCase(ctx context.Context, caseID uuid.UUID) (*Recommendation, error) {
	return s.recs.GetByCase(ctx, caseID)
}

// Delete removes a recommendation and unlinks it from its case, allowing a
// fresh generation run.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.recs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.recs.Delete(ctx, id); err != nil {
		return err
	}
	return s.cases.ClearRecommendation(ctx, rec.CaseID)
}
