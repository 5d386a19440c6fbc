package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/safety"
)

type Service struct {
	patients Repository
}

func NewService(repo Repository) *Service {
	return &Service{patients: repo}
}

var validGenders = map[string]bool{"M": true, "F": true, "O": true}

var validPrakritis = map[string]bool{
	"VATA": true, "PITTA": true, "KAPHA": true,
}

func validate(p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("age must be between 0 and 150")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if p.Prakriti != nil && !validPrakritis[*p.Prakriti] {
		return fmt.Errorf("invalid prakriti: %s", *p.Prakriti)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.FullName = safety.Sanitize(p.FullName)
	if err := validate(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	existing, err := s.patients.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.FullName = safety.Sanitize(p.FullName)
	if err := validate(p); err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	return s.patients.Update(ctx, p)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) FindByPhone(ctx context.Context, phone string) (*Patient, error) {
	return s.patients.SearchByPhone(ctx, phone)
}
