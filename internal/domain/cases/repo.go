package cases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicbridge/intake/internal/domain/patient"
	"github.com/clinicbridge/intake/internal/safety"
)

// ErrNotFound is returned by repositories when no case matches the id.
var ErrNotFound = errors.New("case not found")

// ErrVersionConflict is returned by Update when the case row changed under
// the writer. Callers retry by re-reading the case.
var ErrVersionConflict = errors.New("case version conflict")

// Filter narrows a case listing.
type Filter struct {
	PatientID *uuid.UUID
	Status    *safety.Status
	Priority  *safety.Priority
}

type Repository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	// Update applies a compare-and-set on the version column and returns
	// ErrVersionConflict when the stored version differs.
	Update(ctx context.Context, c *Case) error
	List(ctx context.Context, f Filter) ([]*Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PatientLookup is the seam to the patient domain; satisfied by
// patient.Repository.
type PatientLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}
