package cases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const caseCols = `id, patient_id, status, priority, chief_complaint,
	symptom_duration, raw_notes, vital_signs, attachments,
	structured_summary, clinical_flags, doctor_notes, doctor_decision,
	reviewed_by, reviewed_at, recommendation_id, processing_status,
	version, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Case, error) {
	var c Case
	err := row.Scan(&c.ID, &c.PatientID, &c.Status, &c.Priority, &c.ChiefComplaint,
		&c.SymptomDuration, &c.RawNotes, &c.VitalSigns, &c.Attachments,
		&c.StructuredSummary, &c.ClinicalFlags, &c.DoctorNotes, &c.DoctorDecision,
		&c.ReviewedBy, &c.ReviewedAt, &c.RecommendationID, &c.ProcessingStatus,
		&c.Version, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Case) error {
	c.ID = uuid.New()
	c.Version = 1
	_, err := r.pool.Exec(ctx, `
		INSERT INTO intake_case (id, patient_id, status, priority, chief_complaint,
			symptom_duration, raw_notes, vital_signs, attachments,
			processing_status, version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.PatientID, c.Status, c.Priority, c.ChiefComplaint,
		c.SymptomDuration, c.RawNotes, c.VitalSigns, c.Attachments,
		c.ProcessingStatus, c.Version)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+caseCols+` FROM intake_case WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, c *Case) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE intake_case SET
			status=$3, priority=$4, chief_complaint=$5, symptom_duration=$6,
			raw_notes=$7, vital_signs=$8, attachments=$9, structured_summary=$10,
			clinical_flags=$11, doctor_notes=$12, doctor_decision=$13,
			reviewed_by=$14, reviewed_at=$15, recommendation_id=$16,
			processing_status=$17, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2`,
		c.ID, c.Version,
		c.Status, c.Priority, c.ChiefComplaint, c.SymptomDuration,
		c.RawNotes, c.VitalSigns, c.Attachments, c.StructuredSummary,
		c.ClinicalFlags, c.DoctorNotes, c.DoctorDecision,
		c.ReviewedBy, c.ReviewedAt, c.RecommendationID,
		c.ProcessingStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, c.ID); errors.Is(getErr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	c.Version++
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter) ([]*Case, error) {
	query := `SELECT ` + caseCols + ` FROM intake_case WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.PatientID != nil {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, *f.PatientID)
		idx++
	}
	if f.Status != nil {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, *f.Status)
		idx++
	}
	if f.Priority != nil {
		query += fmt.Sprintf(` AND priority = $%d`, idx)
		args = append(args, *f.Priority)
		idx++
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Case
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM intake_case WHERE id = $1`, id)
	return err
}
