package recommendation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const recCols = `id, case_id, allopathy, ayurveda, contraindications,
	red_flags, cost_estimate, urgency_level, suggested_follow_up,
	confidence_score, ai_generated, disclaimer, created_at`

func (r *repoPG) scan(row pgx.Row) (*Recommendation, error) {
	var rec Recommendation
	err := row.Scan(&rec.ID, &rec.CaseID, &rec.Allopathy, &rec.Ayurveda,
		&rec.Contraindications, &rec.RedFlags, &rec.CostEstimate,
		&rec.UrgencyLevel, &rec.SuggestedFollowUp, &rec.ConfidenceScore,
		&rec.AIGenerated, &rec.Disclaimer, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &rec, err
}

func (r *repoPG) Create(ctx context.Context, rec *Recommendation) error {
	rec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recommendation (id, case_id, allopathy, ayurveda,
			contraindications, red_flags, cost_estimate, urgency_level,
			suggested_follow_up, confidence_score, ai_generated, disclaimer)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		rec.ID, rec.CaseID, rec.Allopathy, rec.Ayurveda,
		rec.Contraindications, rec.RedFlags, rec.CostEstimate,
		rec.UrgencyLevel, rec.SuggestedFollowUp, rec.ConfidenceScore,
		rec.AIGenerated, rec.Disclaimer)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+recCols+` FROM recommendation WHERE id = $1`, id))
}

func (r *repoPG) GetByCase(ctx context.Context, caseID uuid.UUID) (*Recommendation, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+recCols+` FROM recommendation WHERE case_id = $1`, caseID))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM recommendation WHERE id = $1`, id)
	return err
}
