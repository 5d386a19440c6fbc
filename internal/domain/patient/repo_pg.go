package patient

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

const patientCols = `id, full_name, age, gender, phone, district, state,
	prakriti, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FullName, &p.Age, &p.Gender, &p.Phone,
		&p.District, &p.State, &p.Prakriti, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, full_name, age, gender, phone, district, state, prakriti)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.FullName, p.Age, p.Gender, p.Phone, p.District, p.State, p.Prakriti)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient SET full_name=$2, age=$3, gender=$4, phone=$5,
			district=$6, state=$7, prakriti=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.Age, p.Gender, p.Phone, p.District, p.State, p.Prakriti)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) SearchByPhone(ctx context.Context, phone string) (*Patient, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE phone = $1`, phone))
}
