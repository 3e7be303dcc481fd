package leads

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, lead Lead) (Lead, error) {
	const query = `
INSERT INTO leads (id, email, name, website_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name,
  website_url = EXCLUDED.website_url,
  updated_at = now()
RETURNING id, email, name, website_url, created_at, updated_at`
	var out Lead
	err := r.DB.QueryRowContext(ctx, query,
		lead.ID,
		lead.Email,
		lead.Name,
		lead.WebsiteURL,
	).Scan(
		&out.ID,
		&out.Email,
		&out.Name,
		&out.WebsiteURL,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, leadID string) (Lead, error) {
	const query = `
SELECT id, email, name, website_url, created_at, updated_at
FROM leads
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, leadID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Lead, error) {
	const query = `
SELECT id, email, name, website_url, created_at, updated_at
FROM leads
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) scanOne(row *sql.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID,
		&lead.Email,
		&lead.Name,
		&lead.WebsiteURL,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}
