package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

type electionRepo struct {
	db *sqlx.DB
}

// NewElectionRepo creates a new PostgreSQL-backed ElectionRepository.
func NewElectionRepo(db *sqlx.DB) port.ElectionRepository {
	return &electionRepo{db: db}
}

func (r *electionRepo) Upsert(ctx context.Context, election *domain.Election) error {
	query := `INSERT INTO elections (slug, name, city, date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			date = EXCLUDED.date,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		election.Slug, election.Name, election.City, election.Date,
	).Scan(&election.ID, &election.CreatedAt, &election.UpdatedAt)
	if err != nil {
		return fmt.Errorf("electionRepo.Upsert: %w", err)
	}
	return nil
}

func (r *electionRepo) GetBySlug(ctx context.Context, slug string) (*domain.Election, error) {
	var election domain.Election
	err := r.db.GetContext(ctx, &election, "SELECT * FROM elections WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrElectionNotFound
		}
		return nil, fmt.Errorf("electionRepo.GetBySlug: %w", err)
	}
	return &election, nil
}

// Current returns the election with the latest date.
func (r *electionRepo) Current(ctx context.Context) (*domain.Election, error) {
	var election domain.Election
	err := r.db.GetContext(ctx, &election, "SELECT * FROM elections ORDER BY date DESC, id DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrElectionNotFound
		}
		return nil, fmt.Errorf("electionRepo.Current: %w", err)
	}
	return &election, nil
}
