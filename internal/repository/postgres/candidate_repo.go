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

type candidateRepo struct {
	db *sqlx.DB
}

// NewCandidateRepo creates a new PostgreSQL-backed CandidateRepository.
func NewCandidateRepo(db *sqlx.DB) port.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) Upsert(ctx context.Context, candidate *domain.Candidate) error {
	query := `INSERT INTO candidates (party_id, name, position_on_list, bluesky_handle, linkedin_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (party_id, position_on_list) DO UPDATE SET
			name = EXCLUDED.name,
			bluesky_handle = EXCLUDED.bluesky_handle,
			linkedin_url = EXCLUDED.linkedin_url,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		candidate.PartyID, candidate.Name, candidate.PositionOnList,
		candidate.BlueskyHandle, candidate.LinkedInURL,
	).Scan(&candidate.ID, &candidate.CreatedAt, &candidate.UpdatedAt)
	if err != nil {
		return fmt.Errorf("candidateRepo.Upsert: %w", err)
	}
	return nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := r.db.GetContext(ctx, &candidate, "SELECT * FROM candidates WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("candidateRepo.GetByID: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepo) GetByPosition(ctx context.Context, partyID int64, position int) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := r.db.GetContext(ctx, &candidate,
		"SELECT * FROM candidates WHERE party_id = $1 AND position_on_list = $2", partyID, position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("candidateRepo.GetByPosition: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepo) ListByParty(ctx context.Context, partyID int64) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	err := r.db.SelectContext(ctx, &candidates,
		"SELECT * FROM candidates WHERE party_id = $1 ORDER BY position_on_list", partyID)
	if err != nil {
		return nil, fmt.Errorf("candidateRepo.ListByParty: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepo) ListByElection(ctx context.Context, electionID int64) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	err := r.db.SelectContext(ctx, &candidates,
		`SELECT c.* FROM candidates c
		JOIN parties p ON p.id = c.party_id
		WHERE p.election_id = $1
		ORDER BY p.name, c.position_on_list`, electionID)
	if err != nil {
		return nil, fmt.Errorf("candidateRepo.ListByElection: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepo) SetSocialSummary(ctx context.Context, candidateID int64, summary *string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE candidates SET social_summary = $1, updated_at = NOW() WHERE id = $2", summary, candidateID)
	if err != nil {
		return fmt.Errorf("candidateRepo.SetSocialSummary: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}
