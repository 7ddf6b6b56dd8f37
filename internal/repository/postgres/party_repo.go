package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

type partyRepo struct {
	db *sqlx.DB
}

// NewPartyRepo creates a new PostgreSQL-backed PartyRepository.
func NewPartyRepo(db *sqlx.DB) port.PartyRepository {
	return &partyRepo{db: db}
}

func (r *partyRepo) Upsert(ctx context.Context, party *domain.Party) error {
	query := `INSERT INTO parties (election_id, name, abbreviation, logo_url, website_url,
			current_seats, polled_seats, poll_updated_at)
		VALUES (:election_id, :name, :abbreviation, :logo_url, :website_url,
			:current_seats, :polled_seats, :poll_updated_at)
		ON CONFLICT (election_id, name) DO UPDATE SET
			abbreviation = EXCLUDED.abbreviation,
			logo_url = EXCLUDED.logo_url,
			website_url = EXCLUDED.website_url,
			current_seats = EXCLUDED.current_seats,
			polled_seats = EXCLUDED.polled_seats,
			poll_updated_at = EXCLUDED.poll_updated_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, party)
	if err != nil {
		return fmt.Errorf("partyRepo.Upsert: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&party.ID, &party.CreatedAt, &party.UpdatedAt); err != nil {
			return fmt.Errorf("partyRepo.Upsert scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *partyRepo) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	var party domain.Party
	err := r.db.GetContext(ctx, &party, "SELECT * FROM parties WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("partyRepo.GetByID: %w", err)
	}
	return &party, nil
}

func (r *partyRepo) ListByElection(ctx context.Context, electionID int64) ([]domain.Party, error) {
	var parties []domain.Party
	err := r.db.SelectContext(ctx, &parties,
		`SELECT * FROM parties WHERE election_id = $1
		ORDER BY current_seats DESC NULLS LAST, name`, electionID)
	if err != nil {
		return nil, fmt.Errorf("partyRepo.ListByElection: %w", err)
	}
	return parties, nil
}

func (r *partyRepo) UpdateProgramText(ctx context.Context, partyID int64, text string) error {
	return r.updateColumn(ctx, "program_text", partyID, text)
}

func (r *partyRepo) UpdateDescription(ctx context.Context, partyID int64, description string) error {
	return r.updateColumn(ctx, "description", partyID, description)
}

func (r *partyRepo) UpdateMotionSummary(ctx context.Context, partyID int64, summary string) error {
	return r.updateColumn(ctx, "motion_summary", partyID, summary)
}

func (r *partyRepo) UpdatePolledSeats(ctx context.Context, partyID int64, seats int, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE parties SET polled_seats = $1, poll_updated_at = $2, updated_at = NOW() WHERE id = $3",
		seats, updatedAt, partyID)
	if err != nil {
		return fmt.Errorf("partyRepo.UpdatePolledSeats: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPartyNotFound
	}
	return nil
}

// updateColumn sets a single text column. column is never user input.
func (r *partyRepo) updateColumn(ctx context.Context, column string, partyID int64, value string) error {
	query := fmt.Sprintf("UPDATE parties SET %s = $1, updated_at = NOW() WHERE id = $2", column)
	result, err := r.db.ExecContext(ctx, query, value, partyID)
	if err != nil {
		return fmt.Errorf("partyRepo.update %s: %w", column, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPartyNotFound
	}
	return nil
}
