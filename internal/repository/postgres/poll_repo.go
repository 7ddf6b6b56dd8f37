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

type pollRepo struct {
	db *sqlx.DB
}

// NewPollRepo creates a new PostgreSQL-backed PollRepository.
func NewPollRepo(db *sqlx.DB) port.PollRepository {
	return &pollRepo{db: db}
}

// Upsert inserts or updates one edition of a poll and replaces its results.
func (r *pollRepo) Upsert(ctx context.Context, poll *domain.PollWithResults) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		p := &poll.Poll
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO polls (election_id, source_name, source_url, source_type,
				field_start, field_end, published_at, sample_size)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (election_id, source_url, field_end) DO UPDATE SET
				source_name = EXCLUDED.source_name,
				source_type = EXCLUDED.source_type,
				field_start = EXCLUDED.field_start,
				published_at = EXCLUDED.published_at,
				sample_size = EXCLUDED.sample_size,
				fetched_at = NOW()
			RETURNING id, fetched_at`,
			p.ElectionID, p.SourceName, p.SourceURL, p.SourceType,
			p.FieldStart, p.FieldEnd, p.PublishedAt, p.SampleSize,
		).Scan(&p.ID, &p.FetchedAt)
		if err != nil {
			return fmt.Errorf("upsert poll: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM poll_results WHERE poll_id = $1", p.ID); err != nil {
			return fmt.Errorf("clear results: %w", err)
		}
		for i := range poll.Results {
			res := &poll.Results[i]
			res.PollID = p.ID
			err := tx.QueryRowxContext(ctx,
				`INSERT INTO poll_results (poll_id, party_id, party_name_raw, percentage, seats)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				res.PollID, res.PartyID, res.PartyNameRaw, res.Percentage, res.Seats,
			).Scan(&res.ID)
			if err != nil {
				return fmt.Errorf("insert result: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pollRepo.Upsert: %w", err)
	}
	return nil
}

func (r *pollRepo) GetByID(ctx context.Context, id int64) (*domain.PollWithResults, error) {
	var poll domain.PollWithResults
	err := r.db.GetContext(ctx, &poll.Poll, "SELECT * FROM polls WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("pollRepo.GetByID: %w", err)
	}
	if err := r.loadResults(ctx, &poll); err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepo) List(ctx context.Context, electionID int64) ([]domain.Poll, error) {
	var polls []domain.Poll
	err := r.db.SelectContext(ctx, &polls,
		"SELECT * FROM polls WHERE election_id = $1 ORDER BY field_end DESC, id DESC", electionID)
	if err != nil {
		return nil, fmt.Errorf("pollRepo.List: %w", err)
	}
	return polls, nil
}

// Latest returns the poll with the most recent fieldwork end date.
func (r *pollRepo) Latest(ctx context.Context, electionID int64) (*domain.PollWithResults, error) {
	var poll domain.PollWithResults
	err := r.db.GetContext(ctx, &poll.Poll,
		"SELECT * FROM polls WHERE election_id = $1 ORDER BY field_end DESC, id DESC LIMIT 1", electionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("pollRepo.Latest: %w", err)
	}
	if err := r.loadResults(ctx, &poll); err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepo) loadResults(ctx context.Context, poll *domain.PollWithResults) error {
	err := r.db.SelectContext(ctx, &poll.Results,
		"SELECT * FROM poll_results WHERE poll_id = $1 ORDER BY id", poll.ID)
	if err != nil {
		return fmt.Errorf("pollRepo.loadResults: %w", err)
	}
	return nil
}
