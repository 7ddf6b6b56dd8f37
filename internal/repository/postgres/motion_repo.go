package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

type motionRepo struct {
	db *sqlx.DB
}

// NewMotionRepo creates a new PostgreSQL-backed MotionRepository.
func NewMotionRepo(db *sqlx.DB) port.MotionRepository {
	return &motionRepo{db: db}
}

// Upsert inserts or updates the motion by its Notubiz item id and recreates
// its party and candidate links.
func (r *motionRepo) Upsert(ctx context.Context, motion *domain.MotionWithLinks) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		m := &motion.Motion
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO motions (election_id, notubiz_item_id, title, motion_type, result,
				submission_date, resolution_date, explanation, document_url,
				resolution_document_url, meeting_event_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (notubiz_item_id) DO UPDATE SET
				election_id = EXCLUDED.election_id,
				title = EXCLUDED.title,
				motion_type = EXCLUDED.motion_type,
				result = EXCLUDED.result,
				submission_date = EXCLUDED.submission_date,
				resolution_date = EXCLUDED.resolution_date,
				explanation = EXCLUDED.explanation,
				document_url = EXCLUDED.document_url,
				resolution_document_url = EXCLUDED.resolution_document_url,
				meeting_event_id = EXCLUDED.meeting_event_id,
				updated_at = NOW()
			RETURNING id, created_at, updated_at`,
			m.ElectionID, m.NotubizItemID, m.Title, m.MotionType, m.Result,
			m.SubmissionDate, m.ResolutionDate, m.Explanation, m.DocumentURL,
			m.ResolutionDocumentURL, m.MeetingEventID,
		).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("upsert motion: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM motion_parties WHERE motion_id = $1", m.ID); err != nil {
			return fmt.Errorf("clear parties: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM motion_candidates WHERE motion_id = $1", m.ID); err != nil {
			return fmt.Errorf("clear candidates: %w", err)
		}

		for i := range motion.Parties {
			link := &motion.Parties[i]
			link.MotionID = m.ID
			err := tx.QueryRowxContext(ctx,
				`INSERT INTO motion_parties (motion_id, party_id, notubiz_party_name)
				VALUES ($1, $2, $3) RETURNING id`,
				link.MotionID, link.PartyID, link.NotubizPartyName,
			).Scan(&link.ID)
			if err != nil {
				return fmt.Errorf("insert party link: %w", err)
			}
		}
		for i := range motion.Candidates {
			link := &motion.Candidates[i]
			link.MotionID = m.ID
			err := tx.QueryRowxContext(ctx,
				`INSERT INTO motion_candidates (motion_id, candidate_id, notubiz_person_name, notubiz_person_id)
				VALUES ($1, $2, $3, $4) RETURNING id`,
				link.MotionID, link.CandidateID, link.NotubizPersonName, link.NotubizPersonID,
			).Scan(&link.ID)
			if err != nil {
				return fmt.Errorf("insert candidate link: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("motionRepo.Upsert: %w", err)
	}
	return nil
}

func (r *motionRepo) List(ctx context.Context, electionID int64, offset, limit int) ([]domain.Motion, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM motions WHERE election_id = $1", electionID)
	if err != nil {
		return nil, 0, fmt.Errorf("motionRepo.List count: %w", err)
	}

	var motions []domain.Motion
	err = r.db.SelectContext(ctx, &motions,
		`SELECT * FROM motions WHERE election_id = $1
		ORDER BY submission_date DESC NULLS LAST, id DESC LIMIT $2 OFFSET $3`,
		electionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("motionRepo.List: %w", err)
	}
	return motions, total, nil
}

func (r *motionRepo) ListByParty(ctx context.Context, partyID int64, offset, limit int) ([]domain.Motion, int, error) {
	const filter = `EXISTS (SELECT 1 FROM motion_parties mp WHERE mp.motion_id = m.id AND mp.party_id = $1)`

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM motions m WHERE "+filter, partyID)
	if err != nil {
		return nil, 0, fmt.Errorf("motionRepo.ListByParty count: %w", err)
	}

	var motions []domain.Motion
	err = r.db.SelectContext(ctx, &motions,
		"SELECT m.* FROM motions m WHERE "+filter+`
		ORDER BY m.submission_date DESC NULLS LAST, m.id DESC LIMIT $2 OFFSET $3`,
		partyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("motionRepo.ListByParty: %w", err)
	}
	return motions, total, nil
}
