package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
	"vibecheck/internal/port"
)

// DefaultMotionsFrom is the start of the council term whose motions are
// collected by default.
var DefaultMotionsFrom = time.Date(2022, time.March, 31, 0, 0, 0, 0, time.UTC)

// FetchMotionsInput bounds the meetings to read. Zero values default to
// DefaultMotionsFrom and today.
type FetchMotionsInput struct {
	From time.Time
	To   time.Time
}

// FetchMotionsResult summarizes a motion import.
type FetchMotionsResult struct {
	Fetched int                    `json:"fetched"`
	Stored  int                    `json:"stored"`
	Failed  int                    `json:"failed"`
	Report  domain.UnmatchedReport `json:"report"`
}

// MotionService imports council motions and links them to parties and
// candidates of the current election.
type MotionService interface {
	FetchMotions(ctx context.Context, input FetchMotionsInput) (*FetchMotionsResult, error)
}

type motionService struct {
	elections  port.ElectionRepository
	parties    port.PartyRepository
	candidates port.CandidateRepository
	motions    port.MotionRepository
	source     port.CouncilSource
	matcher    *match.PartyMatcher
	reports    ReportService
	now        func() time.Time
}

// NewMotionService creates a new MotionService implementation.
func NewMotionService(
	elections port.ElectionRepository,
	parties port.PartyRepository,
	candidates port.CandidateRepository,
	motions port.MotionRepository,
	source port.CouncilSource,
	matcher *match.PartyMatcher,
	reports ReportService,
) MotionService {
	return &motionService{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		motions:    motions,
		source:     source,
		matcher:    matcher,
		reports:    reports,
		now:        time.Now,
	}
}

func (s *motionService) FetchMotions(ctx context.Context, input FetchMotionsInput) (*FetchMotionsResult, error) {
	from, to := input.From, input.To
	if from.IsZero() {
		from = DefaultMotionsFrom
	}
	if to.IsZero() {
		to = s.now().UTC()
	}
	if to.Before(from) {
		return nil, fmt.Errorf("motion range: %s is after %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}
	parties, err := s.parties.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidates.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, err
	}
	partyRefs := matchParties(parties)
	candidateRefs := matchCandidates(candidates)

	log.Printf("motionService.FetchMotions: fetching motions %s to %s for %s",
		from.Format(time.DateOnly), to.Format(time.DateOnly), election.Slug)
	motions, err := s.source.FetchMotions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching motions: %w", err)
	}

	result := &FetchMotionsResult{Fetched: len(motions)}
	unmatchedParties := match.NewTally()
	unmatchedCandidates := match.NewTally()

	for i := range motions {
		m := &motions[i]
		if m.Title == "" {
			continue
		}
		record := s.link(election.ID, m, partyRefs, candidateRefs, unmatchedParties, unmatchedCandidates)
		if err := s.motions.Upsert(ctx, record); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("motionService.FetchMotions: WARNING: failed to store item %d: %v", m.ItemID, err)
			result.Failed++
			continue
		}
		result.Stored++
	}

	log.Printf("motionService.FetchMotions: stored %d of %d motions (%d failed)", result.Stored, result.Fetched, result.Failed)

	report, err := s.reports.Report(ctx, "notubiz", unmatchedParties, unmatchedCandidates)
	if err != nil {
		log.Printf("motionService.FetchMotions: WARNING: report not delivered: %v", err)
	}
	result.Report = report
	return result, nil
}

func (s *motionService) link(
	electionID int64,
	m *port.CouncilMotion,
	parties []match.Party,
	candidates []match.Candidate,
	unmatchedParties, unmatchedCandidates *match.Tally,
) *domain.MotionWithLinks {
	record := &domain.MotionWithLinks{
		Motion: domain.Motion{
			ElectionID:            electionID,
			NotubizItemID:         m.ItemID,
			Title:                 m.Title,
			MotionType:            optional(m.Type),
			Result:                optional(m.Result),
			SubmissionDate:        m.SubmissionDate,
			ResolutionDate:        m.ResolutionDate,
			Explanation:           optional(m.Explanation),
			DocumentURL:           optional(m.DocumentURL),
			ResolutionDocumentURL: optional(m.ResolutionDocumentURL),
		},
	}
	if m.MeetingEventID != 0 {
		id := m.MeetingEventID
		record.MeetingEventID = &id
	}

	for _, raw := range m.Parties {
		r := s.matcher.Match(raw, parties)
		unmatchedParties.Record(r)
		record.Parties = append(record.Parties, domain.MotionParty{
			PartyID:          r.IDPtr(),
			NotubizPartyName: raw,
		})
	}
	for _, sub := range m.Submitters {
		r := match.MatchCandidate(sub.Name, sub.ID, candidates)
		unmatchedCandidates.Record(r)
		record.Candidates = append(record.Candidates, domain.MotionCandidate{
			CandidateID:       r.IDPtr(),
			NotubizPersonName: sub.Name,
			NotubizPersonID:   sub.ID,
		})
	}
	return record
}
