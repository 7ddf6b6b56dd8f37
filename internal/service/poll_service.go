package service

import (
	"context"
	"log"
	"time"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
	"vibecheck/internal/polls"
	"vibecheck/internal/port"
)

// PollSummary describes one stored poll of a fetch run.
type PollSummary struct {
	PollID    int64  `json:"poll_id"`
	Source    string `json:"source"`
	FieldEnd  string `json:"field_end"`
	Results   int    `json:"results"`
	Unmatched int    `json:"unmatched"`
}

// FetchPollsResult summarizes a poll fetch run.
type FetchPollsResult struct {
	Polls   []PollSummary          `json:"polls"`
	Skipped int                    `json:"skipped"`
	Failed  int                    `json:"failed"`
	Report  domain.UnmatchedReport `json:"report"`
}

// PollService reads polls from their publishers and serves them.
type PollService interface {
	FetchPolls(ctx context.Context, sources []polls.Source) (*FetchPollsResult, error)
	RefreshPolledSeats(ctx context.Context) error
	List(ctx context.Context) ([]domain.Poll, error)
	Latest(ctx context.Context) (*domain.PollWithResults, error)
	Get(ctx context.Context, id int64) (*domain.PollWithResults, error)
}

type pollService struct {
	elections port.ElectionRepository
	parties   port.PartyRepository
	polls     port.PollRepository
	scrapers  polls.Registry
	matcher   *match.PartyMatcher
	reports   ReportService
	now       func() time.Time
}

// NewPollService creates a new PollService implementation.
func NewPollService(
	elections port.ElectionRepository,
	parties port.PartyRepository,
	pollRepo port.PollRepository,
	scrapers polls.Registry,
	matcher *match.PartyMatcher,
	reports ReportService,
) PollService {
	return &pollService{
		elections: elections,
		parties:   parties,
		polls:     pollRepo,
		scrapers:  scrapers,
		matcher:   matcher,
		reports:   reports,
		now:       time.Now,
	}
}

func (s *pollService) FetchPolls(ctx context.Context, sources []polls.Source) (*FetchPollsResult, error) {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}
	parties, err := s.parties.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, err
	}
	refs := matchParties(parties)

	result := &FetchPollsResult{}
	unmatched := match.NewTally()

	for _, src := range sources {
		if !src.Enabled {
			log.Printf("pollService.FetchPolls: skipping disabled source %s", src.Name)
			result.Skipped++
			continue
		}
		scraper, err := s.scrapers.Lookup(src.Type)
		if err != nil {
			log.Printf("pollService.FetchPolls: WARNING: %s: %v", src.Name, err)
			result.Skipped++
			continue
		}

		scraped, err := scraper.Scrape(ctx, src)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("pollService.FetchPolls: WARNING: %s: %v", src.Name, err)
			result.Failed++
			continue
		}

		poll, summary := s.build(election.ID, src, scraped, refs, unmatched)
		if err := s.polls.Upsert(ctx, poll); err != nil {
			log.Printf("pollService.FetchPolls: WARNING: failed to store poll from %s: %v", src.Name, err)
			result.Failed++
			continue
		}
		summary.PollID = poll.ID
		result.Polls = append(result.Polls, summary)
		log.Printf("pollService.FetchPolls: stored %s poll (field end %s, %d results, %d unmatched)",
			src.Name, summary.FieldEnd, summary.Results, summary.Unmatched)
	}

	report, err := s.reports.Report(ctx, "polls", unmatched, nil)
	if err != nil {
		log.Printf("pollService.FetchPolls: WARNING: report not delivered: %v", err)
	}
	result.Report = report

	if len(result.Polls) > 0 {
		if err := s.RefreshPolledSeats(ctx); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *pollService) build(
	electionID int64,
	src polls.Source,
	scraped *polls.Scraped,
	parties []match.Party,
	unmatched *match.Tally,
) (*domain.PollWithResults, PollSummary) {
	fieldEnd := s.today()
	if scraped.FieldEnd != nil {
		fieldEnd = *scraped.FieldEnd
	} else {
		log.Printf("pollService.FetchPolls: WARNING: %s has no fieldwork end date, using today", src.Name)
	}

	poll := &domain.PollWithResults{
		Poll: domain.Poll{
			ElectionID:  electionID,
			SourceName:  src.Name,
			SourceURL:   src.URL,
			SourceType:  src.Type,
			FieldStart:  scraped.FieldStart,
			FieldEnd:    fieldEnd,
			PublishedAt: scraped.PublishedAt,
			SampleSize:  scraped.SampleSize,
		},
	}
	summary := PollSummary{Source: src.Name, FieldEnd: fieldEnd.Format(time.DateOnly)}

	for _, row := range scraped.Results {
		r := s.matcher.MatchFuzzy(row.PartyNameRaw, parties)
		if unmatched.Record(r) {
			summary.Unmatched++
		}
		poll.Results = append(poll.Results, domain.PollResult{
			PartyID:      r.IDPtr(),
			PartyNameRaw: row.PartyNameRaw,
			Percentage:   row.Percentage,
			Seats:        row.Seats,
		})
	}
	summary.Results = len(poll.Results)
	return poll, summary
}

// RefreshPolledSeats copies the seat projection of the newest poll that has
// one onto the parties.
func (s *pollService) RefreshPolledSeats(ctx context.Context) error {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return err
	}
	list, err := s.polls.List(ctx, election.ID)
	if err != nil {
		return err
	}

	for _, p := range list {
		poll, err := s.polls.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		updated := 0
		for _, r := range poll.Results {
			if r.PartyID == nil || r.Seats == nil {
				continue
			}
			if err := s.parties.UpdatePolledSeats(ctx, *r.PartyID, *r.Seats, poll.FieldEnd); err != nil {
				return err
			}
			updated++
		}
		if updated > 0 {
			log.Printf("pollService.RefreshPolledSeats: updated %d parties from %s (%s)",
				updated, poll.SourceName, poll.FieldEnd.Format(time.DateOnly))
			return nil
		}
	}
	log.Printf("pollService.RefreshPolledSeats: no poll with seat projections")
	return nil
}

func (s *pollService) List(ctx context.Context) ([]domain.Poll, error) {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.polls.List(ctx, election.ID)
}

func (s *pollService) Latest(ctx context.Context) (*domain.PollWithResults, error) {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.polls.Latest(ctx, election.ID)
}

func (s *pollService) Get(ctx context.Context, id int64) (*domain.PollWithResults, error) {
	return s.polls.GetByID(ctx, id)
}

func (s *pollService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
