package service

import (
	"context"
	"log"
	"strings"
	"time"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

// FeedPostLimit is how many recent posts are read per candidate.
const FeedPostLimit = 25

// FetchSocialResult summarizes a social fetch run.
type FetchSocialResult struct {
	Candidates int `json:"candidates"`
	Posts      int `json:"posts"`
	Summaries  int `json:"summaries"`
	Failed     int `json:"failed"`
}

// SocialService reads candidates' Bluesky feeds and summarizes them.
type SocialService interface {
	FetchSocial(ctx context.Context, partyFilter string) (*FetchSocialResult, error)
}

type socialService struct {
	elections  port.ElectionRepository
	parties    port.PartyRepository
	candidates port.CandidateRepository
	posts      port.SocialPostRepository
	feed       port.FeedSource
	summaries  SummaryService
	now        func() time.Time
}

// NewSocialService creates a new SocialService implementation.
func NewSocialService(
	elections port.ElectionRepository,
	parties port.PartyRepository,
	candidates port.CandidateRepository,
	posts port.SocialPostRepository,
	feed port.FeedSource,
	summaries SummaryService,
) SocialService {
	return &socialService{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		posts:      posts,
		feed:       feed,
		summaries:  summaries,
		now:        time.Now,
	}
}

func (s *socialService) FetchSocial(ctx context.Context, partyFilter string) (*FetchSocialResult, error) {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}
	parties, err := s.parties.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, err
	}
	selected := make(map[int64]bool)
	for _, p := range filterParties(parties, partyFilter) {
		selected[p.ID] = true
	}
	if len(selected) == 0 {
		log.Printf("socialService.FetchSocial: WARNING: no party matches %q", partyFilter)
		return &FetchSocialResult{}, nil
	}

	candidates, err := s.candidates.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, err
	}

	result := &FetchSocialResult{}
	for i := range candidates {
		c := &candidates[i]
		if c.BlueskyHandle == nil || !selected[c.PartyID] {
			continue
		}
		result.Candidates++

		texts, err := s.fetchCandidate(ctx, c)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("socialService.FetchSocial: WARNING: %s (%s): %v", c.Name, *c.BlueskyHandle, err)
			result.Failed++
			continue
		}
		result.Posts += len(texts)
		if len(texts) == 0 {
			continue
		}

		summary, err := s.summaries.SummarizeSocial(ctx, election, c.Name, texts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("socialService.FetchSocial: WARNING: summary for %s failed: %v", c.Name, err)
			continue
		}
		if err := s.candidates.SetSocialSummary(ctx, c.ID, &summary); err != nil {
			return nil, err
		}
		result.Summaries++
	}

	log.Printf("socialService.FetchSocial: %d candidates, %d posts, %d summaries, %d failed",
		result.Candidates, result.Posts, result.Summaries, result.Failed)
	return result, nil
}

// fetchCandidate stores the candidate's recent posts and returns their texts.
func (s *socialService) fetchCandidate(ctx context.Context, c *domain.Candidate) ([]string, error) {
	handle := strings.TrimPrefix(*c.BlueskyHandle, "@")
	feed, err := s.feed.AuthorFeed(ctx, handle, FeedPostLimit)
	if err != nil {
		return nil, err
	}

	fetchedAt := s.now().UTC()
	texts := make([]string, 0, len(feed))
	for _, fp := range feed {
		post := &domain.SocialPost{
			CandidateID: c.ID,
			Platform:    domain.PlatformBluesky,
			URI:         fp.URI,
			Text:        fp.Text,
			PostedAt:    fp.CreatedAt,
			LikeCount:   fp.LikeCount,
			ReplyCount:  fp.ReplyCount,
			RepostCount: fp.RepostCount,
			EmbedJSON:   fp.Embed,
			FetchedAt:   fetchedAt,
		}
		if err := s.posts.Upsert(ctx, post); err != nil {
			return nil, err
		}
		texts = append(texts, fp.Text)
	}
	return texts, nil
}
