package port

import (
	"context"
	"encoding/json"
	"time"

	"vibecheck/internal/match"
)

// CouncilSubmitter is a council member named on a motion.
type CouncilSubmitter struct {
	ID   *int64
	Name string
}

// CouncilMotion is a motion as published by the council information system.
type CouncilMotion struct {
	ItemID                int64
	MeetingEventID        int64
	Title                 string
	Type                  string
	Result                string
	SubmissionDate        *time.Time
	ResolutionDate        *time.Time
	Explanation           string
	DocumentURL           string
	ResolutionDocumentURL string
	Parties               []string
	Submitters            []CouncilSubmitter
}

// CouncilSource lists the motions handled in council meetings within a date range.
type CouncilSource interface {
	FetchMotions(ctx context.Context, from, to time.Time) ([]CouncilMotion, error)
}

// FeedPost is a post read from a social feed.
type FeedPost struct {
	URI         string
	Text        string
	CreatedAt   time.Time
	LikeCount   int
	ReplyCount  int
	RepostCount int
	Embed       json.RawMessage
}

// FeedSource reads a user's recent posts.
type FeedSource interface {
	AuthorFeed(ctx context.Context, handle string, limit int) ([]FeedPost, error)
}

// ProfileQuery describes the person a profile search is for.
type ProfileQuery struct {
	Name  string
	Party string
	City  string
}

// ProfileFinder searches a platform for profiles that may belong to a person.
type ProfileFinder interface {
	FindProfiles(ctx context.Context, q ProfileQuery) ([]match.Profile, error)
}
