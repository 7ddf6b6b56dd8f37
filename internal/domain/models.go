package domain

import (
	"encoding/json"
	"time"
)

// Election is one municipal election.
type Election struct {
	ID        int64     `db:"id" json:"id"`
	Slug      string    `db:"slug" json:"slug"`
	Name      string    `db:"name" json:"name"`
	City      string    `db:"city" json:"city"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Party is a party on the ballot of an election.
type Party struct {
	ID            int64      `db:"id" json:"id"`
	ElectionID    int64      `db:"election_id" json:"election_id"`
	Name          string     `db:"name" json:"name"`
	Abbreviation  string     `db:"abbreviation" json:"abbreviation"`
	LogoURL       *string    `db:"logo_url" json:"logo_url,omitempty"`
	WebsiteURL    *string    `db:"website_url" json:"website_url,omitempty"`
	ProgramText   *string    `db:"program_text" json:"-"`
	Description   *string    `db:"description" json:"description,omitempty"`
	MotionSummary *string    `db:"motion_summary" json:"motion_summary,omitempty"`
	CurrentSeats  *int       `db:"current_seats" json:"current_seats,omitempty"`
	PolledSeats   *int       `db:"polled_seats" json:"polled_seats,omitempty"`
	PollUpdatedAt *time.Time `db:"poll_updated_at" json:"poll_updated_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Candidate is a person on a party's list.
type Candidate struct {
	ID             int64     `db:"id" json:"id"`
	PartyID        int64     `db:"party_id" json:"party_id"`
	Name           string    `db:"name" json:"name"`
	PositionOnList int       `db:"position_on_list" json:"position_on_list"`
	BlueskyHandle  *string   `db:"bluesky_handle" json:"bluesky_handle,omitempty"`
	LinkedInURL    *string   `db:"linkedin_url" json:"linkedin_url,omitempty"`
	SocialSummary  *string   `db:"social_summary" json:"social_summary,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Document is a retrievable chunk of party material.
type Document struct {
	ID         int64              `db:"id" json:"id"`
	PartyID    int64              `db:"party_id" json:"party_id"`
	SourceType DocumentSourceType `db:"source_type" json:"source_type"`
	Content    string             `db:"content" json:"content"`
	Metadata   json.RawMessage    `db:"metadata" json:"metadata"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

// ChunkMetadata is stored with every program chunk.
type ChunkMetadata struct {
	ChunkIndex  int `json:"chunk_index"`
	TotalChunks int `json:"total_chunks"`
	PageStart   int `json:"page_start"`
	PageEnd     int `json:"page_end"`
}

// ScoredDocument is a search hit with its party.
type ScoredDocument struct {
	Document
	PartyName         string  `db:"party_name" json:"party_name"`
	PartyAbbreviation string  `db:"party_abbreviation" json:"party_abbreviation"`
	Distance          float64 `db:"distance" json:"distance"`
}

// Motion is a council motion or amendment.
type Motion struct {
	ID                    int64      `db:"id" json:"id"`
	ElectionID            int64      `db:"election_id" json:"election_id"`
	NotubizItemID         int64      `db:"notubiz_item_id" json:"notubiz_item_id"`
	Title                 string     `db:"title" json:"title"`
	MotionType            *string    `db:"motion_type" json:"motion_type,omitempty"`
	Result                *string    `db:"result" json:"result,omitempty"`
	SubmissionDate        *time.Time `db:"submission_date" json:"submission_date,omitempty"`
	ResolutionDate        *time.Time `db:"resolution_date" json:"resolution_date,omitempty"`
	Explanation           *string    `db:"explanation" json:"explanation,omitempty"`
	DocumentURL           *string    `db:"document_url" json:"document_url,omitempty"`
	ResolutionDocumentURL *string    `db:"resolution_document_url" json:"resolution_document_url,omitempty"`
	MeetingEventID        *int64     `db:"meeting_event_id" json:"meeting_event_id,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// MotionParty links a motion to a submitting party. PartyID is nil when
// the council's party label did not resolve.
type MotionParty struct {
	ID               int64  `db:"id" json:"id"`
	MotionID         int64  `db:"motion_id" json:"motion_id"`
	PartyID          *int64 `db:"party_id" json:"party_id,omitempty"`
	NotubizPartyName string `db:"notubiz_party_name" json:"notubiz_party_name"`
}

// MotionCandidate links a motion to a submitting council member.
type MotionCandidate struct {
	ID                int64  `db:"id" json:"id"`
	MotionID          int64  `db:"motion_id" json:"motion_id"`
	CandidateID       *int64 `db:"candidate_id" json:"candidate_id,omitempty"`
	NotubizPersonName string `db:"notubiz_person_name" json:"notubiz_person_name"`
	NotubizPersonID   *int64 `db:"notubiz_person_id" json:"notubiz_person_id,omitempty"`
}

// MotionWithLinks is a motion with its submitters.
type MotionWithLinks struct {
	Motion
	Parties    []MotionParty     `json:"parties"`
	Candidates []MotionCandidate `json:"candidates"`
}

// Poll is one published opinion poll.
type Poll struct {
	ID          int64      `db:"id" json:"id"`
	ElectionID  int64      `db:"election_id" json:"election_id"`
	SourceName  string     `db:"source_name" json:"source_name"`
	SourceURL   string     `db:"source_url" json:"source_url"`
	SourceType  string     `db:"source_type" json:"source_type"`
	FieldStart  *time.Time `db:"field_start" json:"field_start,omitempty"`
	FieldEnd    time.Time  `db:"field_end" json:"field_end"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	SampleSize  *int       `db:"sample_size" json:"sample_size,omitempty"`
	FetchedAt   time.Time  `db:"fetched_at" json:"fetched_at"`
}

// PollResult is one party line of a poll. PartyID is nil when the
// publisher's label did not resolve; PartyNameRaw is always kept.
type PollResult struct {
	ID           int64    `db:"id" json:"id"`
	PollID       int64    `db:"poll_id" json:"poll_id"`
	PartyID      *int64   `db:"party_id" json:"party_id,omitempty"`
	PartyNameRaw string   `db:"party_name_raw" json:"party_name_raw"`
	Percentage   *float64 `db:"percentage" json:"percentage,omitempty"`
	Seats        *int     `db:"seats" json:"seats,omitempty"`
}

// PollWithResults is a poll with its result lines.
type PollWithResults struct {
	Poll
	Results []PollResult `json:"results"`
}

// SocialPost is a post by a candidate on a social platform.
type SocialPost struct {
	ID          int64           `db:"id" json:"id"`
	CandidateID int64           `db:"candidate_id" json:"candidate_id"`
	Platform    SocialPlatform  `db:"platform" json:"platform"`
	URI         string          `db:"uri" json:"uri"`
	Text        string          `db:"text" json:"text"`
	PostedAt    time.Time       `db:"posted_at" json:"posted_at"`
	LikeCount   int             `db:"like_count" json:"like_count"`
	ReplyCount  int             `db:"reply_count" json:"reply_count"`
	RepostCount int             `db:"repost_count" json:"repost_count"`
	EmbedJSON   json.RawMessage `db:"embed_json" json:"embed_json,omitempty"`
	FetchedAt   time.Time       `db:"fetched_at" json:"fetched_at"`
}

// TopicComparison holds each party's position on one topic, keyed by
// party name. A reply the model did not format as an object is kept
// under "raw_response".
type TopicComparison struct {
	ID         int64           `db:"id" json:"id"`
	ElectionID int64           `db:"election_id" json:"election_id"`
	TopicName  string          `db:"topic_name" json:"topic_name"`
	Comparison json.RawMessage `db:"comparison_json" json:"comparison"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// UnmatchedReport lists the labels a batch could not resolve, most common first.
type UnmatchedReport struct {
	Source     string          `json:"source"`
	Parties    []UnmatchedName `json:"parties"`
	Candidates []UnmatchedName `json:"candidates"`
}

// UnmatchedName is one unresolved label and its frequency.
type UnmatchedName struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Empty reports whether there is nothing to curate.
func (r UnmatchedReport) Empty() bool {
	return len(r.Parties) == 0 && len(r.Candidates) == 0
}
