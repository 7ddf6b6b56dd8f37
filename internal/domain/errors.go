package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrElectionNotFound  = errors.New("election not found")
	ErrPartyNotFound     = errors.New("party not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrPollNotFound      = errors.New("poll not found")
	ErrEmptyQuery        = errors.New("search query is empty")
	ErrInvalidMatchKind  = errors.New("invalid match kind")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrEmbeddingMismatch = errors.New("embedding count does not match input count")
)
