package port

import (
	"context"

	"vibecheck/internal/domain"
)

// EmailSender defines the contract for sending curation emails.
type EmailSender interface {
	SendUnmatchedReport(ctx context.Context, report domain.UnmatchedReport) error
}
