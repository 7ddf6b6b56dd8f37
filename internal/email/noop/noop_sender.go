package noop

import (
	"context"
	"log"

	"vibecheck/internal/domain"
	"vibecheck/internal/email"
	"vibecheck/internal/port"
)

type noopSender struct {
	recipients []string
}

// NewNoopSender creates a no-op EmailSender that logs reports to stdout.
func NewNoopSender(recipients []string) port.EmailSender {
	return &noopSender{recipients: recipients}
}

func (s *noopSender) SendUnmatchedReport(_ context.Context, report domain.UnmatchedReport) error {
	if report.Empty() {
		return nil
	}
	subject, text, _ := email.RenderUnmatchedReport(report)
	log.Printf("[NOOP EMAIL] %s (to %v)\n%s", subject, s.recipients, text)
	return nil
}
