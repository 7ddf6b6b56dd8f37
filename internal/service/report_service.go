package service

import (
	"context"
	"log"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
	"vibecheck/internal/port"
)

// ReportService publishes the labels a batch could not resolve so they can
// be curated into aliases or the election file.
type ReportService interface {
	Report(ctx context.Context, source string, parties, candidates *match.Tally) (domain.UnmatchedReport, error)
}

type reportService struct {
	sender port.EmailSender
}

// NewReportService creates a new ReportService implementation.
func NewReportService(sender port.EmailSender) ReportService {
	return &reportService{sender: sender}
}

func (s *reportService) Report(ctx context.Context, source string, parties, candidates *match.Tally) (domain.UnmatchedReport, error) {
	report := domain.UnmatchedReport{
		Source:     source,
		Parties:    unmatchedNames(parties),
		Candidates: unmatchedNames(candidates),
	}
	if report.Empty() {
		log.Printf("reportService.Report: all %s names matched", source)
		return report, nil
	}

	logNames(source, "party", report.Parties)
	logNames(source, "candidate", report.Candidates)

	if err := s.sender.SendUnmatchedReport(ctx, report); err != nil {
		log.Printf("reportService.Report: WARNING: failed to send %s report: %v", source, err)
		return report, err
	}
	return report, nil
}

func logNames(source, kind string, names []domain.UnmatchedName) {
	if len(names) == 0 {
		return
	}
	log.Printf("reportService.Report: %d unmatched %s names from %s:", len(names), kind, source)
	for _, n := range names {
		log.Printf("  %4dx %s", n.Count, n.Label)
	}
}
