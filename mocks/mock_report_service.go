package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Report(ctx context.Context, source string, parties, candidates *match.Tally) (domain.UnmatchedReport, error) {
	args := m.Called(ctx, source, parties, candidates)
	return args.Get(0).(domain.UnmatchedReport), args.Error(1)
}
