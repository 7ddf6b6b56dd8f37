package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendUnmatchedReport(ctx context.Context, report domain.UnmatchedReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
