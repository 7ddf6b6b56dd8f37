package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmbeddingService is a mock implementation of service.EmbeddingService.
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) EmbedPending(ctx context.Context, batchSize int) (int, error) {
	args := m.Called(ctx, batchSize)
	return args.Int(0), args.Error(1)
}
