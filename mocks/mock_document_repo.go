package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) ReplaceForParty(ctx context.Context, partyID int64, sourceType domain.DocumentSourceType, docs []domain.Document) error {
	args := m.Called(ctx, partyID, sourceType, docs)
	return args.Error(0)
}

func (m *MockDocumentRepo) ListWithoutEmbedding(ctx context.Context, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) SetEmbedding(ctx context.Context, documentID int64, embedding []float32) error {
	args := m.Called(ctx, documentID, embedding)
	return args.Error(0)
}

func (m *MockDocumentRepo) Search(ctx context.Context, electionID int64, embedding []float32, topK int, partyIDs []int64) ([]domain.ScoredDocument, error) {
	args := m.Called(ctx, electionID, embedding, topK, partyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoredDocument), args.Error(1)
}
