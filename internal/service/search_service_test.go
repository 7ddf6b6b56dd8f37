package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
	"vibecheck/internal/service"
	"vibecheck/mocks"
)

type searchDeps struct {
	elections *mocks.MockElectionRepo
	documents *mocks.MockDocumentRepo
	embedder  *mocks.MockEmbedder
	generator *mocks.MockTextGenerator
}

func newSearchService() (service.SearchService, searchDeps) {
	d := searchDeps{
		elections: new(mocks.MockElectionRepo),
		documents: new(mocks.MockDocumentRepo),
		embedder:  new(mocks.MockEmbedder),
		generator: new(mocks.MockTextGenerator),
	}
	return service.NewSearchService(d.elections, d.documents, d.embedder, d.generator), d
}

func chunkMeta(t *testing.T, start, end int) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(domain.ChunkMetadata{PageStart: start, PageEnd: end})
	require.NoError(t, err)
	return raw
}

func TestSearchService_Search_Success(t *testing.T) {
	svc, d := newSearchService()
	long := strings.Repeat("woningbouw ", 30)

	d.elections.On("Current", mock.Anything).Return(testElection(), nil)
	d.embedder.On("Embed", mock.Anything, []string{"Wat willen partijen met wonen?"}).
		Return([][]float32{{0.1, 0.2}}, nil)
	d.documents.On("Search", mock.Anything, int64(1), []float32{0.1, 0.2}, 5, []int64{10, 11}).
		Return([]domain.ScoredDocument{
			{
				Document:          domain.Document{PartyID: 10, Content: long, Metadata: chunkMeta(t, 4, 5)},
				PartyName:         "GroenLinks",
				PartyAbbreviation: "GL",
				Distance:          0.1234,
			},
			{
				Document:  domain.Document{PartyID: 11, Content: "Betaalbaar wonen.", Metadata: chunkMeta(t, 2, 2)},
				PartyName: "PvdA",
				Distance:  0.3,
			},
		}, nil)
	d.generator.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return strings.Contains(in.Prompt, "[GL]: woningbouw") && strings.Contains(in.Prompt, "[PvdA]: Betaalbaar wonen.")
	})).Return(&port.GenerateOutput{Text: "Beide partijen willen meer bouwen."}, nil)

	answer, err := svc.Search(context.Background(), service.SearchInput{
		Query:    "  Wat willen partijen met wonen?  ",
		TopK:     5,
		PartyIDs: []int64{10, 11},
	})

	require.NoError(t, err)
	assert.Equal(t, "Beide partijen willen meer bouwen.", answer.Answer)
	require.Len(t, answer.Sources, 2)

	gl := answer.Sources[0]
	assert.Equal(t, 0.877, gl.Score)
	assert.True(t, strings.HasSuffix(gl.Preview, "..."))
	assert.Len(t, []rune(gl.Preview), 203)
	require.NotNil(t, gl.PageStart)
	require.NotNil(t, gl.PageEnd)
	assert.Equal(t, 4, *gl.PageStart)
	assert.Equal(t, 5, *gl.PageEnd)

	pvda := answer.Sources[1]
	assert.Equal(t, "Betaalbaar wonen.", pvda.Preview)
	assert.Equal(t, 0.7, pvda.Score)
	require.NotNil(t, pvda.PageStart)
	assert.Nil(t, pvda.PageEnd)
}

func TestSearchService_Search_TopKBounds(t *testing.T) {
	svc, d := newSearchService()
	d.elections.On("Current", mock.Anything).Return(testElection(), nil)
	d.embedder.On("Embed", mock.Anything, mock.Anything).Return([][]float32{{0.5}}, nil)
	d.documents.On("Search", mock.Anything, int64(1), mock.Anything, service.MaxTopK, mock.Anything).
		Return([]domain.ScoredDocument{}, nil).Once()
	d.documents.On("Search", mock.Anything, int64(1), mock.Anything, service.DefaultTopK, mock.Anything).
		Return([]domain.ScoredDocument{}, nil).Once()

	_, err := svc.Search(context.Background(), service.SearchInput{Query: "groen", TopK: 100})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), service.SearchInput{Query: "groen"})
	require.NoError(t, err)

	d.documents.AssertExpectations(t)
}

func TestSearchService_Search_NoHits(t *testing.T) {
	svc, d := newSearchService()
	d.elections.On("Current", mock.Anything).Return(testElection(), nil)
	d.embedder.On("Embed", mock.Anything, mock.Anything).Return([][]float32{{0.5}}, nil)
	d.documents.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.ScoredDocument{}, nil)

	answer, err := svc.Search(context.Background(), service.SearchInput{Query: "fietsenstalling"})

	require.NoError(t, err)
	assert.Equal(t, service.NoResultsAnswer, answer.Answer)
	assert.Empty(t, answer.Sources)
	d.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSearchService_Search_EmptyQuery(t *testing.T) {
	svc, d := newSearchService()

	_, err := svc.Search(context.Background(), service.SearchInput{Query: "   "})

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	d.embedder.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything)
}

func TestSearchService_Search_EmbedMismatch(t *testing.T) {
	svc, d := newSearchService()
	d.elections.On("Current", mock.Anything).Return(testElection(), nil)
	d.embedder.On("Embed", mock.Anything, mock.Anything).Return([][]float32{}, nil)

	_, err := svc.Search(context.Background(), service.SearchInput{Query: "groen"})

	assert.ErrorIs(t, err, domain.ErrEmbeddingMismatch)
}

func TestSearchService_Search_GeneratorError(t *testing.T) {
	svc, d := newSearchService()
	d.elections.On("Current", mock.Anything).Return(testElection(), nil)
	d.embedder.On("Embed", mock.Anything, mock.Anything).Return([][]float32{{0.5}}, nil)
	d.documents.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.ScoredDocument{{Document: domain.Document{PartyID: 10, Content: "x"}, PartyName: "GroenLinks"}}, nil)
	d.generator.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("all generators failed"))

	answer, err := svc.Search(context.Background(), service.SearchInput{Query: "groen"})

	assert.Nil(t, answer)
	assert.Error(t, err)
}
