package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
	"vibecheck/internal/handler"
	"vibecheck/internal/llm"
	"vibecheck/internal/match"
	"vibecheck/internal/service"
	"vibecheck/mocks"
)

func newSearchHandler() (*handler.SearchHandler, *mocks.MockSearchService, *mocks.MockMatchService) {
	searchSvc := new(mocks.MockSearchService)
	matchSvc := new(mocks.MockMatchService)
	return handler.NewSearchHandler(searchSvc, matchSvc), searchSvc, matchSvc
}

func newPostContext(target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// --- Search ---

func TestSearchHandler_Search_Success(t *testing.T) {
	h, searchSvc, _ := newSearchHandler()
	searchSvc.On("Search", mock.Anything, mock.MatchedBy(func(in service.SearchInput) bool {
		return in.Query == "Wat wil GL met wonen?" && in.TopK == 4 && len(in.PartyIDs) == 1
	})).Return(&service.SearchAnswer{
		Answer:  "Meer sociale huur.",
		Sources: []service.SearchSource{{PartyID: 10, PartyName: "GroenLinks", Score: 0.81}},
	}, nil)

	c, w := newPostContext("/api/v1/search", map[string]interface{}{
		"query": "Wat wil GL met wonen?", "top_k": 4, "party_ids": []int64{10},
	})
	h.Search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "Meer sociale huur.", data["answer"])
	searchSvc.AssertExpectations(t)
}

func TestSearchHandler_Search_MissingQuery(t *testing.T) {
	h, searchSvc, _ := newSearchHandler()

	c, w := newPostContext("/api/v1/search", map[string]interface{}{"top_k": 4})
	h.Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	searchSvc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchHandler_Search_BlankQuery(t *testing.T) {
	h, searchSvc, _ := newSearchHandler()
	searchSvc.On("Search", mock.Anything, mock.Anything).Return(nil, domain.ErrEmptyQuery)

	c, w := newPostContext("/api/v1/search", map[string]interface{}{"query": "   "})
	h.Search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_QUERY", decode(t, w).Error.Code)
}

func TestSearchHandler_Search_GeneratorOverloaded(t *testing.T) {
	h, searchSvc, _ := newSearchHandler()
	searchSvc.On("Search", mock.Anything, mock.Anything).
		Return(nil, llm.NewOverloadedError("claude", errors.New("529")))

	c, w := newPostContext("/api/v1/search", map[string]interface{}{"query": "groen"})
	h.Search(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "GENERATOR_OVERLOADED", decode(t, w).Error.Code)
}

func TestSearchHandler_Search_RateLimited(t *testing.T) {
	h, searchSvc, _ := newSearchHandler()
	searchSvc.On("Search", mock.Anything, mock.Anything).
		Return(nil, llm.NewRateLimitError("all", errors.New("all generators rate limited"), 30))

	c, w := newPostContext("/api/v1/search", map[string]interface{}{"query": "groen"})
	h.Search(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

// --- Match ---

func TestSearchHandler_Match_Success(t *testing.T) {
	h, _, matchSvc := newSearchHandler()
	id := int64(11)
	matchSvc.On("Preview", mock.Anything, service.MatchInput{
		Kind:   service.MatchKindParty,
		Labels: []string{"Partij van de Arbeid"},
	}).Return([]service.MatchPreview{
		{Label: "Partij van de Arbeid", Matched: true, ID: &id, Name: "PvdA", Method: match.MethodAlias},
	}, nil)

	c, w := newPostContext("/api/v1/match", map[string]interface{}{
		"kind": "party", "labels": []string{"Partij van de Arbeid"},
	})
	h.Match(c)

	assert.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w).Data.([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "alias", first["method"])
	assert.Equal(t, float64(11), first["id"])
}

func TestSearchHandler_Match_InvalidKind(t *testing.T) {
	h, _, matchSvc := newSearchHandler()
	matchSvc.On("Preview", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidMatchKind)

	c, w := newPostContext("/api/v1/match", map[string]interface{}{
		"kind": "motion", "labels": []string{"x"},
	})
	h.Match(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_MATCH_KIND", decode(t, w).Error.Code)
}

func TestSearchHandler_Match_MissingLabels(t *testing.T) {
	h, _, matchSvc := newSearchHandler()

	c, w := newPostContext("/api/v1/match", map[string]interface{}{"kind": "party"})
	h.Match(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	matchSvc.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything)
}
