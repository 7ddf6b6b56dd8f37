package router_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
	"vibecheck/internal/handler"
	"vibecheck/internal/middleware"
	"vibecheck/internal/router"
	"vibecheck/internal/service"
	"vibecheck/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type routerMocks struct {
	election *mocks.MockElectionService
	polls    *mocks.MockPollService
	search   *mocks.MockSearchService
	match    *mocks.MockMatchService
}

func newRouter(opts router.Options) (*gin.Engine, routerMocks) {
	gin.SetMode(gin.TestMode)
	m := routerMocks{
		election: new(mocks.MockElectionService),
		polls:    new(mocks.MockPollService),
		search:   new(mocks.MockSearchService),
		match:    new(mocks.MockMatchService),
	}
	r := router.Setup(opts,
		handler.NewHealthHandler(okPinger{}),
		handler.NewElectionHandler(m.election),
		handler.NewPollHandler(m.polls),
		handler.NewSearchHandler(m.search, m.match),
	)
	return r, m
}

func do(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSetup_Routes(t *testing.T) {
	r, m := newRouter(router.Options{AllowedOrigins: []string{"*"}})
	m.election.On("Current", mock.Anything).Return(&domain.Election{ID: 1}, nil)
	m.election.On("ListParties", mock.Anything).Return([]domain.Party{}, nil)
	m.election.On("GetParty", mock.Anything, int64(10)).Return(&service.PartyDetail{}, nil)
	m.election.On("ListPartyMotions", mock.Anything, int64(10), 0, 20).Return([]domain.Motion{}, 0, nil)
	m.election.On("GetCandidate", mock.Anything, int64(100)).Return(&service.CandidateDetail{}, nil)
	m.election.On("ListMotions", mock.Anything, 0, 20).Return([]domain.Motion{}, 0, nil)
	m.election.On("ListComparisons", mock.Anything).Return([]domain.TopicComparison{}, nil)
	m.polls.On("List", mock.Anything).Return([]domain.Poll{}, nil)
	m.polls.On("Latest", mock.Anything).Return(&domain.PollWithResults{}, nil)
	m.polls.On("Get", mock.Anything, int64(3)).Return(&domain.PollWithResults{}, nil)

	for _, path := range []string{
		"/healthz",
		"/readyz",
		"/api/v1/elections/current",
		"/api/v1/parties",
		"/api/v1/parties/10",
		"/api/v1/parties/10/motions",
		"/api/v1/candidates/100",
		"/api/v1/motions",
		"/api/v1/comparisons",
		"/api/v1/polls",
		"/api/v1/polls/latest",
		"/api/v1/polls/3",
		"/api/v1/polls/3/export?format=csv",
	} {
		w := do(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestSetup_SearchIsRateLimited(t *testing.T) {
	r, m := newRouter(router.Options{SearchLimiter: middleware.PerMinute(1)})
	m.search.On("Search", mock.Anything, mock.Anything).Return(&service.SearchAnswer{Answer: "ok"}, nil)

	body := []byte(`{"query":"groen"}`)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/search", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/search", body).Code)

	m.match.On("Preview", mock.Anything, mock.Anything).Return([]service.MatchPreview{}, nil)
	match := []byte(`{"kind":"party","labels":["GL"]}`)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/match", match).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/match", match).Code)
}
