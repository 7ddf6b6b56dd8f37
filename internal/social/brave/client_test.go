package brave_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/match"
	"vibecheck/internal/port"
	"vibecheck/internal/social/brave"
)

func TestProfilesFromURLs(t *testing.T) {
	profiles := brave.ProfilesFromURLs([]string{
		"https://nl.linkedin.com/in/jan-de-vries-4a1b2c",
		"https://www.linkedin.com/in/jan-de-vries-4a1b2c/details",
		"https://www.linkedin.com/company/gemeente-amsterdam",
		"http://linkedin.com/in/Zita-Pels",
		"https://example.nl/in/jan",
	})
	assert.Equal(t, []match.Profile{
		{Handle: "https://www.linkedin.com/in/jan-de-vries-4a1b2c", DisplayName: "jan de vries"},
		{Handle: "https://www.linkedin.com/in/Zita-Pels", DisplayName: "Zita Pels"},
	}, profiles)
}

func TestClient_FindProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, `"Jan de Vries" D66 Amsterdam site:linkedin.com/in/`, r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("count"))
		_, _ = w.Write([]byte(`{"web":{"results":[{"url":"https://nl.linkedin.com/in/jan-de-vries-4a1b2c","title":"Jan de Vries"}]}}`))
	}))
	defer srv.Close()

	c := brave.NewClient(brave.Config{BaseURL: srv.URL, APIKey: "secret"})
	profiles, err := c.FindProfiles(context.Background(), port.ProfileQuery{Name: "Jan de Vries", Party: "D66", City: "Amsterdam"})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "https://www.linkedin.com/in/jan-de-vries-4a1b2c", profiles[0].Handle)
}

func TestClient_RetriesOnceWhenRateLimited(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"web":{"results":[]}}`))
	}))
	defer srv.Close()

	c := brave.NewClient(brave.Config{BaseURL: srv.URL, APIKey: "secret", RetryAfter: 10 * time.Millisecond})
	profiles, err := c.FindProfiles(context.Background(), port.ProfileQuery{Name: "Jan de Vries"})
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_RateLimitedTwice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := brave.NewClient(brave.Config{BaseURL: srv.URL, APIKey: "secret", RetryAfter: 10 * time.Millisecond})
	_, err := c.FindProfiles(context.Background(), port.ProfileQuery{Name: "Jan de Vries"})
	assert.Error(t, err)
}

func TestClient_MissingAPIKey(t *testing.T) {
	c := brave.NewClient(brave.Config{BaseURL: "http://unused"})
	_, err := c.FindProfiles(context.Background(), port.ProfileQuery{Name: "Jan de Vries"})
	assert.True(t, errors.Is(err, brave.ErrMissingAPIKey))
}
