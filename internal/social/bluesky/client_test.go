package bluesky_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/port"
	"vibecheck/internal/social/bluesky"
)

func TestClient_FindProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/app.bsky.actor.searchActors", r.URL.Path)
		assert.Equal(t, "Zita Pels", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"actors":[
			{"handle":"zitapels.bsky.social","displayName":"Zita Pels"},
			{"handle":"someone.bsky.social"}
		]}`))
	}))
	defer srv.Close()

	c := bluesky.NewClient(srv.URL, 0, time.Second)
	profiles, err := c.FindProfiles(context.Background(), port.ProfileQuery{Name: "Zita Pels", Party: "GroenLinks"})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "zitapels.bsky.social", profiles[0].Handle)
	assert.Equal(t, "Zita Pels", profiles[0].DisplayName)
	assert.Empty(t, profiles[1].DisplayName)
}

func TestClient_AuthorFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/app.bsky.feed.getAuthorFeed", r.URL.Path)
		assert.Equal(t, "zitapels.bsky.social", r.URL.Query().Get("actor"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "posts_no_replies", r.URL.Query().Get("filter"))
		_, _ = w.Write([]byte(`{"feed":[
			{"post":{"uri":"at://did:plc:1/app.bsky.feed.post/a","record":{"text":" Meer groen in de stad ","createdAt":"2026-01-05T10:15:00.123Z"},
				"likeCount":12,"replyCount":3,"repostCount":1,
				"embed":{"$type":"app.bsky.embed.external#view","external":{"uri":"https://example.nl"}}}},
			{"post":{"uri":"at://did:plc:1/app.bsky.feed.post/b","record":{"text":"","createdAt":"2026-01-04T10:00:00Z"}}},
			{"post":{"uri":"at://did:plc:1/app.bsky.feed.post/c","record":{"text":"Zonder datum"}}}
		]}`))
	}))
	defer srv.Close()

	c := bluesky.NewClient(srv.URL, 0, time.Second)
	posts, err := c.AuthorFeed(context.Background(), "@zitapels.bsky.social", bluesky.FeedLimit)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Meer groen in de stad", posts[0].Text)
	assert.Equal(t, time.Date(2026, 1, 5, 10, 15, 0, 123000000, time.UTC), posts[0].CreatedAt)
	assert.Equal(t, 12, posts[0].LikeCount)
	assert.Equal(t, 3, posts[0].ReplyCount)
	assert.Equal(t, 1, posts[0].RepostCount)
	assert.Contains(t, string(posts[0].Embed), "app.bsky.embed.external#view")

	assert.Nil(t, posts[1].Embed)
	assert.False(t, posts[1].CreatedAt.IsZero())
}

func TestClient_AuthorFeed_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := bluesky.NewClient(srv.URL, 0, time.Second)
	_, err := c.AuthorFeed(context.Background(), "gone.bsky.social", bluesky.FeedLimit)
	assert.True(t, errors.Is(err, bluesky.ErrActorNotFound))
}
