// Package bluesky reads public profiles and author feeds from the Bluesky
// AppView API. No authentication is needed.
package bluesky

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vibecheck/internal/match"
	"vibecheck/internal/port"
)

const (
	searchLimit = 8
	// FeedLimit is the number of recent posts read per candidate.
	FeedLimit = 25
)

// ErrActorNotFound is returned when the handle does not resolve.
var ErrActorNotFound = errors.New("bluesky actor not found")

// Client is a paced Bluesky AppView client.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a Client that waits at least delay between requests.
func NewClient(baseURL string, delay, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

func (c *Client) get(ctx context.Context, method string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	u := c.baseURL + "/" + method + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrActorNotFound
	case resp.StatusCode == http.StatusBadRequest && method == "app.bsky.feed.getAuthorFeed":
		// Unknown or deleted actors come back as 400 on this endpoint.
		return ErrActorNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: status %d", method, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", method, err)
	}
	return nil
}

type actor struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
}

// FindProfiles searches actors by the person's name. Party and city are not
// used; the actor search matches on names and handles only.
func (c *Client) FindProfiles(ctx context.Context, q port.ProfileQuery) ([]match.Profile, error) {
	params := url.Values{}
	params.Set("q", q.Name)
	params.Set("limit", strconv.Itoa(searchLimit))

	var resp struct {
		Actors []actor `json:"actors"`
	}
	if err := c.get(ctx, "app.bsky.actor.searchActors", params, &resp); err != nil {
		return nil, fmt.Errorf("bluesky.FindProfiles %q: %w", q.Name, err)
	}
	profiles := make([]match.Profile, 0, len(resp.Actors))
	for _, a := range resp.Actors {
		profiles = append(profiles, match.Profile{Handle: a.Handle, DisplayName: a.DisplayName})
	}
	return profiles, nil
}

type feedItem struct {
	Post struct {
		URI    string `json:"uri"`
		Record struct {
			Text      string `json:"text"`
			CreatedAt string `json:"createdAt"`
		} `json:"record"`
		LikeCount   int             `json:"likeCount"`
		ReplyCount  int             `json:"replyCount"`
		RepostCount int             `json:"repostCount"`
		Embed       json.RawMessage `json:"embed"`
	} `json:"post"`
}

// AuthorFeed returns up to limit recent top-level posts of handle. A leading
// "@" on the handle is ignored. Posts without uri or text are dropped; the
// resolved embed view is kept as-is.
func (c *Client) AuthorFeed(ctx context.Context, handle string, limit int) ([]port.FeedPost, error) {
	params := url.Values{}
	params.Set("actor", strings.TrimPrefix(handle, "@"))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("filter", "posts_no_replies")

	var resp struct {
		Feed []feedItem `json:"feed"`
	}
	if err := c.get(ctx, "app.bsky.feed.getAuthorFeed", params, &resp); err != nil {
		return nil, fmt.Errorf("bluesky.AuthorFeed %s: %w", handle, err)
	}

	posts := make([]port.FeedPost, 0, len(resp.Feed))
	for _, item := range resp.Feed {
		p := item.Post
		text := strings.TrimSpace(p.Record.Text)
		if p.URI == "" || text == "" {
			continue
		}
		var embed json.RawMessage
		if len(p.Embed) > 0 && string(p.Embed) != "null" {
			embed = p.Embed
		}
		posts = append(posts, port.FeedPost{
			URI:         p.URI,
			Text:        text,
			CreatedAt:   parseTimestamp(p.Record.CreatedAt),
			LikeCount:   p.LikeCount,
			ReplyCount:  p.ReplyCount,
			RepostCount: p.RepostCount,
			Embed:       embed,
		})
	}
	return posts, nil
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
