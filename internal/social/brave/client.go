// Package brave finds LinkedIn profile URLs through the Brave Search API.
package brave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vibecheck/internal/match"
	"vibecheck/internal/port"
)

const resultCount = "10"

// ErrMissingAPIKey is returned when the client is used without a subscription token.
var ErrMissingAPIKey = errors.New("brave search api key not configured")

var profileURL = regexp.MustCompile(`https?://(?:[a-z]{2,3}\.)?linkedin\.com/in/([a-zA-Z0-9\-]+)`)

// Config holds the API location, credentials and pacing.
type Config struct {
	BaseURL string
	APIKey  string
	Delay   time.Duration
	Timeout time.Duration
	// RetryAfter is how long to wait before the single retry of a rate-limited request.
	RetryAfter time.Duration
}

// Client is a paced Brave web search client.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	retryAfter time.Duration
	limiter    *rate.Limiter
}

// NewClient creates a Client. The free tier allows one request per second.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	retryAfter := cfg.RetryAfter
	if retryAfter <= 0 {
		retryAfter = 5 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		retryAfter: retryAfter,
		limiter:    rate.NewLimiter(rate.Every(cfg.Delay), 1),
	}
}

type searchResponse struct {
	Web struct {
		Results []struct {
			URL   string `json:"url"`
			Title string `json:"title"`
		} `json:"results"`
	} `json:"web"`
}

// FindProfiles searches LinkedIn member pages for the person and returns one
// profile per distinct slug, in result order. DisplayName is the name
// recovered from the slug.
func (c *Client) FindProfiles(ctx context.Context, q port.ProfileQuery) ([]match.Profile, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	query := fmt.Sprintf("%q %s %s site:linkedin.com/in/", q.Name, q.Party, q.City)

	resp, err := c.search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("brave.FindProfiles %q: %w", q.Name, err)
	}

	var urls []string
	for _, r := range resp.Web.Results {
		urls = append(urls, r.URL)
	}
	return ProfilesFromURLs(urls), nil
}

// ProfilesFromURLs keeps the LinkedIn member URLs among urls, normalized to
// https://www.linkedin.com/in/<slug> and deduplicated by slug.
func ProfilesFromURLs(urls []string) []match.Profile {
	seen := make(map[string]bool)
	var profiles []match.Profile
	for _, u := range urls {
		m := profileURL.FindStringSubmatch(u)
		if m == nil || seen[m[1]] {
			continue
		}
		slug := m[1]
		seen[slug] = true
		profiles = append(profiles, match.Profile{
			Handle:      "https://www.linkedin.com/in/" + slug,
			DisplayName: match.SlugToName(slug),
		})
	}
	return profiles
}

func (c *Client) search(ctx context.Context, query string) (*searchResponse, error) {
	resp, err := c.do(ctx, query)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		log.Printf("brave.Client: WARNING: rate limited, waiting %s", c.retryAfter)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryAfter):
		}
		resp, err = c.do(ctx, query)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, query string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", resultCount)

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sep+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)
	return c.http.Do(req)
}
