// Package notubiz reads council meetings and the motions handled in them
// from the Notubiz council information API.
package notubiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vibecheck/internal/port"
)

// Config holds the API location and pacing.
type Config struct {
	BaseURL        string
	OrganisationID int
	Version        string
	RequestDelay   time.Duration
	Timeout        time.Duration
}

// Client is a paced Notubiz API client.
type Client struct {
	http    *http.Client
	baseURL string
	orgID   int
	version string
	limiter *rate.Limiter
}

// NewClient creates a Client that waits at least cfg.RequestDelay between requests.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		orgID:   cfg.OrganisationID,
		version: cfg.Version,
		limiter: rate.NewLimiter(rate.Every(cfg.RequestDelay), 1),
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("format", "json")
	params.Set("version", c.version)

	u := c.baseURL + "/" + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Events lists the organisation's events between from and to, both days inclusive.
func (c *Client) Events(ctx context.Context, from, to time.Time) ([]Event, error) {
	params := url.Values{}
	params.Set("organisation_id", strconv.Itoa(c.orgID))
	params.Set("date_from", from.Format("2006-01-02")+" 00:00:00")
	params.Set("date_to", to.Format("2006-01-02")+" 23:59:59")

	var resp struct {
		Events []Event `json:"events"`
	}
	if err := c.get(ctx, "events", params, &resp); err != nil {
		return nil, err
	}
	log.Printf("notubiz.Client: fetched %d events from %s to %s",
		len(resp.Events), from.Format("2006-01-02"), to.Format("2006-01-02"))
	return resp.Events, nil
}

// Meeting returns a meeting with its agenda tree.
func (c *Client) Meeting(ctx context.Context, id int64) (*Meeting, error) {
	var resp struct {
		Meeting Meeting `json:"meeting"`
	}
	if err := c.get(ctx, fmt.Sprintf("events/meetings/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Meeting, nil
}

// ModuleItem returns a motion or amendment with its attributes.
func (c *Client) ModuleItem(ctx context.Context, id int64) (*ModuleItem, error) {
	var resp struct {
		Item ModuleItem `json:"item"`
	}
	if err := c.get(ctx, fmt.Sprintf("modules/0/items/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// FetchMotions walks every held meeting in the range and returns the motions
// on its agenda. Announcements and canceled events are skipped, an item seen
// in an earlier meeting is not fetched again, and items without a title are
// dropped. A failing item is logged and skipped.
func (c *Client) FetchMotions(ctx context.Context, from, to time.Time) ([]port.CouncilMotion, error) {
	events, err := c.Events(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("notubiz.FetchMotions: %w", err)
	}

	var motions []port.CouncilMotion
	seen := make(map[int64]bool)
	for _, ev := range events {
		if ev.Announcement || ev.Canceled {
			continue
		}
		log.Printf("notubiz.Client: fetching meeting %s (id=%d)", ev.Title(), ev.ID)
		meeting, err := c.Meeting(ctx, ev.ID)
		if err != nil {
			return nil, fmt.Errorf("notubiz.FetchMotions: meeting %d: %w", ev.ID, err)
		}

		ids := meeting.ModuleItemIDs()
		var fresh []int64
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				fresh = append(fresh, id)
			}
		}
		log.Printf("notubiz.Client: found %d new module items (of %d total)", len(fresh), len(ids))

		for _, id := range fresh {
			item, err := c.ModuleItem(ctx, id)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.Printf("notubiz.Client: WARNING: item %d: %v", id, err)
				continue
			}
			m := item.Motion()
			if m.Title == "" {
				log.Printf("notubiz.Client: WARNING: skipping item %d: no title", id)
				continue
			}
			m.ItemID = id
			m.MeetingEventID = ev.ID
			motions = append(motions, m)
		}
	}
	return motions, nil
}
