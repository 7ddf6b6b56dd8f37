package polls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

var (
	ErrPagePropsNotFound = errors.New("page props not found")
	ErrChartNotFound     = errors.New("party chart not found")
)

const visualisationComponent = "shared.visualisation"

// OnderzoekScraper reads polls from Onderzoek en Statistiek Amsterdam
// articles. Those pages embed the full article, chart specifications
// included, as JSON page props in a script tag.
type OnderzoekScraper struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// NewOnderzoekScraper creates a scraper that waits at least delay between
// requests.
func NewOnderzoekScraper(client *http.Client, userAgent string, delay time.Duration) *OnderzoekScraper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &OnderzoekScraper{
		client:    client,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
	}
}

func (s *OnderzoekScraper) Scrape(ctx context.Context, src Source) (*Scraped, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	log.Printf("polls.OnderzoekScraper: fetching %s", src.URL)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", src.URL, resp.StatusCode)
	}

	scraped, err := ParseOnderzoekPage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.URL, err)
	}
	log.Printf("polls.OnderzoekScraper: extracted %d result(s) from chart %q", len(scraped.Results), scraped.ChartTitle)
	return scraped, nil
}

type pageProps struct {
	PublishedAt     string            `json:"publishedAt"`
	PublicationDate string            `json:"publicationDate"`
	Body            []json.RawMessage `json:"body"`
}

type bodyItem struct {
	Component     string     `json:"__component"`
	Title         flexString `json:"title"`
	Text          flexString `json:"text"`
	Specification struct {
		Data struct {
			Values []json.RawMessage `json:"values"`
		} `json:"data"`
	} `json:"specification"`
}

// ParseOnderzoekPage extracts a poll from an O&S article page.
func ParseOnderzoekPage(r io.Reader) (*Scraped, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading html: %w", err)
	}
	props, err := findPageProps(doc)
	if err != nil {
		return nil, err
	}

	published := props.PublishedAt
	if published == "" {
		published = props.PublicationDate
	}
	out := &Scraped{PublishedAt: ParsePublicationDate(published)}

	body := decodeBody(props.Body)
	chart := findPartyChart(body)
	if chart == nil {
		return nil, ErrChartNotFound
	}
	out.ChartTitle = chart.Title.value
	out.Results, err = ParseResults(SchemaOnderzoekAmsterdam, chart.Specification.Data.Values)
	if err != nil {
		return nil, err
	}

	fallbackYear := 0
	if out.PublishedAt != nil {
		fallbackYear = out.PublishedAt.Year()
	}
	for _, item := range body {
		text := item.Text.value
		if text == "" {
			continue
		}
		if out.FieldEnd == nil {
			if p := ExtractFieldPeriod(text, fallbackYear); p.End != nil {
				out.FieldStart, out.FieldEnd = p.Start, p.End
			}
		}
		if out.SampleSize == nil {
			if n := ExtractSampleSize(text); n != nil && *n > 0 {
				out.SampleSize = n
			}
		}
	}
	return out, nil
}

func findPageProps(doc *goquery.Document) (*pageProps, error) {
	var found *pageProps
	doc.Find(`script[type="application/json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var envelope struct {
			Props struct {
				PageProps json.RawMessage `json:"pageProps"`
			} `json:"props"`
		}
		if err := json.Unmarshal([]byte(sel.Text()), &envelope); err != nil {
			return true
		}
		if len(envelope.Props.PageProps) == 0 {
			return true
		}
		var props pageProps
		if err := json.Unmarshal(envelope.Props.PageProps, &props); err != nil {
			return true
		}
		found = &props
		return false
	})
	if found == nil {
		return nil, ErrPagePropsNotFound
	}
	return found, nil
}

// decodeBody keeps the body items that decode; one malformed block does not
// hide the rest of the article.
func decodeBody(raw []json.RawMessage) []bodyItem {
	items := make([]bodyItem, 0, len(raw))
	for _, r := range raw {
		var item bodyItem
		if err := json.Unmarshal(r, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// findPartyChart returns the first visualisation whose first record names a party.
func findPartyChart(body []bodyItem) *bodyItem {
	for i := range body {
		item := &body[i]
		if item.Component != visualisationComponent {
			continue
		}
		values := item.Specification.Data.Values
		if len(values) == 0 {
			continue
		}
		var first map[string]json.RawMessage
		if err := json.Unmarshal(values[0], &first); err != nil {
			continue
		}
		if _, ok := first["party"]; ok {
			return item
		}
	}
	return nil
}
