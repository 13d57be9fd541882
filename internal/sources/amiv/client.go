// Package amiv fetches events from an AMIV-style (Eve REST) events API.
package amiv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Event mirrors the upstream events resource, bilingual fields included.
type Event struct {
	ID            string `json:"_id"`
	TitleEN       string `json:"title_en"`
	TitleDE       string `json:"title_de"`
	DescriptionEN string `json:"description_en"`
	DescriptionDE string `json:"description_de"`
	CatchphraseEN string `json:"catchphrase_en"`
	CatchphraseDE string `json:"catchphrase_de"`
	TimeStart     string `json:"time_start"`
	TimeEnd       string `json:"time_end"`
	Location      string `json:"location"`
	Links         links  `json:"_links"`
}

type links struct {
	Self link `json:"self"`
}

type link struct {
	Href string `json:"href"`
}

// page is one paginated response. The API links to the next page until the
// result set is exhausted.
type page struct {
	Items []Event   `json:"_items"`
	Links pageLinks `json:"_links"`
}

type pageLinks struct {
	Next *link `json:"next"`
}

// Client talks to one events API endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the given events endpoint,
// e.g. https://api.amiv.ethz.ch/events/.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll retrieves every event matching the optional server-side filter,
// following next links across all pages. The filter is an Eve `where`
// document; pass an empty string to fetch everything.
func (c *Client) FetchAll(ctx context.Context, where string) ([]Event, error) {
	next := c.endpoint
	if where != "" {
		next = c.endpoint + "?" + url.Values{"where": {where}}.Encode()
	}

	var events []Event
	for next != "" {
		p, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		events = append(events, p.Items...)

		next = ""
		if p.Links.Next != nil && p.Links.Next.Href != "" {
			next = p.Links.Next.Href
			// Next links may be relative to the API root.
			if resolved, err := c.resolve(next); err == nil {
				next = resolved
			}
		}
	}
	if c.log != nil {
		c.log.Info(ctx, "fetched upstream events", logger.Int("count", len(events)))
	}
	return events, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, pageURL, resp.StatusCode)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &p, nil
}

func (c *Client) resolve(ref string) (string, error) {
	base, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

// Raw converts an upstream event into the feed record shape: English title
// preferred over German, calendar day split off the start timestamp, and
// hh:mm extracted from both timestamps.
func Raw(e Event) model.RawEntry {
	title := e.TitleEN
	if title == "" {
		title = e.TitleDE
	}
	return model.RawEntry{
		ID:        e.ID,
		URL:       e.Links.Self.Href,
		Title:     title,
		Date:      clipDay(e.TimeStart),
		StartTime: clipTime(e.TimeStart),
		EndTime:   clipTime(e.TimeEnd),
		Location:  e.Location,
	}
}

func clipDay(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ""
}

func clipTime(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return ""
}
