// Package web scrapes configured websites for apero pages.
//
// The scraper walks one site at a time: pages on the start URL's host, up to
// a bounded link depth, with a polite delay between fetches. A page whose
// text contains one of the configured keywords becomes a feed record with
// heuristically extracted date, times and location. Visited URLs persist
// across runs so repeated crawls only fetch new pages.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/internal/sources/amiv"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxDepth = 3
	defaultDelay    = time.Second
	defaultAgent    = "AperoBot/1.0"
	snippetRadius   = 100
)

var defaultKeywords = []string{"apero", "aperitif"}

// Scraper crawls websites looking for apero pages.
type Scraper struct {
	httpClient *http.Client
	log        logger.Logger
	userAgent  string
	keywords   []string
	maxDepth   int
	delay      time.Duration
}

// Option applies a configuration option to the Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Scraper) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Scraper) {
		if log != nil {
			s.log = log
		}
	}
}

// WithKeywords sets the keywords a page must contain.
func WithKeywords(keywords []string) Option {
	return func(s *Scraper) {
		if len(keywords) > 0 {
			s.keywords = keywords
		}
	}
}

// WithMaxDepth bounds how many links deep the crawl follows.
func WithMaxDepth(depth int) Option {
	return func(s *Scraper) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithDelay sets the pause between page fetches. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// New creates a Scraper with the given options.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultAgent,
		keywords:   defaultKeywords,
		maxDepth:   defaultMaxDepth,
		delay:      defaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type target struct {
	url   string
	depth int
}

// Crawl walks the site starting at start, never leaving its host, and
// returns a feed record for every keyword-matching page. URLs already in
// visited are skipped; every fetched URL is added to it.
func (s *Scraper) Crawl(ctx context.Context, start string, visited *Visited) ([]model.RawEntry, error) {
	base, err := url.Parse(start)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrBadSite, start)
	}

	queue := []target{{url: start}}
	var records []model.RawEntry
	fetched := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		t := queue[0]
		queue = queue[1:]
		if visited.Seen(t.url) {
			continue
		}
		visited.Add(t.url)

		if fetched > 0 {
			s.pause(ctx)
		}
		fetched++

		p, err := s.fetch(ctx, t.url)
		if err != nil {
			if s.log != nil {
				s.log.Warn(ctx, "page fetch failed",
					logger.String("url", t.url), logger.Error(err))
			}
			continue
		}

		if rec, ok := s.record(t.url, p); ok {
			records = append(records, rec)
			if s.log != nil {
				s.log.Info(ctx, "keyword page found", logger.String("url", t.url))
			}
		}

		if t.depth >= s.maxDepth {
			continue
		}
		for _, link := range pageLinks(p.doc, base) {
			if !visited.Seen(link) {
				queue = append(queue, target{url: link, depth: t.depth + 1})
			}
		}
	}
	return records, nil
}

func (s *Scraper) pause(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.delay):
	}
}

// page is one fetched document: the parsed tree plus its flattened text.
type page struct {
	doc  *html.Node
	text string
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	return &page{doc: doc, text: nodeText(doc)}, nil
}

// record turns a keyword-matching page into a feed record. Matching is
// case- and diacritic-insensitive; fields the page does not reveal stay
// empty for the normalizer to default or skip.
func (s *Scraper) record(pageURL string, p *page) (model.RawEntry, bool) {
	folded := amiv.Fold(p.text)
	matched := false
	for _, kw := range s.keywords {
		if kw != "" && strings.Contains(folded, amiv.Fold(kw)) {
			matched = true
			break
		}
	}
	if !matched {
		return model.RawEntry{}, false
	}

	date, startTime, endTime, location := extractDetails(p)
	rec := model.RawEntry{
		URL:       pageURL,
		Title:     pageTitle(p.doc),
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Location:  location,
	}
	if sn := snippet(p.text, s.keywords); sn != "" {
		if raw, err := json.Marshal(sn); err == nil {
			rec.Extra = map[string]json.RawMessage{"snippet": raw}
		}
	}
	return rec, true
}

// snippet returns the text surrounding the first keyword occurrence.
func snippet(text string, keywords []string) string {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		from := idx - snippetRadius
		if from < 0 {
			from = 0
		}
		to := idx + len(kw) + snippetRadius
		if to > len(text) {
			to = len(text)
		}
		for from > 0 && !utf8.RuneStart(text[from]) {
			from--
		}
		for to < len(text) && !utf8.RuneStart(text[to]) {
			to++
		}
		return strings.TrimSpace(text[from:to])
	}
	return ""
}
