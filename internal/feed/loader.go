// Package feed loads raw event records from the configured sources.
//
// A source is either a local JSON file (written by the fetch-events tool) or
// an http(s) URL serving the same payload. Loading is all-or-nothing at the
// source level: a source that cannot be read or parsed fails the whole load,
// while bad records inside a healthy payload are left for the normalizer to
// skip.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// SourceRecords holds the raw records of one source, tagged with a short
// source name used in event identifiers.
type SourceRecords struct {
	Source  string
	Records []model.RawEntry
}

// Result is a complete successful load.
type Result struct {
	Sources []SourceRecords
}

// Total returns the record count across all sources.
func (r *Result) Total() int {
	n := 0
	for _, s := range r.Sources {
		n += len(s.Records)
	}
	return n
}

// Loader reads all configured sources.
type Loader struct {
	sources    []string
	httpClient *http.Client
	log        logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithSources sets the list of file paths and URLs to load.
func WithSources(sources []string) Option {
	return func(l *Loader) {
		l.sources = sources
	}
}

// WithHTTPClient replaces the HTTP client used for URL sources.
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Loader) {
		if hc != nil {
			l.httpClient = hc
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every source. The first source failure aborts the load; there
// is no partial result.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	if len(l.sources) == 0 {
		return nil, ErrNoSources
	}

	res := &Result{Sources: make([]SourceRecords, 0, len(l.sources))}
	for _, src := range l.sources {
		data, err := l.read(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, src, err)
		}
		records, err := decodePayload(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, src, err)
		}
		res.Sources = append(res.Sources, SourceRecords{
			Source:  Tag(src),
			Records: records,
		})
		if l.log != nil {
			l.log.Debug(ctx, "loaded source",
				logger.String("source", src),
				logger.Int("records", len(records)))
		}
	}
	return res, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if isURL(src) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(src)
}

// decodePayload accepts either an array of records or one bare record
// object; a single object is treated as a one-element array.
func decodePayload(data []byte) ([]model.RawEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	switch trimmed[0] {
	case '[':
		var records []model.RawEntry
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	case '{':
		var record model.RawEntry
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return nil, err
		}
		return []model.RawEntry{record}, nil
	default:
		return nil, fmt.Errorf("payload is neither object nor array")
	}
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Tag derives a short source tag: the host for URL sources, the file name
// without its well-known prefix for file sources.
func Tag(src string) string {
	if isURL(src) {
		if u, err := url.Parse(src); err == nil && u.Host != "" {
			return u.Host
		}
		return src
	}
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name = strings.TrimPrefix(name, "apero_results")
	name = strings.TrimPrefix(name, "_")
	if name == "" {
		name = "web"
	}
	return name
}

// Write stores records as an indented JSON array, the payload shape the
// loader reads back.
func Write(path string, records []model.RawEntry) error {
	data, err := marshalRecords(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func marshalRecords(records []model.RawEntry) ([]byte, error) {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		m := map[string]any{
			"url":        r.URL,
			"title":      r.Title,
			"date":       r.Date,
			"start_time": r.StartTime,
			"end_time":   r.EndTime,
			"location":   r.Location,
		}
		if r.ID != "" {
			m["id"] = r.ID
		}
		if r.Refreshments != "" {
			m["refreshments"] = r.Refreshments
		}
		if r.RefreshmentDetails != "" {
			m["refreshment_details"] = r.RefreshmentDetails
		}
		if r.EaseOfEntry != nil {
			m["easeOfEntry"] = *r.EaseOfEntry
		}
		for k, v := range r.Extra {
			m[k] = v
		}
		out = append(out, m)
	}
	return json.MarshalIndent(out, "", "  ")
}
