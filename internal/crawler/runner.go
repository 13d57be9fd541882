package crawler

import (
	"context"
	"fmt"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/internal/feed"
	"github.com/nlsvndrp/aperowo-nils/internal/sources/amiv"
	"github.com/nlsvndrp/aperowo-nils/internal/sources/web"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
)

// Run executes one crawl: fetch from the API (or generate samples), scrape
// the configured sites, and write one feed file per pathway.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("crawler")

	var records []model.RawEntry
	if cfg.Sample > 0 {
		records = SampleRecords(cfg.Sample)
		log.Info(ctx, "generated sample events", logger.Int("count", len(records)))
	} else {
		fetched, err := fetchFiltered(ctx, cfg, log)
		if err != nil {
			return err
		}
		records = fetched
	}

	if err := feed.Write(cfg.OutputFile, records); err != nil {
		return fmt.Errorf("write feed %s: %w", cfg.OutputFile, err)
	}
	log.Info(ctx, "feed written",
		logger.String("file", cfg.OutputFile),
		logger.Int("records", len(records)))

	if len(cfg.Sites) > 0 {
		if err := scrapeSites(ctx, cfg, log); err != nil {
			return err
		}
	}
	return nil
}

// scrapeSites crawls each configured website and writes the scraped events
// as a second feed file, alongside the API one.
func scrapeSites(ctx context.Context, cfg *Config, log logger.Logger) error {
	scraper := web.New(
		web.WithTimeout(cfg.Timeout),
		web.WithLogger(log.Named("web")),
		web.WithKeywords(cfg.Keywords),
	)

	visited := web.LoadVisited(cfg.VisitedFile)
	var records []model.RawEntry
	for _, site := range cfg.Sites {
		recs, err := scraper.Crawl(ctx, site, visited)
		if err != nil {
			return fmt.Errorf("scrape %s: %w", site, err)
		}
		records = append(records, recs...)
	}
	if err := visited.Save(cfg.VisitedFile); err != nil {
		log.Warn(ctx, "could not persist visited urls",
			logger.String("file", cfg.VisitedFile), logger.Error(err))
	}

	if err := feed.Write(cfg.WebOutputFile, records); err != nil {
		return fmt.Errorf("write feed %s: %w", cfg.WebOutputFile, err)
	}
	log.Info(ctx, "web feed written",
		logger.String("file", cfg.WebOutputFile),
		logger.Int("records", len(records)))
	return nil
}

func fetchFiltered(ctx context.Context, cfg *Config, log logger.Logger) ([]model.RawEntry, error) {
	client := amiv.New(cfg.Endpoint,
		amiv.WithTimeout(cfg.Timeout),
		amiv.WithLogger(log.Named("amiv")),
	)

	// Filter server-side where the API supports it, then re-check locally:
	// the server-side regex match is not diacritic-insensitive.
	events, err := client.FetchAll(ctx, amiv.Where(cfg.Keywords))
	if err != nil {
		return nil, err
	}

	records := make([]model.RawEntry, 0, len(events))
	for _, ev := range events {
		if len(cfg.Keywords) > 0 && !ev.Matches(cfg.Keywords) {
			continue
		}
		records = append(records, amiv.Raw(ev))
	}
	log.Info(ctx, "filtered upstream events",
		logger.Int("fetched", len(events)),
		logger.Int("kept", len(records)))
	return records, nil
}
