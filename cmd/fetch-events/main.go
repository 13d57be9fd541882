package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/config"
	"github.com/nlsvndrp/aperowo-nils/internal/crawler"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
)

// Default tool configuration constants.
const (
	defaultOutput    = "data/apero_results_amiv.json"
	defaultWebOutput = "data/apero_results.json"
	defaultVisited   = "data/visited_urls.json"
	defaultTimeout   = 10 * time.Second
	runTimeout       = 5 * time.Minute
)

func main() {
	// The service config (defaults, optional file, APEROWO_* env) seeds the
	// flag defaults; flags win.
	cfg, err := config.Load(context.Background())
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var (
		endpoint  = flag.String("endpoint", cfg.APIEndpoint, "Events API endpoint")
		keywords  = flag.String("keywords", strings.Join(cfg.Keywords, ","), "Comma-separated keywords to match")
		output    = flag.String("output", defaultOutput, "Output feed file for API events")
		sites     = flag.String("sites", "", "Comma-separated websites to scrape in addition to the API")
		webOutput = flag.String("web-output", defaultWebOutput, "Output feed file for scraped events")
		visited   = flag.String("visited", defaultVisited, "Visited-URL state file for the scraper")
		sample    = flag.Int("sample", 0, "Generate N synthetic events instead of fetching")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable debug logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		crawler.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	ccfg := &crawler.Config{
		Endpoint:      *endpoint,
		Keywords:      splitList(*keywords),
		OutputFile:    *output,
		Sites:         splitList(*sites),
		WebOutputFile: *webOutput,
		VisitedFile:   *visited,
		Sample:        *sample,
		Timeout:       *timeout,
		Verbose:       *verbose,
	}
	if err := crawler.Run(ctx, ccfg); err != nil {
		os.Stderr.WriteString("crawl failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
