// Package profile implements the CLI actions: site discovery, single-page
// extraction, and the full discover-extract-merge profile run.
package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/launchkit/siteprofiler/internal/common"
	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/discovery"
	"github.com/launchkit/siteprofiler/pkg/extract"
	"github.com/launchkit/siteprofiler/pkg/llm"
	"github.com/launchkit/siteprofiler/pkg/llmextract"
	"github.com/launchkit/siteprofiler/pkg/pagecache"
	"github.com/launchkit/siteprofiler/pkg/scrape"
)

// ProfileOutput is the JSON document the profile command writes to stdout.
type ProfileOutput struct {
	BaseURL    string                        `json:"base_url"`
	Profile    *models.ExtractedBusinessInfo `json:"profile"`
	Pages      []PageSummary                 `json:"pages"`
	Errors     []models.PageError            `json:"errors"`
	DurationMs int64                         `json:"duration_ms"`
}

// PageSummary is the per-page slice of a profile run.
type PageSummary struct {
	URL          string          `json:"url"`
	PageType     models.PageType `json:"page_type"`
	UsedLLM      bool            `json:"used_llm"`
	UsedFallback bool            `json:"used_fallback,omitempty"`
	Errors       []string        `json:"errors,omitempty"`
}

// ExtractOutput is the JSON document the extract command writes to stdout.
type ExtractOutput struct {
	URL      string                        `json:"url"`
	Profile  *models.ExtractedBusinessInfo `json:"profile"`
	Metadata *models.ExtractionMetadata    `json:"metadata,omitempty"`
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setup loads .env, the YAML config, and applies flag overrides shared by
// all commands.
func setup(c *cli.Context) (*models.Config, *slog.Logger, error) {
	_ = godotenv.Load()
	logger := newLogger(c)

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, logger, fmt.Errorf("loading config: %w", err)
	}
	if c.IsSet("max-pages") {
		cfg.MaxPagesPerSite = c.Int("max-pages")
	}
	if c.Bool("no-cache") {
		cfg.CachePath = ""
	}
	return cfg, logger, nil
}

// newClient builds the scraping client, wiring the sqlite page cache when a
// cache path is configured.
func newClient(cfg *models.Config, logger *slog.Logger) (scrape.Client, func(), error) {
	if cfg.CachePath == "" {
		return scrape.NewHTTPClient(cfg, nil), func() {}, nil
	}
	cache, err := pagecache.Open(cfg.CachePath, cfg.CacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("opening page cache: %w", err)
	}
	if pruned, err := cache.Prune(); err != nil {
		logger.Warn("cache prune failed", "error", err)
	} else if pruned > 0 {
		logger.Debug("pruned expired cache entries", "count", pruned)
	}
	return scrape.NewHTTPClient(cfg, cache), func() { _ = cache.Close() }, nil
}

// newOrchestrator returns the hybrid LLM orchestrator when an API key is
// available and the run doesn't force the algorithmic path.
func newOrchestrator(c *cli.Context, cfg *models.Config, logger *slog.Logger) *llmextract.Orchestrator {
	if c.Bool("algorithmic") {
		return nil
	}
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		logger.Info("OPENROUTER_API_KEY not set, using algorithmic extraction only")
		return nil
	}
	client := llm.NewOpenRouter(apiKey)
	return llmextract.New(client, client, cfg, logger)
}

// ProfileAction crawls a site, extracts every page, and merges the results
// into one business profile on stdout.
func ProfileAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	rootURL, err := common.ValidateURL(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("usage: siteprofiler profile <url>: %v", err), 1)
	}

	client, closeCache, err := newClient(cfg, logger)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer closeCache()

	ctx := c.Context
	start := time.Now()

	crawl, err := discovery.New(client, cfg, logger).DiscoverAndScrapePages(ctx, rootURL)
	if err != nil {
		return cli.Exit(fmt.Sprintf("discovery failed: %v", err), 2)
	}
	if len(crawl.Pages) == 0 {
		logger.Error("no pages scraped", "url", rootURL, "errors", len(crawl.Errors))
		return cli.Exit("homepage could not be fetched", 2)
	}

	orchestrator := newOrchestrator(c, cfg, logger)
	algorithmic := extract.New()

	output := &ProfileOutput{BaseURL: crawl.BaseURL, Errors: crawl.Errors}
	pageProfiles := make([]PageProfile, 0, len(crawl.Pages))
	for _, page := range crawl.Pages {
		summary := PageSummary{URL: page.URL, PageType: page.PageType}

		var info *models.ExtractedBusinessInfo
		if orchestrator != nil {
			var meta *models.ExtractionMetadata
			info, meta, err = orchestrator.Extract(ctx, page.HTML, page.URL, "")
			if err != nil {
				logger.Warn("hybrid extraction failed, extracting algorithmically",
					"url", page.URL, "error", err)
				info = algorithmic.Extract(page.HTML, page.URL)
			} else {
				summary.UsedLLM = true
				summary.UsedFallback = meta.UsedFallback
				summary.Errors = meta.Errors
			}
		} else {
			info = algorithmic.Extract(page.HTML, page.URL)
		}

		pageProfiles = append(pageProfiles, PageProfile{Page: page, Info: info})
		output.Pages = append(output.Pages, summary)
	}

	output.Profile = MergeProfiles(pageProfiles)
	output.DurationMs = time.Since(start).Milliseconds()

	logger.Info("profile complete", "url", crawl.BaseURL,
		"pages", len(crawl.Pages), "errors", len(crawl.Errors),
		"duration_ms", output.DurationMs)
	return writeJSON(output)
}

// DiscoverAction crawls a site and prints the discovery result without
// extracting anything.
func DiscoverAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	rootURL, err := common.ValidateURL(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("usage: siteprofiler discover <url>: %v", err), 1)
	}

	client, closeCache, err := newClient(cfg, logger)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer closeCache()

	crawl, err := discovery.New(client, cfg, logger).DiscoverAndScrapePages(c.Context, rootURL)
	if err != nil {
		return cli.Exit(fmt.Sprintf("discovery failed: %v", err), 2)
	}
	return writeJSON(crawl)
}

// ExtractAction extracts a business profile from a single page.
func ExtractAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	pageURL, err := common.ValidateURL(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("usage: siteprofiler extract <url>: %v", err), 1)
	}

	client, closeCache, err := newClient(cfg, logger)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer closeCache()

	result := client.FetchPage(c.Context, pageURL)
	if !result.Success {
		return cli.Exit(fmt.Sprintf("fetching %s: %s", pageURL, result.Error), 2)
	}

	output := &ExtractOutput{URL: pageURL}
	if orchestrator := newOrchestrator(c, cfg, logger); orchestrator != nil {
		info, meta, err := orchestrator.Extract(c.Context, result.HTML, pageURL, "")
		if err != nil {
			return cli.Exit(fmt.Sprintf("extracting %s: %v", pageURL, err), 2)
		}
		output.Profile = info
		output.Metadata = meta
	} else {
		output.Profile = extract.New().Extract(result.HTML, pageURL)
	}
	return writeJSON(output)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return cli.Exit(fmt.Sprintf("encoding output: %v", err), 2)
	}
	return nil
}
