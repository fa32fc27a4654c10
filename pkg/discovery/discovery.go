// Package discovery crawls a site root: it fetches the homepage, extracts
// and prioritizes navigation links, then fetches the remaining pages with
// bounded concurrency.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/links"
	"github.com/launchkit/siteprofiler/pkg/scrape"
)

// Above this many secondary pages the worker pool widens from 3 to 4.
const concurrencyBoostThreshold = 6

// Discoverer orchestrates a single-site crawl through a scraping client.
type Discoverer struct {
	client scrape.Client
	cfg    *models.Config
	logger *slog.Logger
}

// New builds a Discoverer. logger may be nil.
func New(client scrape.Client, cfg *models.Config, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{client: client, cfg: cfg, logger: logger}
}

// DiscoverAndScrapePages crawls rootURL. A homepage failure is fatal and
// yields an otherwise-empty result with one error recorded; secondary-page
// failures accumulate in Errors without aborting sibling fetches.
func (d *Discoverer) DiscoverAndScrapePages(ctx context.Context, rootURL string) (*models.DiscoveryResult, error) {
	baseURL, err := links.NormalizeURL(rootURL, rootURL)
	if err != nil {
		return nil, fmt.Errorf("invalid root URL %q: %w", rootURL, err)
	}

	result := &models.DiscoveryResult{
		BaseURL: baseURL,
		Pages:   []models.DiscoveredPage{},
		Errors:  []models.PageError{},
	}

	d.logger.Info("Fetching homepage", "url", baseURL)
	home := d.client.FetchPage(ctx, baseURL)
	if !home.Success {
		d.logger.Error("Homepage fetch failed, aborting crawl", "url", baseURL, "error", home.Error)
		result.Errors = append(result.Errors, models.PageError{URL: baseURL, Message: home.Error})
		return result, nil
	}

	result.Pages = append(result.Pages, models.DiscoveredPage{
		URL:       baseURL,
		PageType:  models.PageTypeHome,
		HTML:      home.HTML,
		Metadata:  home.Metadata,
		ScrapedAt: time.Now(),
	})
	result.TotalPagesFound = 1
	result.TotalPagesScraped = 1

	navLinks, err := links.ExtractNavigationLinks(home.HTML, baseURL)
	if err != nil {
		// A homepage that defeats the link extractor still yields a
		// one-page crawl.
		d.logger.Warn("Link extraction failed", "url", baseURL, "error", err)
		return result, nil
	}
	result.TotalPagesFound += len(navLinks)

	prioritized := links.PrioritizeForScraping(navLinks, d.cfg.MaxPagesPerSite-1)
	if len(prioritized) == 0 {
		return result, nil
	}

	typeByURL := make(map[string]models.PageType, len(prioritized))
	urls := make([]string, 0, len(prioritized))
	for _, l := range prioritized {
		typeByURL[l.URL] = l.PageType
		urls = append(urls, l.URL)
	}

	concurrency := d.cfg.FetchConcurrency
	if len(urls) > concurrencyBoostThreshold {
		concurrency++
	}

	d.logger.Info("Fetching secondary pages", "count", len(urls), "concurrency", concurrency)
	fetched := d.client.FetchPages(ctx, urls, concurrency)

	// Iterate the prioritized slice rather than the map so page order is
	// deterministic.
	for _, u := range urls {
		res, ok := fetched[u]
		if !ok {
			result.Errors = append(result.Errors, models.PageError{URL: u, Message: "no result returned"})
			continue
		}
		if !res.Success {
			d.logger.Warn("Secondary page fetch failed", "url", u, "error", res.Error)
			result.Errors = append(result.Errors, models.PageError{URL: u, Message: res.Error})
			continue
		}
		result.Pages = append(result.Pages, models.DiscoveredPage{
			URL:       u,
			PageType:  typeByURL[u],
			HTML:      res.HTML,
			Metadata:  res.Metadata,
			ScrapedAt: time.Now(),
		})
		result.TotalPagesScraped++
	}

	d.logger.Info("Crawl complete",
		"base_url", baseURL,
		"pages_found", result.TotalPagesFound,
		"pages_scraped", result.TotalPagesScraped,
		"errors", len(result.Errors))
	return result, nil
}
