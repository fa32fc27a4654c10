package discovery

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/scrape"
)

// fakeClient serves canned results keyed by URL and counts calls.
type fakeClient struct {
	pages      map[string]scrape.FetchResult
	fetchCalls atomic.Int32
	batchCalls atomic.Int32
}

func (f *fakeClient) FetchPage(_ context.Context, url string) scrape.FetchResult {
	f.fetchCalls.Add(1)
	if res, ok := f.pages[url]; ok {
		return res
	}
	return scrape.FetchResult{Error: "not found"}
}

func (f *fakeClient) FetchPages(ctx context.Context, urls []string, _ int) map[string]scrape.FetchResult {
	f.batchCalls.Add(1)
	out := make(map[string]scrape.FetchResult, len(urls))
	for _, u := range urls {
		out[u] = f.FetchPage(ctx, u)
	}
	return out
}

const homepageHTML = `<html><body>
	<nav>
		<a href="/about">About Us</a>
		<a href="/contact">Contact</a>
		<a href="/blog">Blog</a>
	</nav>
	<h1>Acme</h1>
</body></html>`

func TestDiscoverAndScrapePages(t *testing.T) {
	client := &fakeClient{pages: map[string]scrape.FetchResult{
		"https://example.com":         {Success: true, HTML: homepageHTML},
		"https://example.com/about":   {Success: true, HTML: "<html>about</html>"},
		"https://example.com/contact": {Success: true, HTML: "<html>contact</html>"},
		"https://example.com/blog":    {Success: true, HTML: "<html>blog</html>"},
	}}

	d := New(client, models.DefaultConfig(), nil)
	result, err := d.DiscoverAndScrapePages(context.Background(), "https://example.com/")
	if err != nil {
		t.Fatalf("DiscoverAndScrapePages() error = %v", err)
	}

	if result.TotalPagesScraped != 4 {
		t.Errorf("TotalPagesScraped = %d, want 4", result.TotalPagesScraped)
	}
	if result.TotalPagesFound != 4 {
		t.Errorf("TotalPagesFound = %d, want 4", result.TotalPagesFound)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %+v", result.Errors)
	}
	if result.Pages[0].PageType != models.PageTypeHome {
		t.Errorf("first page type = %q, want home", result.Pages[0].PageType)
	}
	// Secondary pages come back in priority order.
	if result.Pages[1].PageType != models.PageTypeAbout || result.Pages[2].PageType != models.PageTypeContact {
		t.Errorf("secondary page order wrong: %+v", result.Pages)
	}
}

func TestHomepageFailureIsFatal(t *testing.T) {
	client := &fakeClient{pages: map[string]scrape.FetchResult{
		"https://example.com": {Error: "connection refused"},
	}}

	d := New(client, models.DefaultConfig(), nil)
	result, err := d.DiscoverAndScrapePages(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("DiscoverAndScrapePages() error = %v", err)
	}

	if len(result.Pages) != 0 {
		t.Errorf("expected no pages, got %d", len(result.Pages))
	}
	if len(result.Errors) != 1 || result.Errors[0].URL != "https://example.com" {
		t.Errorf("expected exactly one error for the root URL, got %+v", result.Errors)
	}
	if client.batchCalls.Load() != 0 {
		t.Errorf("secondary fetches attempted after homepage failure")
	}
	if client.fetchCalls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1", client.fetchCalls.Load())
	}
}

func TestSecondaryFailuresArePartial(t *testing.T) {
	client := &fakeClient{pages: map[string]scrape.FetchResult{
		"https://example.com":       {Success: true, HTML: homepageHTML},
		"https://example.com/about": {Success: true, HTML: "<html>about</html>"},
		// contact and blog fail
	}}

	d := New(client, models.DefaultConfig(), nil)
	result, err := d.DiscoverAndScrapePages(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("DiscoverAndScrapePages() error = %v", err)
	}

	if result.TotalPagesScraped != 2 {
		t.Errorf("TotalPagesScraped = %d, want 2", result.TotalPagesScraped)
	}
	if len(result.Errors) != 2 {
		t.Errorf("got %d errors, want 2: %+v", len(result.Errors), result.Errors)
	}
}

func TestMaxPagesPerSiteBound(t *testing.T) {
	client := &fakeClient{pages: map[string]scrape.FetchResult{
		"https://example.com":         {Success: true, HTML: homepageHTML},
		"https://example.com/about":   {Success: true, HTML: "<html></html>"},
		"https://example.com/contact": {Success: true, HTML: "<html></html>"},
		"https://example.com/blog":    {Success: true, HTML: "<html></html>"},
	}}

	cfg := models.DefaultConfig()
	cfg.MaxPagesPerSite = 2 // homepage + 1 secondary
	d := New(client, cfg, nil)

	result, err := d.DiscoverAndScrapePages(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("DiscoverAndScrapePages() error = %v", err)
	}
	if result.TotalPagesScraped != 2 {
		t.Errorf("TotalPagesScraped = %d, want 2", result.TotalPagesScraped)
	}
	// The single secondary slot goes to the highest-priority link.
	if result.Pages[1].PageType != models.PageTypeAbout {
		t.Errorf("secondary page = %q, want about", result.Pages[1].PageType)
	}
}
