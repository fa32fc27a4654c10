// Package scrape provides the scraping-client contract used by page
// discovery, plus an HTTP implementation with a hardened transport and an
// optional SQLite page cache.
package scrape

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/pagecache"
)

// FetchResult is the per-URL outcome of a page fetch. Individual failures
// are represented in the result, never as a returned Go error, so batch
// callers can treat every URL independently.
type FetchResult struct {
	Success  bool
	HTML     string
	Metadata *models.PageMetadata
	Error    string
}

// Client is the scraping collaborator consumed by the discovery
// orchestrator.
type Client interface {
	FetchPage(ctx context.Context, url string) FetchResult
	FetchPages(ctx context.Context, urls []string, concurrency int) map[string]FetchResult
}

// HTTPClient fetches pages over plain HTTP with timeouts, a byte cap, and
// charset normalization to UTF-8. A nil cache disables caching.
type HTTPClient struct {
	client    *http.Client
	cache     *pagecache.Cache
	sizeCap   int64
	userAgent string
}

// NewHTTPClient builds a client from config. cache may be nil.
func NewHTTPClient(cfg *models.Config, cache *pagecache.Cache) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.FetchTimeout,
		},
		cache:     cache,
		sizeCap:   cfg.MaxPageBytes,
		userAgent: cfg.UserAgent,
	}
}

// FetchPage fetches a single URL. All failures are reported in the result.
func (h *HTTPClient) FetchPage(ctx context.Context, rawURL string) FetchResult {
	if h.cache != nil {
		if html, ok := h.cache.Get(rawURL); ok {
			return FetchResult{
				Success: true,
				HTML:    html,
				Metadata: &models.PageMetadata{
					StatusCode: http.StatusOK,
					FinalURL:   rawURL,
					FromCache:  true,
				},
			}
		}
	}

	html, meta, err := h.fetch(ctx, rawURL)
	if err != nil {
		return FetchResult{Error: err.Error()}
	}

	if h.cache != nil {
		// Cache write failures do not fail the fetch.
		_ = h.cache.Put(rawURL, html)
	}
	return FetchResult{Success: true, HTML: html, Metadata: meta}
}

// FetchPages fetches urls through a bounded worker pool and returns a map
// keyed by URL. Every URL gets an entry regardless of outcome.
func (h *HTTPClient) FetchPages(ctx context.Context, urls []string, concurrency int) map[string]FetchResult {
	return FetchAll(ctx, h, urls, concurrency)
}

// FetchAll runs FetchPage for each URL through client with at most
// concurrency fetches in flight. It is shared by every Client implementation
// that has no batched transport of its own.
func FetchAll(ctx context.Context, client Client, urls []string, concurrency int) map[string]FetchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	type job struct {
		url string
	}
	type outcome struct {
		url    string
		result FetchResult
	}

	jobs := make(chan job, len(urls))
	outcomes := make(chan outcome, len(urls))

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcomes <- outcome{url: j.url, result: client.FetchPage(ctx, j.url)}
			}
		}()
	}

	for _, u := range urls {
		jobs <- job{url: u}
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	results := make(map[string]FetchResult, len(urls))
	for o := range outcomes {
		results[o.url] = o.result
	}
	return results
}

func (h *HTTPClient) fetch(ctx context.Context, rawURL string) (string, *models.PageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "" && !strings.Contains(mediaType, "html") && !strings.Contains(mediaType, "xml") {
		return "", nil, fmt.Errorf("non-html content type %q", mediaType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.sizeCap))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read body: %w", err)
	}

	// Normalize whatever encoding the server sent to UTF-8 before the HTML
	// ever reaches a parser.
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8Data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		utf8Data = data
	}

	meta := &models.PageMetadata{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		FinalURL:    resp.Request.URL.String(),
	}
	return string(utf8Data), meta, nil
}
