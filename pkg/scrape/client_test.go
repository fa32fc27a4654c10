package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/pagecache"
)

func testConfig() *models.Config {
	cfg := models.DefaultConfig()
	cfg.FetchTimeout = 5 * time.Second
	return cfg
}

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body>hello</body></html>")
	}))
	defer srv.Close()

	c := NewHTTPClient(testConfig(), nil)
	res := c.FetchPage(context.Background(), srv.URL)
	if !res.Success {
		t.Fatalf("FetchPage() failed: %s", res.Error)
	}
	if res.HTML != "<html><body>hello</body></html>" {
		t.Errorf("unexpected HTML: %q", res.HTML)
	}
	if res.Metadata == nil || res.Metadata.StatusCode != http.StatusOK {
		t.Errorf("unexpected metadata: %+v", res.Metadata)
	}
}

func TestFetchPageErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "non-html content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				_, _ = w.Write([]byte{0x89, 0x50})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewHTTPClient(testConfig(), nil)
			res := c.FetchPage(context.Background(), srv.URL)
			if res.Success {
				t.Error("expected failure result")
			}
			if res.Error == "" {
				t.Error("expected error message in result")
			}
		})
	}
}

func TestFetchPageUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>cached</html>")
	}))
	defer srv.Close()

	cache, err := pagecache.Open(":memory:", time.Hour)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer cache.Close()

	c := NewHTTPClient(testConfig(), cache)
	first := c.FetchPage(context.Background(), srv.URL)
	second := c.FetchPage(context.Background(), srv.URL)

	if !first.Success || !second.Success {
		t.Fatalf("fetches failed: %+v %+v", first, second)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
	if second.Metadata == nil || !second.Metadata.FromCache {
		t.Errorf("second fetch should be served from cache: %+v", second.Metadata)
	}
}

func TestFetchPagesBoundedConcurrency(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		mu.Lock()
		if n > maxInFlight.Load() {
			maxInFlight.Store(n)
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html></html>")
	}))
	defer srv.Close()

	urls := make([]string, 8)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/page-%d", srv.URL, i)
	}

	c := NewHTTPClient(testConfig(), nil)
	results := c.FetchPages(context.Background(), urls, 3)

	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}
	for u, r := range results {
		if !r.Success {
			t.Errorf("fetch of %s failed: %s", u, r.Error)
		}
	}
	if maxInFlight.Load() > 3 {
		t.Errorf("max in-flight fetches = %d, want <= 3", maxInFlight.Load())
	}
}
