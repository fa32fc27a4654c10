package pagecache

import (
	"testing"
	"time"
)

// setupTestCache creates an in-memory SQLite cache for testing.
func setupTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(":memory:", ttl)
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutAndGet(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	if _, ok := c.Get("https://example.com"); ok {
		t.Fatal("expected miss on empty cache")
	}

	if err := c.Put("https://example.com", "<html>one</html>"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	html, ok := c.Get("https://example.com")
	if !ok || html != "<html>one</html>" {
		t.Errorf("Get() = %q, %v; want cached HTML", html, ok)
	}

	// Replacing an entry keeps the latest HTML.
	if err := c.Put("https://example.com", "<html>two</html>"); err != nil {
		t.Fatalf("Put() replace error = %v", err)
	}
	html, ok = c.Get("https://example.com")
	if !ok || html != "<html>two</html>" {
		t.Errorf("Get() after replace = %q, %v", html, ok)
	}
}

func TestGetExpired(t *testing.T) {
	c := setupTestCache(t, time.Nanosecond)

	if err := c.Put("https://example.com", "<html></html>"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get("https://example.com"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestPrune(t *testing.T) {
	c := setupTestCache(t, time.Nanosecond)

	_ = c.Put("https://example.com/a", "a")
	_ = c.Put("https://example.com/b", "b")
	time.Sleep(10 * time.Millisecond)

	n, err := c.Prune()
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Prune() removed %d rows, want 2", n)
	}
}
