package models

import "time"

// PageType classifies a site page by its inferred purpose.
type PageType string

const (
	PageTypeHome     PageType = "home"
	PageTypeAbout    PageType = "about"
	PageTypeContact  PageType = "contact"
	PageTypeServices PageType = "services"
	PageTypeTeam     PageType = "team"
	PageTypeProducts PageType = "products"
	PageTypeFAQ      PageType = "faq"
	PageTypeBlog     PageType = "blog"
	PageTypePrivacy  PageType = "privacy"
	PageTypeTerms    PageType = "terms"
	PageTypeOther    PageType = "other"
)

// PageMetadata carries optional transport-level data from the scraping client.
type PageMetadata struct {
	StatusCode  int    `json:"status_code,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	FinalURL    string `json:"final_url,omitempty"`
	FromCache   bool   `json:"from_cache,omitempty"`
}

// DiscoveredPage is one successfully fetched page. It is never mutated after
// creation.
type DiscoveredPage struct {
	URL       string        `json:"url"`
	PageType  PageType      `json:"page_type"`
	HTML      string        `json:"-"`
	Metadata  *PageMetadata `json:"metadata,omitempty"`
	ScrapedAt time.Time     `json:"scraped_at"`
}

// PageError records a single failed page fetch within a crawl.
type PageError struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// DiscoveryResult is the outcome of a full site crawl. Only a homepage
// failure aborts discovery; secondary-page failures accumulate in Errors.
type DiscoveryResult struct {
	BaseURL           string           `json:"base_url"`
	Pages             []DiscoveredPage `json:"pages"`
	Errors            []PageError      `json:"errors"`
	TotalPagesFound   int              `json:"total_pages_found"`
	TotalPagesScraped int              `json:"total_pages_scraped"`
}
