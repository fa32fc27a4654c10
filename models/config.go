package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the whole pipeline. Values come
// from an optional YAML file with CLI flags layered on top; the zero config
// is completed by Defaults so every limit is always set.
type Config struct {
	// Crawl
	MaxPagesPerSite  int           `yaml:"max_pages_per_site"`
	FetchConcurrency int           `yaml:"fetch_concurrency"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
	MaxPageBytes     int64         `yaml:"max_page_bytes"`
	UserAgent        string        `yaml:"user_agent"`

	// Page cache
	CachePath string        `yaml:"cache_path"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`

	// Preprocessing byte ceilings
	VisionHTMLBytes int `yaml:"vision_html_bytes"`
	TextBytes       int `yaml:"text_bytes"`
	ImageHTMLBytes  int `yaml:"image_html_bytes"`

	// LLM extraction
	VisionModel       string `yaml:"vision_model"`
	TextModel         string `yaml:"text_model"`
	EnableFallback    *bool  `yaml:"enable_fallback"`
	MinDataCategories int    `yaml:"min_data_categories"`
	LLMMaxTokens      int    `yaml:"llm_max_tokens"`
}

// DefaultConfig returns a config with every knob set to its default.
func DefaultConfig() *Config {
	enabled := true
	return &Config{
		MaxPagesPerSite:   6,
		FetchConcurrency:  3,
		FetchTimeout:      30 * time.Second,
		MaxPageBytes:      2 << 20, // 2MB raw HTML cap
		UserAgent:         "siteprofiler/1.0 (+https://github.com/launchkit/siteprofiler)",
		CachePath:         "siteprofiler.db",
		CacheTTL:          24 * time.Hour,
		VisionHTMLBytes:   10 * 1024,
		TextBytes:         15 * 1024,
		ImageHTMLBytes:    10 * 1024,
		VisionModel:       "anthropic/claude-sonnet-4",
		TextModel:         "openai/gpt-4o-mini",
		EnableFallback:    &enabled,
		MinDataCategories: 2,
		LLMMaxTokens:      4096,
	}
}

// FallbackEnabled reports whether the algorithmic fallback may replace a
// failed or thin LLM extraction.
func (c *Config) FallbackEnabled() bool {
	return c.EnableFallback == nil || *c.EnableFallback
}

// applyDefaults fills any unset field from DefaultConfig.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.MaxPagesPerSite <= 0 {
		c.MaxPagesPerSite = d.MaxPagesPerSite
	}
	if c.FetchConcurrency <= 0 {
		c.FetchConcurrency = d.FetchConcurrency
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.MaxPageBytes <= 0 {
		c.MaxPageBytes = d.MaxPageBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.CachePath == "" {
		c.CachePath = d.CachePath
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = d.CacheTTL
	}
	if c.VisionHTMLBytes <= 0 {
		c.VisionHTMLBytes = d.VisionHTMLBytes
	}
	if c.TextBytes <= 0 {
		c.TextBytes = d.TextBytes
	}
	if c.ImageHTMLBytes <= 0 {
		c.ImageHTMLBytes = d.ImageHTMLBytes
	}
	if c.VisionModel == "" {
		c.VisionModel = d.VisionModel
	}
	if c.TextModel == "" {
		c.TextModel = d.TextModel
	}
	if c.EnableFallback == nil {
		c.EnableFallback = d.EnableFallback
	}
	if c.MinDataCategories <= 0 {
		c.MinDataCategories = d.MinDataCategories
	}
	if c.LLMMaxTokens <= 0 {
		c.LLMMaxTokens = d.LLMMaxTokens
	}
}

// LoadConfig reads a YAML config file and applies defaults for any field the
// file leaves unset. A missing file is not an error: the defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}
