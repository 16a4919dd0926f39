package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if len(cfg.Scraper.Topics) == 0 {
		return fmt.Errorf("scraper.topics must not be empty")
	}
	if cfg.Scraper.MaxResults < 1 {
		return fmt.Errorf("scraper.max_results must be >= 1, got %d", cfg.Scraper.MaxResults)
	}
	if cfg.Scraper.Concurrency < 1 {
		return fmt.Errorf("scraper.concurrency must be >= 1, got %d", cfg.Scraper.Concurrency)
	}
	if cfg.Scraper.Concurrency > 100 {
		return fmt.Errorf("scraper.concurrency must be <= 100, got %d", cfg.Scraper.Concurrency)
	}
	if cfg.Scraper.RequestTimeout <= 0 {
		return fmt.Errorf("scraper.request_timeout must be > 0")
	}
	if cfg.Scraper.ResultDelayMin < 0 || cfg.Scraper.ResultDelayMax < cfg.Scraper.ResultDelayMin {
		return fmt.Errorf("scraper.result_delay_min/max must satisfy 0 <= min <= max")
	}
	if cfg.Scraper.TopicDelayMin < 0 || cfg.Scraper.TopicDelayMax < cfg.Scraper.TopicDelayMin {
		return fmt.Errorf("scraper.topic_delay_min/max must satisfy 0 <= min <= max")
	}

	if len(cfg.Search.Providers) == 0 {
		return fmt.Errorf("search.providers must not be empty")
	}
	for _, p := range cfg.Search.Providers {
		if p != "duckduckgo" && p != "bing" {
			return fmt.Errorf("search.providers entry %q is not supported (valid: duckduckgo, bing)", p)
		}
	}

	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	if cfg.Browser.Enabled && cfg.Browser.MaxPages < 1 {
		return fmt.Errorf("browser.max_pages must be >= 1 when browser is enabled")
	}

	switch cfg.Storage.Type {
	case "sqlite":
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for sqlite storage")
		}
	case "mongodb":
		if cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri is required for mongodb storage")
		}
	default:
		return fmt.Errorf("storage.type %q is not supported (valid: sqlite, mongodb)", cfg.Storage.Type)
	}

	if cfg.Indicators.Concurrency < 1 {
		return fmt.Errorf("indicators.concurrency must be >= 1, got %d", cfg.Indicators.Concurrency)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is usable as an article link.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
