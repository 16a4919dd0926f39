package fetcher

import (
	"context"
	"time"
)

// Result is the outcome of fetching a single URL.
type Result struct {
	// URL is the original request URL.
	URL string

	// FinalURL is the URL after redirects were followed. Equal to URL
	// when no redirect occurred.
	FinalURL string

	StatusCode  int
	Body        []byte
	ContentType string
	Duration    time.Duration
}

// Fetcher retrieves a single page over the network.
type Fetcher interface {
	// Fetch retrieves the content at the given URL.
	Fetch(ctx context.Context, rawURL string) (*Result, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
