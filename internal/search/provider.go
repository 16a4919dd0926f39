// Package search implements the web-search provider chain that turns a
// topic query into candidate article links.
package search

import (
	"context"
)

// Provider executes a single web search and returns result links.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Search returns up to max result URLs for the query. An empty
	// slice with a nil error is a valid outcome.
	Search(ctx context.Context, query string, max int) ([]string, error)
}
