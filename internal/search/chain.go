package search

import (
	"context"
	"log/slog"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/fetcher"
)

// Chain tries providers in priority order and returns the first
// non-empty result list. Provider failures are swallowed: a failing
// provider behaves exactly like one that found nothing.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds the provider chain from configuration.
func NewChain(cfg *config.Config, f fetcher.Fetcher, logger *slog.Logger) *Chain {
	c := &Chain{logger: logger.With("component", "search_chain")}
	for _, name := range cfg.Search.Providers {
		switch name {
		case "duckduckgo":
			c.providers = append(c.providers, NewDuckDuckGo(cfg.Search.DuckDuckGoURL, f))
		case "bing":
			c.providers = append(c.providers, NewBing(cfg.Search.BingURL, f))
		}
	}
	return c
}

// NewChainFromProviders builds a chain over an explicit provider list.
func NewChainFromProviders(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger.With("component", "search_chain")}
}

// Search runs the chain. It never returns an error: every provider
// failure degrades to an empty result and the chain falls through to
// the next provider.
func (c *Chain) Search(ctx context.Context, query string, max int) []string {
	for _, p := range c.providers {
		links, err := p.Search(ctx, query, max)
		if err != nil {
			c.logger.Warn("search provider failed",
				"provider", p.Name(),
				"query", query,
				"error", err,
			)
			continue
		}
		if len(links) > 0 {
			c.logger.Debug("search complete",
				"provider", p.Name(),
				"query", query,
				"links", len(links),
			)
			return links
		}
	}
	return nil
}
