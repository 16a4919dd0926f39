package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akashdoifode13/WorldSense/internal/fetcher"
)

// Bing searches Bing News. It is the fallback provider when DuckDuckGo
// returns nothing.
type Bing struct {
	baseURL string
	fetcher fetcher.Fetcher
}

// NewBing creates a Bing News provider.
func NewBing(baseURL string, f fetcher.Fetcher) *Bing {
	return &Bing{baseURL: baseURL, fetcher: f}
}

func (b *Bing) Name() string { return "bing" }

// Search scans Bing News result titles, falling back to a generic
// anchor scan when the title selector yields too few links.
func (b *Bing) Search(ctx context.Context, query string, max int) ([]string, error) {
	searchURL := fmt.Sprintf("%s?q=%s&form=TNSA02", b.baseURL, url.QueryEscape(query))

	res, err := b.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("bing search: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("bing parse: %w", err)
	}

	var links []string
	doc.Find("a.title").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "http") {
			links = append(links, href)
		}
		return len(links) < max
	})

	// The title class moves around between Bing layouts; fall back to a
	// generic scan when it produced too little.
	if len(links) < 3 && len(links) < max {
		seen := make(map[string]struct{}, len(links))
		for _, l := range links {
			seen[l] = struct{}{}
		}
		doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if _, dup := seen[href]; !dup &&
				strings.HasPrefix(href, "http") &&
				!strings.Contains(href, "bing.com") &&
				!strings.Contains(href, "microsoft.com") {
				links = append(links, href)
				seen[href] = struct{}{}
			}
			return len(links) < max
		})
	}

	return links, nil
}
