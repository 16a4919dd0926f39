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

// DuckDuckGo searches via the DuckDuckGo Lite endpoint, which serves
// plain server-rendered HTML.
type DuckDuckGo struct {
	baseURL string
	fetcher fetcher.Fetcher
}

// NewDuckDuckGo creates a DuckDuckGo Lite provider.
func NewDuckDuckGo(baseURL string, f fetcher.Fetcher) *DuckDuckGo {
	return &DuckDuckGo{baseURL: baseURL, fetcher: f}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search scans result anchors from the lite page. External links only;
// anything pointing back at duckduckgo.com is navigation.
func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) ([]string, error) {
	searchURL := fmt.Sprintf("%s?q=%s", d.baseURL, url.QueryEscape(query))

	res, err := d.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("duckduckgo parse: %w", err)
	}

	var links []string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "http") && !strings.Contains(href, "duckduckgo.com") {
			links = append(links, href)
		}
		return len(links) < max
	})

	return links, nil
}
