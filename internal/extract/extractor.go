// Package extract turns a candidate link into a structured article
// record, applying the content-quality gate.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/fetcher"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

// Extractor fetches and parses a single article URL.
type Extractor struct {
	fetcher     fetcher.Fetcher
	skipDomains []string
	logger      *slog.Logger
}

// New creates an Extractor over the given fetcher.
func New(cfg *config.Config, f fetcher.Fetcher, logger *slog.Logger) *Extractor {
	return &Extractor{
		fetcher:     f,
		skipDomains: cfg.Scraper.SkipDomains,
		logger:      logger.With("component", "extractor"),
	}
}

// Extract fetches the URL and parses it into a candidate. A non-nil
// error always means the candidate was rejected; the error exists only
// to explain why and is never fatal to the batch.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*types.Extracted, error) {
	if err := config.ValidateURL(rawURL); err != nil {
		return nil, &types.ExtractError{URL: rawURL, Err: fmt.Errorf("%w: %v", types.ErrInvalidURL, err)}
	}
	if Skippable(rawURL, e.skipDomains) {
		return nil, &types.ExtractError{URL: rawURL, Err: types.ErrSkippedDomain}
	}

	res, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &types.ExtractError{URL: rawURL, Err: err}
	}

	ex, err := e.parse(res)
	if err != nil {
		return nil, &types.ExtractError{URL: rawURL, Err: err}
	}
	return ex, nil
}

// parse builds the candidate from a fetched page and applies the
// quality gate.
func (e *Extractor) parse(res *fetcher.Result) (*types.Extracted, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, err
	}

	title := extractTitle(doc)
	if err := CheckTitle(title); err != nil {
		return nil, err
	}

	body := extractBody(doc)
	description := Truncate(body, MaxDescriptionLen)
	if err := CheckDescription(description); err != nil {
		return nil, err
	}

	ex := &types.Extracted{
		FinalURL:      res.FinalURL,
		Title:         title,
		Description:   description,
		Source:        sourceDomain(res.FinalURL),
		PublishedDate: extractPublishDate(res.Body),
	}
	return ex, nil
}

// Skippable reports whether the URL belongs to a domain known to
// require client-side rendering. Matching is a substring check over
// the lowercased URL, so subdomains are covered.
func Skippable(rawURL string, skipDomains []string) bool {
	lower := strings.ToLower(rawURL)
	for _, domain := range skipDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// extractTitle prefers og:title, then <title>, then the first h1.
func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractBody collects paragraph text from the article body, stripping
// navigation chrome first.
func extractBody(doc *goquery.Document) string {
	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	clone := root.Clone()
	clone.Find("script, style, nav, footer, header, aside, .sidebar, .menu, .nav, .cookie").Remove()

	var paragraphs []string
	clone.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 10 {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, " ")
	if text == "" {
		// Pages without <p> markup still may carry readable text.
		text = strings.Join(strings.Fields(clone.Text()), " ")
	}
	return strings.TrimSpace(text)
}

// sourceDomain derives the bare source domain from the final URL.
func sourceDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "Unknown"
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
