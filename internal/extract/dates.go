package extract

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// dateXPaths are tried in order; the first parseable value wins.
var dateXPaths = []string{
	"//meta[@property='article:published_time']/@content",
	"//meta[@property='og:article:published_time']/@content",
	"//meta[@name='date']/@content",
	"//meta[@itemprop='datePublished']/@content",
	"//meta[@name='publish-date']/@content",
	"//meta[@name='publication_date']/@content",
	"//time/@datetime",
}

// dateLayouts cover the formats news sites actually emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// extractPublishDate pulls the publish date out of page metadata:
// standard meta tags first, then JSON-LD. Returns the zero time when
// nothing parseable is found.
func extractPublishDate(body []byte) time.Time {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return time.Time{}
	}

	for _, expr := range dateXPaths {
		nodes, err := htmlquery.QueryAll(doc, expr)
		if err != nil {
			continue
		}
		for _, n := range nodes {
			if t, ok := parseDate(htmlquery.InnerText(n)); ok {
				return t
			}
		}
	}

	return publishDateFromJSONLD(doc)
}

// publishDateFromJSONLD scans ld+json script blocks for a
// datePublished field.
func publishDateFromJSONLD(doc *html.Node) time.Time {
	scripts, err := htmlquery.QueryAll(doc, "//script[@type='application/ld+json']")
	if err != nil {
		return time.Time{}
	}

	for _, s := range scripts {
		var payload struct {
			DatePublished string `json:"datePublished"`
		}
		raw := htmlquery.InnerText(s)
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			// Some sites wrap the object in an array.
			var list []struct {
				DatePublished string `json:"datePublished"`
			}
			if err := json.Unmarshal([]byte(raw), &list); err != nil {
				continue
			}
			for _, entry := range list {
				if t, ok := parseDate(entry.DatePublished); ok {
					return t
				}
			}
			continue
		}
		if t, ok := parseDate(payload.DatePublished); ok {
			return t
		}
	}
	return time.Time{}
}

// parseDate tries the known layouts and normalizes to a UTC date.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
