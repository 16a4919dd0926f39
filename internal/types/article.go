package types

import "time"

// Article is a persisted news article record.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // the search topic that produced this article
	Country     string    `json:"country"`
	// PublishedDate is the effective date: clamped to today, then
	// bucketed to the first day of its month before storage.
	PublishedDate time.Time `json:"published_date"`
	ScrapedAt     time.Time `json:"scraped_at"`
}

// Extracted is a parsed article candidate before filtering and storage.
type Extracted struct {
	// FinalURL is the URL after redirects, which may differ from the
	// link the search provider returned.
	FinalURL    string
	Title       string
	Description string
	Source      string
	// PublishedDate is zero when no publish date could be parsed.
	PublishedDate time.Time
}

// HasDate reports whether a publish date was parsed from the page.
func (e *Extracted) HasDate() bool {
	return !e.PublishedDate.IsZero()
}

// Query describes one search against the provider chain.
type Query struct {
	Topic    string
	Country  string
	Language string
}

// Text builds the search query string. Country is folded in only when
// the scope is narrower than Global.
func (q Query) Text() string {
	if q.Country != "" && q.Country != CountryGlobal {
		return q.Topic + " " + q.Country + " news"
	}
	return q.Topic + " news"
}

// CountryGlobal is the country scope that disables relevance filtering.
const CountryGlobal = "Global"
