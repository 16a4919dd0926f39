package pipeline

import (
	"strings"
	"time"
)

// Relevant applies the strict country filter: outside the Global
// scope, the country name must appear verbatim (case-insensitively) in
// the title. No stemming or synonym expansion — an article titled
// "Paris hosts G7 summit" does not pass for France, and that precision
// trade-off is intentional.
func Relevant(title, country string) bool {
	if country == "" || strings.EqualFold(country, "Global") {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(country))
}

// EffectiveDate derives the storage date for a candidate. The
// extracted publish date wins when present; otherwise the requested
// date is used. Either way the result is clamped to today and then
// bucketed to the first day of its month.
func EffectiveDate(published, requested, today time.Time) time.Time {
	d := published
	if d.IsZero() {
		d = requested
	}
	if d.After(today) {
		d = today
	}
	return BucketMonth(d)
}

// BucketMonth flattens a date to the first day of its calendar month.
func BucketMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DateOnly strips the time-of-day component.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FilterLinks drops candidate links on domains known to be
// non-extractable, before any fetch is attempted.
func FilterLinks(links, skipDomains []string) []string {
	if len(skipDomains) == 0 {
		return links
	}
	kept := links[:0:0]
	for _, link := range links {
		lower := strings.ToLower(link)
		skip := false
		for _, domain := range skipDomains {
			if strings.Contains(lower, domain) {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, link)
		}
	}
	return kept
}
