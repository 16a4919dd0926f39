package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestRelevant(t *testing.T) {
	cases := []struct {
		title, country string
		want           bool
	}{
		{"India cuts rates to spur growth", "India", true},
		{"INDIA CUTS RATES", "india", true},
		{"Growth slows across the eurozone", "India", false},
		{"Paris hosts G7 summit", "France", false}, // no synonym matching
		{"Anything at all", "Global", true},
		{"Anything at all", "", true},
		{"Indiana factory orders up", "India", true}, // substring match accepted
	}
	for _, c := range cases {
		if got := Relevant(c.title, c.country); got != c.want {
			t.Errorf("Relevant(%q, %q) = %v, want %v", c.title, c.country, got, c.want)
		}
	}
}

func TestEffectiveDate(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	requested := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	// Publish date wins over the requested date.
	published := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	got := EffectiveDate(published, requested, today)
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("publish date: got %v, want %v", got, want)
	}

	// Missing publish date falls back to the requested date.
	got = EffectiveDate(time.Time{}, requested, today)
	want = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("fallback: got %v, want %v", got, want)
	}

	// A future publish date clamps to today before bucketing.
	future := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	got = EffectiveDate(future, requested, today)
	want = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("clamp: got %v, want %v", got, want)
	}
}

func TestEffectiveDateProperties(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		{},
		time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		got := EffectiveDate(d, today, today)
		if got.Day() != 1 {
			t.Errorf("EffectiveDate(%v) day = %d, want 1", d, got.Day())
		}
		if got.After(today) {
			t.Errorf("EffectiveDate(%v) = %v is after today", d, got)
		}
	}
}

func TestBucketMonth(t *testing.T) {
	got := BucketMonth(time.Date(2025, 2, 28, 17, 45, 3, 0, time.UTC))
	want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterLinks(t *testing.T) {
	links := []string{
		"https://www.reuters.com/markets/story",
		"https://www.msn.com/en-us/money/story",
		"https://twitter.com/econ/status/1",
		"https://apnews.com/article/economy",
	}
	skip := []string{"msn.com", "twitter.com"}

	got := FilterLinks(links, skip)
	if len(got) != 2 {
		t.Fatalf("kept %d links, want 2: %v", len(got), got)
	}
	if got[0] != links[0] || got[1] != links[3] {
		t.Errorf("order not preserved: %v", got)
	}

	// No skip list means no filtering.
	if all := FilterLinks(links, nil); len(all) != len(links) {
		t.Errorf("nil skip list filtered links: %v", all)
	}
}

func TestDisplayURL(t *testing.T) {
	got := displayURL("https://www.reuters.com/markets/us/economy-gdp-report")
	if got != "reuters.com/markets/us/economy-gdp-report" {
		t.Errorf("unexpected %q", got)
	}

	long := "https://example.com/" + strings.Repeat("a", 60)
	short := displayURL(long)
	if len(short) > len("example.com")+40 {
		t.Errorf("path not shortened: %q", short)
	}
}
