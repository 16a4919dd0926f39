package search

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/akashdoifode13/WorldSense/internal/fetcher"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// stubFetcher serves canned HTML without touching the network.
type stubFetcher struct {
	body string
	err  error
}

func (s *stubFetcher) Fetch(ctx context.Context, rawURL string) (*fetcher.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &fetcher.Result{
		URL:        rawURL,
		FinalURL:   rawURL,
		StatusCode: 200,
		Body:       []byte(s.body),
	}, nil
}

func (s *stubFetcher) Close() error { return nil }
func (s *stubFetcher) Type() string { return "stub" }

const ddgHTML = `<html><body>
<a href="/settings">Settings</a>
<a href="https://duckduckgo.com/about">About</a>
<a href="https://www.reuters.com/markets/gdp-report">GDP Report</a>
<a href="https://www.ft.com/content/abc123">FT Story</a>
<a href="https://apnews.com/article/economy">AP Story</a>
</body></html>`

const bingHTML = `<html><body>
<a class="title" href="https://www.bloomberg.com/news/articles/rates">Rates Story</a>
<a class="title" href="https://www.wsj.com/economy/inflation">Inflation Story</a>
<a class="title" href="https://www.cnbc.com/markets/outlook">Outlook Story</a>
<a href="https://www.bing.com/news">More news</a>
</body></html>`

func TestDuckDuckGoSearch(t *testing.T) {
	d := NewDuckDuckGo("https://lite.duckduckgo.com/lite/", &stubFetcher{body: ddgHTML})

	links, err := d.Search(context.Background(), "GDP news", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d: %v", len(links), links)
	}
	for _, l := range links {
		if l == "https://duckduckgo.com/about" {
			t.Error("internal duckduckgo link should be filtered")
		}
	}
}

func TestDuckDuckGoMaxResults(t *testing.T) {
	d := NewDuckDuckGo("https://lite.duckduckgo.com/lite/", &stubFetcher{body: ddgHTML})

	links, err := d.Search(context.Background(), "GDP news", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("expected 2 links, got %d", len(links))
	}
}

func TestProvidersSmallestMax(t *testing.T) {
	// max_results validates as >= 1, so 1 is the smallest cap a
	// provider ever sees.
	d := NewDuckDuckGo("https://lite.duckduckgo.com/lite/", &stubFetcher{body: ddgHTML})
	links, err := d.Search(context.Background(), "GDP news", 1)
	if err != nil {
		t.Fatalf("duckduckgo: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("duckduckgo returned %d links, want 1", len(links))
	}

	b := NewBing("https://www.bing.com/news/search", &stubFetcher{body: bingHTML})
	links, err = b.Search(context.Background(), "GDP news", 1)
	if err != nil {
		t.Fatalf("bing: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("bing returned %d links, want 1", len(links))
	}
}

func TestBingSearchTitles(t *testing.T) {
	b := NewBing("https://www.bing.com/news/search", &stubFetcher{body: bingHTML})

	links, err := b.Search(context.Background(), "inflation news", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d: %v", len(links), links)
	}
	for _, l := range links {
		if l == "https://www.bing.com/news" {
			t.Error("bing-internal link should not appear")
		}
	}
}

func TestBingGenericFallback(t *testing.T) {
	// No a.title anchors at all, only generic links.
	page := `<html><body>
<a href="https://www.bing.com/news">internal</a>
<a href="https://www.economist.com/finance/story">Story</a>
</body></html>`
	b := NewBing("https://www.bing.com/news/search", &stubFetcher{body: page})

	links, err := b.Search(context.Background(), "trade news", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(links) != 1 || links[0] != "https://www.economist.com/finance/story" {
		t.Errorf("unexpected links %v", links)
	}
}

// --- Chain Tests ---

// namedStub is a Provider with a fixed answer.
type namedStub struct {
	name  string
	links []string
	err   error
	calls int
}

func (n *namedStub) Name() string { return n.name }
func (n *namedStub) Search(ctx context.Context, query string, max int) ([]string, error) {
	n.calls++
	return n.links, n.err
}

func TestChainFirstProviderWins(t *testing.T) {
	first := &namedStub{name: "first", links: []string{"https://a.example/1"}}
	second := &namedStub{name: "second", links: []string{"https://b.example/1"}}
	c := NewChainFromProviders(testLogger, first, second)

	links := c.Search(context.Background(), "q", 5)
	if len(links) != 1 || links[0] != "https://a.example/1" {
		t.Errorf("unexpected links %v", links)
	}
	if second.calls != 0 {
		t.Error("second provider should not be consulted")
	}
}

func TestChainFallsBackOnEmpty(t *testing.T) {
	first := &namedStub{name: "first"}
	second := &namedStub{name: "second", links: []string{"https://b.example/1"}}
	c := NewChainFromProviders(testLogger, first, second)

	links := c.Search(context.Background(), "q", 5)
	if len(links) != 1 || links[0] != "https://b.example/1" {
		t.Errorf("unexpected links %v", links)
	}
}

func TestChainFallsBackOnError(t *testing.T) {
	first := &namedStub{name: "first", err: errors.New("rate limited")}
	second := &namedStub{name: "second", links: []string{"https://b.example/1"}}
	c := NewChainFromProviders(testLogger, first, second)

	links := c.Search(context.Background(), "q", 5)
	if len(links) != 1 {
		t.Fatalf("expected fallback result, got %v", links)
	}
}

func TestChainAllFail(t *testing.T) {
	first := &namedStub{name: "first", err: errors.New("down")}
	second := &namedStub{name: "second"}
	c := NewChainFromProviders(testLogger, first, second)

	if links := c.Search(context.Background(), "q", 5); links != nil {
		t.Errorf("expected nil, got %v", links)
	}
}
