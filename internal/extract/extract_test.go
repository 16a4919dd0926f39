package extract

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/fetcher"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const articleHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Central Bank Raises Rates Amid Inflation Fears</title>
    <meta property="og:title" content="Central Bank Raises Rates Amid Inflation Fears">
    <meta property="article:published_time" content="2025-03-14T09:30:00Z">
</head>
<body>
    <nav><p>Home News Sport Business this is navigation chrome</p></nav>
    <article>
        <h1>Central Bank Raises Rates Amid Inflation Fears</h1>
        <p>The central bank raised its benchmark interest rate by fifty basis points on Friday.</p>
        <p>Economists said the move signals a longer fight against inflation than markets expected.</p>
    </article>
    <footer><p>Copyright notice and other footer text lives here</p></footer>
</body>
</html>`

// --- Quality Gate Tests ---

func TestCheckTitle(t *testing.T) {
	if err := CheckTitle("Central Bank Raises Rates"); err != nil {
		t.Errorf("valid title rejected: %v", err)
	}
	if err := CheckTitle("short"); err == nil {
		t.Error("expected rejection for short title")
	}
	if err := CheckTitle(""); err == nil {
		t.Error("expected rejection for empty title")
	}
}

func TestCheckTitleJunk(t *testing.T) {
	for _, junk := range []string{"Access Denied", "404", "Not Found", "MSN"} {
		// Junk detection is case-insensitive but length still applies
		// first; pad short ones to clear the length bar.
		title := junk
		if len(title) < MinTitleLen {
			title = title + strings.Repeat(" ", MinTitleLen-len(title))
		}
		if err := CheckTitle(title); err == nil {
			t.Errorf("junk title %q accepted", junk)
		}
	}
}

func TestCheckDescription(t *testing.T) {
	long := strings.Repeat("word ", 20)
	if err := CheckDescription(long); err != nil {
		t.Errorf("valid description rejected: %v", err)
	}
	if err := CheckDescription("too short"); err == nil {
		t.Error("expected rejection for short description")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 400)
	got := Truncate(long, MaxDescriptionLen)
	if len(got) != MaxDescriptionLen+3 {
		t.Errorf("expected %d chars, got %d", MaxDescriptionLen+3, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}

	short := "fits as is"
	if Truncate(short, MaxDescriptionLen) != short {
		t.Error("short text should pass through unchanged")
	}
}

// --- Skip Domain Tests ---

func TestSkippable(t *testing.T) {
	skip := []string{"msn.com", "news.google.com"}

	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.msn.com/en-us/money/story", true},
		{"https://MSN.com/story", true},
		{"https://news.google.com/articles/abc", true},
		{"https://www.reuters.com/markets/story", false},
		{"https://example.com/msn.com-is-down", true}, // substring match is intentional
	}
	for _, c := range cases {
		if got := Skippable(c.url, skip); got != c.want {
			t.Errorf("Skippable(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

// --- Date Parsing Tests ---

func TestParseDateLayouts(t *testing.T) {
	cases := []string{
		"2025-03-14T09:30:00Z",
		"2025-03-14T09:30:00",
		"2025-03-14 09:30:00",
		"2025-03-14",
		"2025/03/14",
		"March 14, 2025",
		"Mar 14, 2025",
		"14 March 2025",
		"14 Mar 2025",
	}
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, s := range cases {
		got, ok := parseDate(s)
		if !ok {
			t.Errorf("parseDate(%q) failed", s)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", s, got, want)
		}
	}

	if _, ok := parseDate("not a date"); ok {
		t.Error("expected failure for garbage input")
	}
}

func TestExtractPublishDateMeta(t *testing.T) {
	got := extractPublishDate([]byte(articleHTML))
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractPublishDateJSONLD(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"NewsArticle","datePublished":"2025-01-20T08:00:00Z"}
</script>
</head><body><p>body</p></body></html>`
	got := extractPublishDate([]byte(page))
	want := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractPublishDateAbsent(t *testing.T) {
	got := extractPublishDate([]byte("<html><body><p>no date here</p></body></html>"))
	if !got.IsZero() {
		t.Errorf("expected zero time, got %v", got)
	}
}

// --- Extractor Tests ---

func testExtractor(t *testing.T) (*Extractor, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scraper.RequestTimeout = 5 * time.Second
	f, err := fetcher.NewHTTPFetcher(cfg, testLogger)
	if err != nil {
		t.Fatalf("create fetcher: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return New(cfg, f, testLogger), cfg
}

func TestExtractArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e, _ := testExtractor(t)
	ex, err := e.Extract(context.Background(), srv.URL+"/story")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if ex.Title != "Central Bank Raises Rates Amid Inflation Fears" {
		t.Errorf("unexpected title %q", ex.Title)
	}
	if strings.Contains(ex.Description, "navigation chrome") {
		t.Error("description should not include nav text")
	}
	if strings.Contains(ex.Description, "footer text") {
		t.Error("description should not include footer text")
	}
	if !strings.Contains(ex.Description, "benchmark interest rate") {
		t.Errorf("description missing article body: %q", ex.Description)
	}
	if !ex.HasDate() {
		t.Error("expected a publish date")
	}
	if ex.Source == "Unknown" || ex.Source == "" {
		t.Errorf("unexpected source %q", ex.Source)
	}
}

func TestExtractRejectsJunkTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>access denied  </title></head><body><p>` +
			strings.Repeat("filler text ", 20) + `</p></body></html>`))
	}))
	defer srv.Close()

	e, _ := testExtractor(t)
	if _, err := e.Extract(context.Background(), srv.URL); !errors.Is(err, types.ErrLowQuality) {
		t.Errorf("expected ErrLowQuality, got %v", err)
	}
}

func TestExtractRejectsThinBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>A Perfectly Fine Headline</title></head><body><p>thin.</p></body></html>`))
	}))
	defer srv.Close()

	e, _ := testExtractor(t)
	if _, err := e.Extract(context.Background(), srv.URL); !errors.Is(err, types.ErrLowQuality) {
		t.Errorf("expected ErrLowQuality, got %v", err)
	}
}

func TestExtractRejectsMalformedURL(t *testing.T) {
	e, _ := testExtractor(t)
	for _, raw := range []string{"not a url", "ftp://example.com/report", "https://"} {
		_, err := e.Extract(context.Background(), raw)
		if !errors.Is(err, types.ErrInvalidURL) {
			t.Errorf("Extract(%q): expected ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestExtractSkippedDomain(t *testing.T) {
	e, _ := testExtractor(t)
	_, err := e.Extract(context.Background(), "https://www.msn.com/en-us/money/story")
	if !errors.Is(err, types.ErrSkippedDomain) {
		t.Errorf("expected ErrSkippedDomain, got %v", err)
	}
}

func TestSourceDomain(t *testing.T) {
	cases := []struct {
		url, want string
	}{
		{"https://www.reuters.com/markets", "reuters.com"},
		{"https://edition.CNN.com/business", "edition.cnn.com"},
		{"not a url", "Unknown"},
	}
	for _, c := range cases {
		if got := sourceDomain(c.url); got != c.want {
			t.Errorf("sourceDomain(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
