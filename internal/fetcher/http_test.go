package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestFetcher(t *testing.T, mutate func(*config.Config)) *HTTPFetcher {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	f, err := NewHTTPFetcher(cfg, testLogger)
	if err != nil {
		t.Fatalf("create fetcher: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFetchBasic(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if res.StatusCode != 200 {
		t.Errorf("status = %d", res.StatusCode)
	}
	if !strings.Contains(string(res.Body), "hello") {
		t.Errorf("unexpected body %q", res.Body)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("expected a browser user agent, got %q", gotUA)
	}
	if res.FinalURL != srv.URL {
		t.Errorf("final url = %q, want %q", res.FinalURL, srv.URL)
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/final", http.StatusFound)
			return
		}
		w.Write([]byte("<html>landed</html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	res, err := f.Fetch(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if res.URL != srv.URL+"/start" {
		t.Errorf("original url lost: %q", res.URL)
	}
	if res.FinalURL != srv.URL+"/final" {
		t.Errorf("final url = %q, want redirect target", res.FinalURL)
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %T", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", fe.StatusCode)
	}
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	if _, err := f.Fetch(context.Background(), srv.URL); !errors.Is(err, types.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestFetchGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("<html>compressed content</html>"))
		gz.Close()
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(string(res.Body), "compressed content") {
		t.Errorf("gzip body not decoded: %q", res.Body)
	}
}

func TestFetchBrotli(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		bw.Write([]byte("<html>brotli content</html>"))
		bw.Close()
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(string(res.Body), "brotli content") {
		t.Errorf("brotli body not decoded: %q", res.Body)
	}
}

func TestFetchMaxBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	f := newTestFetcher(t, func(c *config.Config) { c.Fetcher.MaxBodySize = 100 })
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Body) != 100 {
		t.Errorf("body = %d bytes, want truncation at 100", len(res.Body))
	}
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, srv.URL); err == nil {
		t.Error("expected error on cancelled context")
	}
}

func TestRandomUserAgentPool(t *testing.T) {
	f := newTestFetcher(t, nil)
	ua := f.randomUserAgent()
	found := false
	for _, agent := range f.userAgents {
		if ua == agent {
			found = true
		}
	}
	if !found {
		t.Errorf("user agent %q not from pool", ua)
	}
}
