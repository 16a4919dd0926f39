// Package pipeline orchestrates the news ingestion run: per-topic web
// search, concurrent extraction, filtering, deduplication, storage,
// and the progress-event stream that reports it all.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"time"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/storage"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

// Searcher produces candidate links for a query string. Provider
// failures must already be absorbed: an empty slice is the only
// failure mode visible here.
type Searcher interface {
	Search(ctx context.Context, query string, max int) []string
}

// Extractor turns a candidate link into an article candidate. A
// non-nil error means the candidate was rejected and carries the
// reason; it is never fatal.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*types.Extracted, error)
}

// Params configures one scrape run. Zero values fall back to the
// configured defaults: empty Topics runs the configured topic list,
// empty Country uses the configured country scope, and a non-positive
// MaxResults uses the configured per-topic cap.
type Params struct {
	// Date is the requested target date. Zero means today; future
	// dates are clamped to today.
	Date       time.Time
	Country    string
	Topics     []string
	MaxResults int
}

// Pipeline is the news ingestion orchestrator. Construct once and
// share; it holds no per-run state.
type Pipeline struct {
	searcher    Searcher
	extractor   Extractor
	store       storage.Store
	logger      *slog.Logger
	concurrency int
	language    string

	resultDelayMin time.Duration
	resultDelayMax time.Duration
	topicDelayMin  time.Duration
	topicDelayMax  time.Duration
	skipDomains    []string

	// Configured defaults applied when Params leaves them unset.
	defaultTopics     []string
	defaultCountry    string
	defaultMaxResults int

	// now is the clock, injectable for tests.
	now func() time.Time
}

// New creates a Pipeline from configuration and its collaborators.
func New(cfg *config.Config, s Searcher, e Extractor, store storage.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		searcher:       s,
		extractor:      e,
		store:          store,
		logger:         logger.With("component", "pipeline"),
		concurrency:    cfg.Scraper.Concurrency,
		language:       cfg.Scraper.Language,
		resultDelayMin: cfg.Scraper.ResultDelayMin,
		resultDelayMax: cfg.Scraper.ResultDelayMax,
		topicDelayMin:  cfg.Scraper.TopicDelayMin,
		topicDelayMax:  cfg.Scraper.TopicDelayMax,
		skipDomains:    cfg.Scraper.SkipDomains,

		defaultTopics:     cfg.Scraper.Topics,
		defaultCountry:    cfg.Scraper.Country,
		defaultMaxResults: cfg.Scraper.MaxResults,

		now: time.Now,
	}
}

// Run starts a scrape and returns its progress-event stream. The
// channel is unbuffered and closed when the run finishes or the
// context is cancelled. Every store write commits individually, so
// abandoning the stream mid-run leaves fully valid state; re-running
// simply skips what was already stored.
func (p *Pipeline) Run(ctx context.Context, params Params) <-chan types.Event {
	events := make(chan types.Event)
	go func() {
		defer close(events)
		p.run(ctx, params, events)
	}()
	return events
}

// Scrape runs the pipeline synchronously, draining the event stream,
// and returns the total number of newly stored articles.
func (p *Pipeline) Scrape(ctx context.Context, params Params) int {
	var total int
	for ev := range p.Run(ctx, params) {
		if ev.Status == types.StatusComplete {
			total = ev.ArticlesAdded
		}
	}
	return total
}

// run is the sequential per-topic control loop.
func (p *Pipeline) run(ctx context.Context, params Params, events chan<- types.Event) {
	today := DateOnly(p.now())

	target := params.Date
	if target.IsZero() {
		target = today
	} else if target.After(today) {
		// Future dates are capped to today.
		target = today
	}

	country := params.Country
	if country == "" {
		country = p.defaultCountry
	}
	if country == "" {
		country = types.CountryGlobal
	}

	topics := params.Topics
	if len(topics) == 0 {
		topics = p.defaultTopics
	}

	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = p.defaultMaxResults
	}

	if !p.emit(ctx, events, types.Event{
		Status:  types.StatusInfo,
		Message: fmt.Sprintf("Starting news scrape for %s in %s...", target.Format("2006-01-02"), country),
	}) {
		return
	}

	var total int
	for _, topic := range topics {
		added, ok := p.processTopic(ctx, events, topic, country, target, today, maxResults)
		total += added
		if !ok {
			return
		}
	}

	p.emit(ctx, events, types.Event{
		Status:        types.StatusComplete,
		ArticlesAdded: total,
	})
}

// processTopic handles one topic end to end. The returned bool is
// false only when the consumer has gone away; any failure inside the
// topic is absorbed and reported as events.
func (p *Pipeline) processTopic(ctx context.Context, events chan<- types.Event, topic, country string, target, today time.Time, maxResults int) (added int, ok bool) {
	ok = true

	// A panic anywhere in one topic's processing must not take down
	// the run; it becomes an error event and the loop moves on.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("topic processing panicked", "topic", topic, "panic", r)
			p.emit(ctx, events, types.Event{
				Status:  types.StatusError,
				Message: fmt.Sprintf("Error scraping %s: %v", topic, r),
			})
		}
	}()

	label := topic
	if country != types.CountryGlobal {
		label = topic + " " + country
	}
	if !p.emit(ctx, events, types.Event{
		Status:  types.StatusInfo,
		Message: "Searching for: " + label,
	}) {
		return added, false
	}

	if !p.sleepRandom(ctx, p.topicDelayMin, p.topicDelayMax) {
		return added, false
	}

	query := types.Query{Topic: topic, Country: country, Language: p.language}.Text()
	links := p.searcher.Search(ctx, query, maxResults)

	if !p.emit(ctx, events, types.Event{
		Status:  types.StatusInfo,
		Message: fmt.Sprintf("Found %d links for %s", len(links), topic),
	}) {
		return added, false
	}

	if len(links) == 0 {
		if !p.emit(ctx, events, types.Event{
			Status:  types.StatusWarning,
			Message: "No articles found for " + topic,
		}) {
			return added, false
		}
		return added, true
	}

	links = FilterLinks(links, p.skipDomains)

	for res := range p.runExtractions(ctx, links) {
		// Politeness pause before downstream processing of each
		// completed fetch. This throttles duplicate checks and store
		// writes, not the fetch itself.
		if !p.sleepRandom(ctx, p.resultDelayMin, p.resultDelayMax) {
			return added, false
		}

		stored, cont := p.processResult(ctx, events, res, topic, country, target, today)
		if stored {
			added++
		}
		if !cont {
			return added, false
		}
	}

	if !p.emit(ctx, events, types.Event{
		Status:  types.StatusInfo,
		Message: fmt.Sprintf("Completed %s: Added %d articles", topic, added),
	}) {
		return added, false
	}
	return added, true
}

// processResult applies the relevance filter, date normalization, and
// deduplication to one completed extraction, then stores it. Exactly
// one terminal event (skipped, warning, error, or success) is emitted
// per candidate.
func (p *Pipeline) processResult(ctx context.Context, events chan<- types.Event, res result, topic, country string, target, today time.Time) (stored, cont bool) {
	if res.err != nil {
		p.logger.Debug("extraction rejected", "url", res.url, "reason", res.err)
		return false, p.emit(ctx, events, types.Event{
			Status:  types.StatusSkipped,
			Message: "Skipped: No content " + displayURL(res.url),
		})
	}

	ex := res.extracted
	if !p.emit(ctx, events, types.Event{
		Status:  types.StatusVisiting,
		Message: "Analyzed " + displayURL(ex.FinalURL),
		URL:     ex.FinalURL,
	}) {
		return false, false
	}

	if !Relevant(ex.Title, country) {
		return false, p.emit(ctx, events, types.Event{
			Status:  types.StatusSkipped,
			Message: fmt.Sprintf("Skipped: Title missing country name '%s'", country),
		})
	}

	effective := EffectiveDate(ex.PublishedDate, target, today)

	exists, err := p.store.ArticleExists(ctx, res.url, ex.FinalURL, effective)
	if err != nil {
		p.logger.Warn("duplicate check failed", "url", ex.FinalURL, "error", err)
		return false, p.emit(ctx, events, types.Event{
			Status:  types.StatusError,
			Message: "Error checking duplicate: " + trimError(err),
		})
	}
	if exists {
		return false, p.emit(ctx, events, types.Event{
			Status:  types.StatusSkipped,
			Message: fmt.Sprintf("Skipped: Duplicate for date %s - %s...", effective.Format("2006-01-02"), ex.Source),
		})
	}

	article := &types.Article{
		Title:         ex.Title,
		URL:           ex.FinalURL,
		Source:        ex.Source,
		Description:   ex.Description,
		Category:      topic,
		Country:       country,
		PublishedDate: effective,
		ScrapedAt:     p.now().UTC(),
	}

	if _, err := p.store.InsertArticle(ctx, article); err != nil {
		if isDuplicate(err) {
			// Lost the race against a concurrent run; the unique
			// constraint is the real guard, the earlier check only a
			// fast path.
			return false, p.emit(ctx, events, types.Event{
				Status:  types.StatusSkipped,
				Message: fmt.Sprintf("Skipped: Duplicate for date %s - %s...", effective.Format("2006-01-02"), ex.Source),
			})
		}
		p.logger.Error("article insert failed", "url", ex.FinalURL, "error", err)
		return false, p.emit(ctx, events, types.Event{
			Status:  types.StatusError,
			Message: "Error saving article: " + trimError(err),
		})
	}

	return true, p.emit(ctx, events, types.Event{
		Status:  types.StatusSuccess,
		Message: "Saved: " + truncateRunes(ex.Title, 50) + "...",
	})
}

// emit delivers one event, giving up when the consumer cancels. The
// false return propagates up and unwinds the whole run.
func (p *Pipeline) emit(ctx context.Context, events chan<- types.Event, ev types.Event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// sleepRandom pauses for a random duration in [min, max], returning
// false when the context was cancelled during the pause.
func (p *Pipeline) sleepRandom(ctx context.Context, min, max time.Duration) bool {
	if max <= 0 {
		return ctx.Err() == nil
	}
	d := min
	if max > min {
		d = min + time.Duration(rand.Int63n(int64(max-min)))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// isDuplicate reports whether an insert failed on the uniqueness
// constraint.
func isDuplicate(err error) bool {
	return errors.Is(err, types.ErrDuplicate)
}

// displayURL renders a URL as "domain/short-path" for event messages.
func displayURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return truncateRunes(rawURL, 40)
	}
	domain := trimWWW(u.Host)
	path := u.Path
	if len(path) > 40 {
		path = path[:37] + "..."
	}
	return domain + path
}

func trimWWW(host string) string {
	if len(host) > 4 && host[:4] == "www." {
		return host[4:]
	}
	return host
}

// trimError shortens an error message for an event.
func trimError(err error) string {
	return truncateRunes(err.Error(), 80) + "..."
}

// truncateRunes caps s at n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
