// Package storage persists articles and economic indicators. The
// article table carries a uniqueness constraint on (url,
// published_date); that constraint, not the pipeline's existence
// check, is the authoritative guard against duplicate inserts from
// overlapping runs.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

// Store is the persistence interface for articles and indicators.
type Store interface {
	// InsertArticle stores one article. It returns types.ErrDuplicate
	// (wrapped) when the (url, published_date) constraint rejects the
	// row; the caller treats that as an already-seen article, not a
	// failure.
	InsertArticle(ctx context.Context, a *types.Article) (int64, error)

	// ArticleExists reports whether a record exists whose URL matches
	// either candidate URL (pre-redirect or final) on the given
	// effective date. This is a fast-path check only; InsertArticle
	// remains safe to call regardless of the answer.
	ArticleExists(ctx context.Context, url1, url2 string, date time.Time) (bool, error)

	// ArticlesByDate returns stored articles for a date and country.
	// A first-of-month date selects the whole month; any other day
	// selects that exact day.
	ArticlesByDate(ctx context.Context, date time.Time, country string) ([]*types.Article, error)

	// AvailableDates returns the distinct effective dates stored for a
	// country, newest first.
	AvailableDates(ctx context.Context, country string) ([]time.Time, error)

	// UpsertIndicator inserts or replaces one indicator observation,
	// keyed by (country_iso3, indicator_code, date).
	UpsertIndicator(ctx context.Context, ind *types.Indicator) error

	// UpsertIndicatorMeta inserts or replaces an indicator definition.
	UpsertIndicatorMeta(ctx context.Context, meta *types.IndicatorMeta) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// Open creates the store selected by configuration.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		return NewSQLiteStore(cfg.Storage.Path, logger)
	case "mongodb":
		return NewMongoStore(cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}
