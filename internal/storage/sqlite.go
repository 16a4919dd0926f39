package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/akashdoifode13/WorldSense/internal/types"
)

const dateLayout = "2006-01-02"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS articles (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT    NOT NULL,
	url            TEXT    NOT NULL,
	source         TEXT,
	description    TEXT,
	category       TEXT,
	country        TEXT    NOT NULL DEFAULT 'Global',
	published_date TEXT    NOT NULL,
	scraped_at     TEXT    NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_url_date
	ON articles(url, published_date);
CREATE INDEX IF NOT EXISTS idx_articles_date_category_country
	ON articles(published_date, category, country);

CREATE TABLE IF NOT EXISTS economic_indicators (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	country_iso3   TEXT NOT NULL,
	indicator_code TEXT NOT NULL,
	date           TEXT NOT NULL,
	value          REAL NOT NULL,
	scraped_at     TEXT NOT NULL,
	UNIQUE(country_iso3, indicator_code, date)
);

CREATE TABLE IF NOT EXISTS indicator_metadata (
	indicator_code      TEXT PRIMARY KEY,
	label               TEXT NOT NULL,
	description         TEXT,
	source              TEXT,
	unit                TEXT,
	dataset             TEXT,
	forecast_start_year INTEGER,
	scraped_at          TEXT NOT NULL
);
`

// SQLiteStore is the default file-backed store.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (and if needed creates) the database file,
// applies pragmas and the schema.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "sqlite_store"),
	}, nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

// InsertArticle writes one row with ignore-on-conflict semantics.
func (s *SQLiteStore) InsertArticle(ctx context.Context, a *types.Article) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO articles
		 (title, url, source, description, category, country, published_date, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.URL, a.Source, a.Description, a.Category, a.Country,
		a.PublishedDate.Format(dateLayout), a.ScrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, &types.StoreError{Backend: s.Name(), Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, &types.StoreError{Backend: s.Name(), Err: err}
	}
	if n == 0 {
		// Unique (url, published_date) constraint swallowed the row.
		return 0, &types.StoreError{Backend: s.Name(), Err: types.ErrDuplicate}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &types.StoreError{Backend: s.Name(), Err: err}
	}
	a.ID = id
	return id, nil
}

// ArticleExists checks for a record matching either URL on the date.
func (s *SQLiteStore) ArticleExists(ctx context.Context, url1, url2 string, date time.Time) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM articles WHERE (url = ? OR url = ?) AND published_date = ? LIMIT 1`,
		url1, url2, date.Format(dateLayout),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &types.StoreError{Backend: s.Name(), Err: err}
	}
	return true, nil
}

// ArticlesByDate returns articles for a date and country, ordered by
// category then scrape time. A first-of-month date selects the whole
// month.
func (s *SQLiteStore) ArticlesByDate(ctx context.Context, date time.Time, country string) ([]*types.Article, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date.Day() == 1 {
		monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, title, url, source, description, category, country, published_date, scraped_at
			 FROM articles
			 WHERE published_date >= ? AND published_date < ? AND country = ?
			 ORDER BY category, scraped_at`,
			monthStart.Format(dateLayout), monthEnd.Format(dateLayout), country,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, title, url, source, description, category, country, published_date, scraped_at
			 FROM articles
			 WHERE published_date = ? AND country = ?
			 ORDER BY category, scraped_at`,
			date.Format(dateLayout), country,
		)
	}
	if err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}
	defer rows.Close()

	var articles []*types.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, &types.StoreError{Backend: s.Name(), Err: err}
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}
	return articles, nil
}

// AvailableDates returns distinct effective dates for a country,
// newest first.
func (s *SQLiteStore) AvailableDates(ctx context.Context, country string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT published_date FROM articles WHERE country = ? ORDER BY published_date DESC`,
		country,
	)
	if err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, &types.StoreError{Backend: s.Name(), Err: err}
		}
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, &types.StoreError{Backend: s.Name(), Err: err}
		}
		dates = append(dates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}
	return dates, nil
}

// UpsertIndicator inserts or replaces one observation.
func (s *SQLiteStore) UpsertIndicator(ctx context.Context, ind *types.Indicator) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO economic_indicators (country_iso3, indicator_code, date, value, scraped_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(country_iso3, indicator_code, date)
		 DO UPDATE SET value = excluded.value, scraped_at = excluded.scraped_at`,
		ind.CountryISO3, ind.IndicatorCode, ind.Date, ind.Value,
		ind.ScrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return &types.StoreError{Backend: s.Name(), Err: err}
	}
	return nil
}

// UpsertIndicatorMeta inserts or replaces an indicator definition.
func (s *SQLiteStore) UpsertIndicatorMeta(ctx context.Context, meta *types.IndicatorMeta) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO indicator_metadata
		 (indicator_code, label, description, source, unit, dataset, forecast_start_year, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(indicator_code) DO UPDATE SET
		 	label = excluded.label,
		 	description = excluded.description,
		 	source = excluded.source,
		 	unit = excluded.unit,
		 	dataset = excluded.dataset,
		 	forecast_start_year = excluded.forecast_start_year,
		 	scraped_at = excluded.scraped_at`,
		meta.IndicatorCode, meta.Label, meta.Description, meta.Source,
		meta.Unit, meta.Dataset, meta.ForecastStartYear,
		meta.ScrapedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return &types.StoreError{Backend: s.Name(), Err: err}
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanArticle reads one article row.
func scanArticle(rows *sql.Rows) (*types.Article, error) {
	var (
		a         types.Article
		published string
		scraped   string
	)
	if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Source, &a.Description,
		&a.Category, &a.Country, &published, &scraped); err != nil {
		return nil, err
	}

	t, err := time.Parse(dateLayout, published)
	if err != nil {
		return nil, err
	}
	a.PublishedDate = t

	if ts, err := time.Parse(time.RFC3339, scraped); err == nil {
		a.ScrapedAt = ts
	}
	return &a, nil
}
