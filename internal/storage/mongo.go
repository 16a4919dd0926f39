package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akashdoifode13/WorldSense/internal/types"
)

// MongoStore persists articles and indicators in MongoDB. A unique
// compound index on (url, published_date) provides the same
// ignore-on-conflict guarantee as the SQLite unique index.
type MongoStore struct {
	client     *mongo.Client
	articles   *mongo.Collection
	indicators *mongo.Collection
	meta       *mongo.Collection
	logger     *slog.Logger
}

// mongoArticle is the persisted document shape. Documents are
// identified by their ObjectID; there is no numeric article id, so
// reads surface Article.ID as zero.
type mongoArticle struct {
	Title         string    `bson:"title"`
	URL           string    `bson:"url"`
	Source        string    `bson:"source"`
	Description   string    `bson:"description"`
	Category      string    `bson:"category"`
	Country       string    `bson:"country"`
	PublishedDate string    `bson:"published_date"`
	ScrapedAt     time.Time `bson:"scraped_at"`
}

// NewMongoStore connects, pings, and ensures indexes.
func NewMongoStore(uri, database, collection string, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:     client,
		articles:   db.Collection(collection),
		indicators: db.Collection("economic_indicators"),
		meta:       db.Collection("indicator_metadata"),
		logger:     logger.With("component", "mongo_store"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureIndexes creates the uniqueness constraints the pipeline relies on.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.articles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "url", Value: 1}, {Key: "published_date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongodb article index: %w", err)
	}

	_, err = s.indicators.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "country_iso3", Value: 1},
			{Key: "indicator_code", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongodb indicator index: %w", err)
	}

	_, err = s.meta.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "indicator_code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongodb metadata index: %w", err)
	}
	return nil
}

func (s *MongoStore) Name() string { return "mongodb" }

// newMongoArticle converts an article to its document shape.
func newMongoArticle(a *types.Article) mongoArticle {
	return mongoArticle{
		Title:         a.Title,
		URL:           a.URL,
		Source:        a.Source,
		Description:   a.Description,
		Category:      a.Category,
		Country:       a.Country,
		PublishedDate: a.PublishedDate.Format(dateLayout),
		ScrapedAt:     a.ScrapedAt.UTC(),
	}
}

// InsertArticle writes one document; a duplicate-key error maps to
// types.ErrDuplicate. MongoDB has no numeric row id, so the returned
// id is always zero.
func (s *MongoStore) InsertArticle(ctx context.Context, a *types.Article) (int64, error) {
	doc := newMongoArticle(a)

	if _, err := s.articles.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, &types.StoreError{Backend: s.Name(), Err: types.ErrDuplicate}
		}
		return 0, &types.StoreError{Backend: s.Name(), Err: err}
	}
	return 0, nil
}

// ArticleExists checks for a document matching either URL on the date.
func (s *MongoStore) ArticleExists(ctx context.Context, url1, url2 string, date time.Time) (bool, error) {
	filter := bson.M{
		"url":            bson.M{"$in": []string{url1, url2}},
		"published_date": date.Format(dateLayout),
	}
	n, err := s.articles.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, &types.StoreError{Backend: s.Name(), Err: err}
	}
	return n > 0, nil
}

// ArticlesByDate returns articles for a date and country. A
// first-of-month date selects the whole month.
func (s *MongoStore) ArticlesByDate(ctx context.Context, date time.Time, country string) ([]*types.Article, error) {
	var dateFilter bson.M
	if date.Day() == 1 {
		monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)
		dateFilter = bson.M{
			"$gte": monthStart.Format(dateLayout),
			"$lt":  monthEnd.Format(dateLayout),
		}
	} else {
		dateFilter = bson.M{"$eq": date.Format(dateLayout)}
	}

	cursor, err := s.articles.Find(ctx,
		bson.M{"published_date": dateFilter, "country": country},
		options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "scraped_at", Value: 1}}),
	)
	if err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}
	defer cursor.Close(ctx)

	var articles []*types.Article
	for cursor.Next(ctx) {
		var doc mongoArticle
		if err := cursor.Decode(&doc); err != nil {
			return nil, &types.StoreError{Backend: s.Name(), Err: err}
		}
		published, err := time.Parse(dateLayout, doc.PublishedDate)
		if err != nil {
			return nil, &types.StoreError{Backend: s.Name(), Err: err}
		}
		articles = append(articles, &types.Article{
			Title:         doc.Title,
			URL:           doc.URL,
			Source:        doc.Source,
			Description:   doc.Description,
			Category:      doc.Category,
			Country:       doc.Country,
			PublishedDate: published,
			ScrapedAt:     doc.ScrapedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}
	return articles, nil
}

// AvailableDates returns distinct effective dates for a country,
// newest first.
func (s *MongoStore) AvailableDates(ctx context.Context, country string) ([]time.Time, error) {
	raw, err := s.articles.Distinct(ctx, "published_date", bson.M{"country": country})
	if err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Err: err}
	}

	var dates []time.Time
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		t, err := time.Parse(dateLayout, str)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	// Distinct comes back unordered; newest first matches the SQLite store.
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates, nil
}

// UpsertIndicator inserts or replaces one observation.
func (s *MongoStore) UpsertIndicator(ctx context.Context, ind *types.Indicator) error {
	filter := bson.M{
		"country_iso3":   ind.CountryISO3,
		"indicator_code": ind.IndicatorCode,
		"date":           ind.Date,
	}
	update := bson.M{"$set": bson.M{
		"country_iso3":   ind.CountryISO3,
		"indicator_code": ind.IndicatorCode,
		"date":           ind.Date,
		"value":          ind.Value,
		"scraped_at":     ind.ScrapedAt.UTC(),
	}}
	_, err := s.indicators.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return &types.StoreError{Backend: s.Name(), Err: err}
	}
	return nil
}

// UpsertIndicatorMeta inserts or replaces an indicator definition.
func (s *MongoStore) UpsertIndicatorMeta(ctx context.Context, meta *types.IndicatorMeta) error {
	filter := bson.M{"indicator_code": meta.IndicatorCode}
	update := bson.M{"$set": bson.M{
		"indicator_code":      meta.IndicatorCode,
		"label":               meta.Label,
		"description":         meta.Description,
		"source":              meta.Source,
		"unit":                meta.Unit,
		"dataset":             meta.Dataset,
		"forecast_start_year": meta.ForecastStartYear,
		"scraped_at":          meta.ScrapedAt.UTC(),
	}}
	_, err := s.meta.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return &types.StoreError{Backend: s.Name(), Err: err}
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
