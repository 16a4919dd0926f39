package storage

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/akashdoifode13/WorldSense/internal/types"
)

func TestMongoArticleDocumentShape(t *testing.T) {
	published := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	scraped := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	doc := newMongoArticle(&types.Article{
		ID:            42,
		Title:         "GDP growth slows in second quarter",
		URL:           "https://example.com/gdp-growth",
		Source:        "example.com",
		Description:   "Quarterly output figures came in below expectations.",
		Category:      "GDP",
		Country:       types.CountryGlobal,
		PublishedDate: published,
		ScrapedAt:     scraped,
	})

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// The document is keyed by ObjectID alone; a numeric article id
	// must not be persisted.
	if _, ok := fields["article_id"]; ok {
		t.Fatalf("document carries article_id: %v", fields["article_id"])
	}

	if got := fields["published_date"]; got != "2025-06-01" {
		t.Errorf("published_date = %v, want 2025-06-01", got)
	}
	if got := fields["url"]; got != "https://example.com/gdp-growth" {
		t.Errorf("url = %v", got)
	}
	if got := fields["category"]; got != "GDP" {
		t.Errorf("category = %v", got)
	}
}
