// Package indicators ingests macroeconomic indicator series from the
// World Bank and IMF public APIs into the store.
package indicators

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/storage"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

// WorldBankIndicators is the fixed series set ingested from the World
// Bank API: GDP, growth, per-capita GDP, CPI, unemployment, current
// account, trade shares, FDI, reserves, exchange rate, debt, savings,
// and investment.
var WorldBankIndicators = []string{
	"NY.GDP.MKTP.CD", "NY.GDP.MKTP.KD.ZG", "NY.GDP.PCAP.CD",
	"FP.CPI.TOTL.ZG", "SL.UEM.TOTL.ZS", "BN.CAB.XOKA.GD.ZS",
	"NE.EXP.GNFS.ZS", "NE.IMP.GNFS.ZS", "BX.KLT.DINV.WD.GD.ZS",
	"FI.RES.TOTL.CD", "PA.NUS.FCRF", "GC.DOD.TOTL.GD.ZS",
	"NY.GNS.ICTR.ZS", "NE.GDI.TOTL.ZS",
}

const worldBankPerPage = 500

// WorldBank fetches indicator observations for all countries.
type WorldBank struct {
	client      *http.Client
	store       storage.Store
	baseURL     string
	dateRange   string
	concurrency int
	logger      *slog.Logger
}

// NewWorldBank creates a World Bank API client over the store.
func NewWorldBank(cfg *config.Config, store storage.Store, logger *slog.Logger) *WorldBank {
	return &WorldBank{
		client:      &http.Client{Timeout: cfg.Indicators.RequestTimeout},
		store:       store,
		baseURL:     cfg.Indicators.WorldBankURL,
		dateRange:   cfg.Indicators.DateRange,
		concurrency: cfg.Indicators.Concurrency,
		logger:      logger.With("component", "worldbank"),
	}
}

// ScrapeAll ingests every configured indicator with bounded
// concurrency. One indicator's failure never aborts the others; the
// first error is returned after all indicators were attempted.
func (w *WorldBank) ScrapeAll(ctx context.Context) error {
	sem := make(chan struct{}, w.concurrency)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, code := range WorldBankIndicators {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}

		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := w.scrapeIndicator(ctx, code); err != nil {
				w.logger.Error("indicator scrape failed", "indicator", code, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(code)
	}

	wg.Wait()
	return firstErr
}

// scrapeIndicator pages through one series for all countries.
func (w *WorldBank) scrapeIndicator(ctx context.Context, code string) error {
	page := 1
	for {
		pages, records, err := w.fetchPage(ctx, code, page)
		if err != nil {
			return err
		}

		stored := 0
		for _, rec := range records {
			if rec.Value == nil || rec.CountryISO3 == "" {
				continue
			}
			ind := &types.Indicator{
				CountryISO3:   rec.CountryISO3,
				IndicatorCode: code,
				Date:          rec.Date,
				Value:         *rec.Value,
				ScrapedAt:     time.Now().UTC(),
			}
			if err := w.store.UpsertIndicator(ctx, ind); err != nil {
				return err
			}
			stored++
		}

		w.logger.Debug("worldbank page stored",
			"indicator", code, "page", page, "pages", pages, "records", stored)

		if page >= pages {
			return nil
		}
		page++
	}
}

// worldBankRecord is one observation in the API response.
type worldBankRecord struct {
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
}

// fetchPage retrieves one page of a series. The API wraps results as
// a two-element array: [pagination, records].
func (w *WorldBank) fetchPage(ctx context.Context, code string, page int) (int, []worldBankRecord, error) {
	url := fmt.Sprintf("%s/country/all/indicator/%s?format=json&date=%s&per_page=%d&page=%d",
		w.baseURL, code, w.dateRange, worldBankPerPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("worldbank fetch %s p%d: %w", code, page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, nil, fmt.Errorf("worldbank fetch %s p%d: HTTP %d", code, page, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return 0, nil, fmt.Errorf("worldbank parse %s p%d: %w", code, page, err)
	}
	if len(envelope) < 2 {
		return 0, nil, fmt.Errorf("worldbank parse %s p%d: unexpected envelope", code, page)
	}

	var meta struct {
		Pages int `json:"pages"`
	}
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return 0, nil, fmt.Errorf("worldbank parse %s p%d pagination: %w", code, page, err)
	}

	var records []worldBankRecord
	if err := json.Unmarshal(envelope[1], &records); err != nil {
		return 0, nil, fmt.Errorf("worldbank parse %s p%d records: %w", code, page, err)
	}
	if meta.Pages < 1 {
		meta.Pages = 1
	}
	return meta.Pages, records, nil
}
