package indicators

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"time"

	"github.com/akashdoifode13/WorldSense/internal/config"
	"github.com/akashdoifode13/WorldSense/internal/storage"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

// imfPause throttles consecutive dataset requests against the Data
// Mapper API.
const imfPause = 200 * time.Millisecond

// IMF ingests all datasets exposed by the IMF Data Mapper API.
type IMF struct {
	client  *http.Client
	store   storage.Store
	baseURL string
	logger  *slog.Logger
}

// NewIMF creates an IMF Data Mapper client over the store.
func NewIMF(cfg *config.Config, store storage.Store, logger *slog.Logger) *IMF {
	return &IMF{
		client:  &http.Client{Timeout: cfg.Indicators.RequestTimeout},
		store:   store,
		baseURL: cfg.Indicators.IMFURL,
		logger:  logger.With("component", "imf"),
	}
}

type imfIndicatorInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Unit        string `json:"unit"`
	Dataset     string `json:"dataset"`
}

// Scrape syncs indicator metadata and then ingests values for each
// dataset in turn. A non-positive limit ingests everything.
func (i *IMF) Scrape(ctx context.Context, limit int) error {
	meta, err := i.fetchMetadata(ctx)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(meta))
	for code := range meta {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	now := time.Now().UTC()
	for _, code := range codes {
		info := meta[code]
		m := &types.IndicatorMeta{
			IndicatorCode:     "IMF." + code,
			Label:             info.Label,
			Description:       info.Description,
			Source:            info.Source,
			Unit:              info.Unit,
			Dataset:           info.Dataset,
			ForecastStartYear: forecastYear(info.Source),
			ScrapedAt:         now,
		}
		if err := i.store.UpsertIndicatorMeta(ctx, m); err != nil {
			return err
		}
	}
	i.logger.Info("imf metadata synced", "indicators", len(codes))

	if limit > 0 && limit < len(codes) {
		codes = codes[:limit]
	}

	for n, code := range codes {
		if err := i.scrapeValues(ctx, code); err != nil {
			i.logger.Error("imf values failed", "indicator", code, "error", err)
			continue
		}
		if n < len(codes)-1 {
			select {
			case <-time.After(imfPause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// fetchMetadata lists every indicator the Data Mapper exposes.
func (i *IMF) fetchMetadata(ctx context.Context) (map[string]imfIndicatorInfo, error) {
	body, err := i.get(ctx, i.baseURL+"/indicators")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Indicators map[string]imfIndicatorInfo `json:"indicators"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("imf metadata parse: %w", err)
	}
	if len(payload.Indicators) == 0 {
		return nil, fmt.Errorf("imf metadata: %w", types.ErrEmptyResponse)
	}
	return payload.Indicators, nil
}

// scrapeValues ingests one dataset, keyed country -> year -> value.
func (i *IMF) scrapeValues(ctx context.Context, code string) error {
	body, err := i.get(ctx, i.baseURL+"/"+code)
	if err != nil {
		return err
	}

	var payload struct {
		Values map[string]map[string]map[string]float64 `json:"values"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("imf values parse %s: %w", code, err)
	}

	series, ok := payload.Values[code]
	if !ok {
		return nil
	}

	now := time.Now().UTC()
	stored := 0
	for iso3, years := range series {
		// Regional aggregates use shorter keys; keep countries only.
		if len(iso3) != 3 {
			continue
		}
		for year, value := range years {
			ind := &types.Indicator{
				CountryISO3:   iso3,
				IndicatorCode: "IMF." + code,
				Date:          year,
				Value:         value,
				ScrapedAt:     now,
			}
			if err := i.store.UpsertIndicator(ctx, ind); err != nil {
				return err
			}
			stored++
		}
	}
	i.logger.Debug("imf values stored", "indicator", code, "records", stored)
	return nil
}

func (i *IMF) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imf fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imf fetch %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

var yearPattern = regexp.MustCompile(`20\d{2}`)

// forecastYear pulls the vintage year out of a source string such as
// "World Economic Outlook (October 2025)". Zero when absent.
func forecastYear(source string) int {
	years := yearPattern.FindAllString(source, -1)
	max := 0
	for _, y := range years {
		n := 0
		fmt.Sscanf(y, "%d", &n)
		if n > max {
			max = n
		}
	}
	return max
}
