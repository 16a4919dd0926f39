package types

import "time"

// Indicator is one (country, series, period) economic observation from
// the World Bank or IMF APIs.
type Indicator struct {
	CountryISO3   string    `json:"country_iso3"`
	IndicatorCode string    `json:"indicator_code"`
	// Date is the period label as reported by the source, usually a
	// plain year ("2024").
	Date      string    `json:"date"`
	Value     float64   `json:"value"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// IndicatorMeta describes an indicator series definition.
type IndicatorMeta struct {
	IndicatorCode string `json:"indicator_code"`
	Label         string `json:"label"`
	Description   string `json:"description"`
	Source        string `json:"source"`
	Unit          string `json:"unit"`
	Dataset       string `json:"dataset"`
	// ForecastStartYear is parsed from the source string, e.g.
	// "World Economic Outlook (October 2025)" -> 2025. Zero when unknown.
	ForecastStartYear int       `json:"forecast_start_year"`
	ScrapedAt         time.Time `json:"scraped_at"`
}
