package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for WorldSense.
type Config struct {
	Scraper    ScraperConfig    `mapstructure:"scraper"    yaml:"scraper"`
	Search     SearchConfig     `mapstructure:"search"     yaml:"search"`
	Fetcher    FetcherConfig    `mapstructure:"fetcher"    yaml:"fetcher"`
	Browser    BrowserConfig    `mapstructure:"browser"    yaml:"browser"`
	Storage    StorageConfig    `mapstructure:"storage"    yaml:"storage"`
	Indicators IndicatorsConfig `mapstructure:"indicators" yaml:"indicators"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// ScraperConfig controls the news ingestion pipeline.
type ScraperConfig struct {
	Topics      []string `mapstructure:"topics"       yaml:"topics"`
	Country     string   `mapstructure:"country"      yaml:"country"`
	Language    string   `mapstructure:"language"     yaml:"language"`
	MaxResults  int      `mapstructure:"max_results"  yaml:"max_results"`
	Concurrency int      `mapstructure:"concurrency"  yaml:"concurrency"`

	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`

	// ResultDelayMin/Max bound the randomized politeness pause applied
	// after each extraction result is drained, before downstream
	// processing. TopicDelayMin/Max bound the pause before each topic's
	// search request.
	ResultDelayMin time.Duration `mapstructure:"result_delay_min" yaml:"result_delay_min"`
	ResultDelayMax time.Duration `mapstructure:"result_delay_max" yaml:"result_delay_max"`
	TopicDelayMin  time.Duration `mapstructure:"topic_delay_min"  yaml:"topic_delay_min"`
	TopicDelayMax  time.Duration `mapstructure:"topic_delay_max"  yaml:"topic_delay_max"`

	UserAgents []string `mapstructure:"user_agents" yaml:"user_agents"`

	// SkipDomains lists domains known to require client-side rendering;
	// links matching them are dropped before any fetch.
	SkipDomains []string `mapstructure:"skip_domains" yaml:"skip_domains"`
}

// SearchConfig controls the web-search provider chain.
type SearchConfig struct {
	// Providers is the fallback order; the first provider returning a
	// non-empty link list wins.
	Providers []string `mapstructure:"providers" yaml:"providers"`

	// DuckDuckGoURL and BingURL override the provider endpoints,
	// primarily for tests.
	DuckDuckGoURL string `mapstructure:"duckduckgo_url" yaml:"duckduckgo_url"`
	BingURL       string `mapstructure:"bing_url"       yaml:"bing_url"`
}

// FetcherConfig controls the HTTP fetcher.
type FetcherConfig struct {
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
}

// BrowserConfig controls the optional headless-browser fetcher used to
// render JavaScript-heavy pages.
type BrowserConfig struct {
	Enabled     bool          `mapstructure:"enabled"      yaml:"enabled"`
	MaxPages    int           `mapstructure:"max_pages"    yaml:"max_pages"`
	NavTimeout  time.Duration `mapstructure:"nav_timeout"  yaml:"nav_timeout"`
	Stealth     bool          `mapstructure:"stealth"      yaml:"stealth"`
	UserDataDir string        `mapstructure:"user_data_dir" yaml:"user_data_dir"`
}

// StorageConfig selects and configures the article store.
type StorageConfig struct {
	Type string `mapstructure:"type" yaml:"type"` // sqlite or mongodb

	Path string `mapstructure:"path" yaml:"path"` // sqlite database file

	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// IndicatorsConfig controls economic indicator ingestion.
type IndicatorsConfig struct {
	Concurrency    int           `mapstructure:"concurrency"     yaml:"concurrency"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	WorldBankURL   string        `mapstructure:"worldbank_url"   yaml:"worldbank_url"`
	IMFURL         string        `mapstructure:"imf_url"         yaml:"imf_url"`
	DateRange      string        `mapstructure:"date_range"      yaml:"date_range"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			Topics: []string{
				"GDP", "Inflation", "Monetary Policy", "Fiscal Policy",
				"Economy", "Central Bank", "Interest Rates", "Trade Policy",
				"Economic Growth", "Unemployment", "Currency Exchange Rates",
			},
			Country:        "Global",
			Language:       "en",
			MaxResults:     10,
			Concurrency:    3,
			RequestTimeout: 15 * time.Second,
			ResultDelayMin: 500 * time.Millisecond,
			ResultDelayMax: 1500 * time.Millisecond,
			TopicDelayMin:  1 * time.Second,
			TopicDelayMax:  2 * time.Second,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
			SkipDomains: []string{
				"msn.com",
				"facebook.com",
				"twitter.com",
				"x.com",
				"instagram.com",
				"linkedin.com",
				"youtube.com",
			},
		},
		Search: SearchConfig{
			Providers:     []string{"duckduckgo", "bing"},
			DuckDuckGoURL: "https://lite.duckduckgo.com/lite/",
			BingURL:       "https://www.bing.com/news/search",
		},
		Fetcher: FetcherConfig{
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
		},
		Browser: BrowserConfig{
			Enabled:    false,
			MaxPages:   3,
			NavTimeout: 30 * time.Second,
			Stealth:    true,
		},
		Storage: StorageConfig{
			Type:            "sqlite",
			Path:            "./data/worldsense.db",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "worldsense",
			MongoCollection: "articles",
		},
		Indicators: IndicatorsConfig{
			Concurrency:    4,
			RequestTimeout: 60 * time.Second,
			WorldBankURL:   "https://api.worldbank.org/v2",
			IMFURL:         "https://www.imf.org/external/datamapper/api/v1",
			DateRange:      "2000:2025",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
