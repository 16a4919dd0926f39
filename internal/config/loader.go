package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults from struct
	setDefaults(v, cfg)

	// Environment variable support
	v.SetEnvPrefix("WORLDSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName("worldsense")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".worldsense"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("scraper.topics", cfg.Scraper.Topics)
	v.SetDefault("scraper.country", cfg.Scraper.Country)
	v.SetDefault("scraper.language", cfg.Scraper.Language)
	v.SetDefault("scraper.max_results", cfg.Scraper.MaxResults)
	v.SetDefault("scraper.concurrency", cfg.Scraper.Concurrency)
	v.SetDefault("scraper.request_timeout", cfg.Scraper.RequestTimeout)
	v.SetDefault("scraper.result_delay_min", cfg.Scraper.ResultDelayMin)
	v.SetDefault("scraper.result_delay_max", cfg.Scraper.ResultDelayMax)
	v.SetDefault("scraper.topic_delay_min", cfg.Scraper.TopicDelayMin)
	v.SetDefault("scraper.topic_delay_max", cfg.Scraper.TopicDelayMax)
	v.SetDefault("scraper.user_agents", cfg.Scraper.UserAgents)
	v.SetDefault("scraper.skip_domains", cfg.Scraper.SkipDomains)

	v.SetDefault("search.providers", cfg.Search.Providers)
	v.SetDefault("search.duckduckgo_url", cfg.Search.DuckDuckGoURL)
	v.SetDefault("search.bing_url", cfg.Search.BingURL)

	v.SetDefault("fetcher.follow_redirects", cfg.Fetcher.FollowRedirects)
	v.SetDefault("fetcher.max_redirects", cfg.Fetcher.MaxRedirects)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)
	v.SetDefault("fetcher.tls_insecure", cfg.Fetcher.TLSInsecure)
	v.SetDefault("fetcher.idle_conn_timeout", cfg.Fetcher.IdleConnTimeout)
	v.SetDefault("fetcher.max_idle_conns", cfg.Fetcher.MaxIdleConns)

	v.SetDefault("browser.enabled", cfg.Browser.Enabled)
	v.SetDefault("browser.max_pages", cfg.Browser.MaxPages)
	v.SetDefault("browser.nav_timeout", cfg.Browser.NavTimeout)
	v.SetDefault("browser.stealth", cfg.Browser.Stealth)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.mongo_uri", cfg.Storage.MongoURI)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("indicators.concurrency", cfg.Indicators.Concurrency)
	v.SetDefault("indicators.request_timeout", cfg.Indicators.RequestTimeout)
	v.SetDefault("indicators.worldbank_url", cfg.Indicators.WorldBankURL)
	v.SetDefault("indicators.imf_url", cfg.Indicators.IMFURL)
	v.SetDefault("indicators.date_range", cfg.Indicators.DateRange)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)
}
