package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/akashdoifode13/WorldSense/internal/config"
)

var (
	cfgFile string
	verbose bool
	asJSON  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "worldsense",
		Short: "WorldSense — Economic News & Indicator Scraper",
		Long: `WorldSense collects economic news and macroeconomic indicators.

Features:
  • Topic-driven news search with provider fallback (DuckDuckGo → Bing News)
  • Concurrent article extraction with quality and relevance filtering
  • Duplicate-safe storage in SQLite or MongoDB
  • World Bank and IMF indicator ingestion
  • Streaming progress events (terminal or JSON lines)`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(indicatorsCmd())
	rootCmd.AddCommand(articlesCmd())
	rootCmd.AddCommand(datesCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("WorldSense %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scraper:\n")
			fmt.Printf("  Topics:            %d configured\n", len(cfg.Scraper.Topics))
			fmt.Printf("  Country:           %s\n", cfg.Scraper.Country)
			fmt.Printf("  Max Results:       %d\n", cfg.Scraper.MaxResults)
			fmt.Printf("  Concurrency:       %d\n", cfg.Scraper.Concurrency)
			fmt.Printf("  Request Timeout:   %s\n", cfg.Scraper.RequestTimeout)
			fmt.Printf("  Result Delay:      %s–%s\n", cfg.Scraper.ResultDelayMin, cfg.Scraper.ResultDelayMax)
			fmt.Printf("  User Agents:       %d configured\n", len(cfg.Scraper.UserAgents))
			fmt.Printf("  Skip Domains:      %d configured\n", len(cfg.Scraper.SkipDomains))
			fmt.Printf("\nSearch:\n")
			fmt.Printf("  Providers:         %v\n", cfg.Search.Providers)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Browser.Enabled)
			fmt.Printf("  Stealth:           %v\n", cfg.Browser.Stealth)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:              %s\n", cfg.Storage.Type)
			if cfg.Storage.Type == "sqlite" {
				fmt.Printf("  Path:              %s\n", cfg.Storage.Path)
			} else {
				fmt.Printf("  Database:          %s\n", cfg.Storage.MongoDatabase)
			}
			fmt.Printf("\nIndicators:\n")
			fmt.Printf("  Concurrency:       %d\n", cfg.Indicators.Concurrency)
			fmt.Printf("  Date Range:        %s\n", cfg.Indicators.DateRange)
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// loadConfig loads and validates configuration for a subcommand.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
