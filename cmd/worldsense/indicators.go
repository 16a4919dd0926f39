package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akashdoifode13/WorldSense/internal/indicators"
	"github.com/akashdoifode13/WorldSense/internal/storage"
)

var (
	indSource string
	indLimit  int
)

// indicatorsCmd creates the "indicators" subcommand.
func indicatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Ingest macroeconomic indicators",
		Long:  "Fetch indicator series from the World Bank API and the IMF Data Mapper and upsert them into storage.",
		RunE:  runIndicators,
	}

	cmd.Flags().StringVarP(&indSource, "source", "s", "all", "source to ingest: worldbank, imf, all")
	cmd.Flags().IntVar(&indLimit, "limit", 0, "max IMF datasets to ingest (0 = all)")

	return cmd
}

// runIndicators executes the indicators command.
func runIndicators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	store, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down...", "signal", sig)
		cancel()
	}()

	start := time.Now()

	if indSource == "worldbank" || indSource == "all" {
		logger.Info("ingesting World Bank indicators",
			"indicators", len(indicators.WorldBankIndicators), "range", cfg.Indicators.DateRange)
		wb := indicators.NewWorldBank(cfg, store, logger)
		if err := wb.ScrapeAll(ctx); err != nil {
			return fmt.Errorf("worldbank ingest: %w", err)
		}
	}

	if indSource == "imf" || indSource == "all" {
		logger.Info("ingesting IMF indicators", "limit", indLimit)
		imf := indicators.NewIMF(cfg, store, logger)
		if err := imf.Scrape(ctx, indLimit); err != nil {
			return fmt.Errorf("imf ingest: %w", err)
		}
	}

	fmt.Printf("\n✅ Indicator ingest complete in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
