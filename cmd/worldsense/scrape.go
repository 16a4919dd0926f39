package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akashdoifode13/WorldSense/internal/extract"
	"github.com/akashdoifode13/WorldSense/internal/fetcher"
	"github.com/akashdoifode13/WorldSense/internal/pipeline"
	"github.com/akashdoifode13/WorldSense/internal/search"
	"github.com/akashdoifode13/WorldSense/internal/storage"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

var (
	scrapeDate    string
	scrapeCountry string
	scrapeTopics  string
	scrapeMax     int
)

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape economic news for a date and country",
		Long:  "Search configured news topics, extract articles, and store new ones. Progress streams to stdout until the run completes or is interrupted.",
		RunE:  runScrape,
	}

	cmd.Flags().StringVarP(&scrapeDate, "date", "d", "", "target date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&scrapeCountry, "country", "", "country the articles must mention (default Global)")
	cmd.Flags().StringVarP(&scrapeTopics, "topics", "t", "", "comma-separated topic overrides")
	cmd.Flags().IntVarP(&scrapeMax, "max-results", "m", 0, "max search results per topic (0 = config default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit progress events as JSON lines")

	return cmd
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	params := pipeline.Params{Country: scrapeCountry}
	if scrapeDate != "" {
		d, err := time.Parse("2006-01-02", scrapeDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", scrapeDate, err)
		}
		params.Date = d
	}
	if scrapeTopics != "" {
		for _, t := range strings.Split(scrapeTopics, ",") {
			if t = strings.TrimSpace(t); t != "" {
				params.Topics = append(params.Topics, t)
			}
		}
	}
	if scrapeMax > 0 {
		params.MaxResults = scrapeMax
	}

	var f fetcher.Fetcher
	if cfg.Browser.Enabled {
		f, err = fetcher.NewBrowserFetcher(cfg, logger)
	} else {
		f, err = fetcher.NewHTTPFetcher(cfg, logger)
	}
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	store, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	pipe := pipeline.New(cfg, search.NewChain(cfg, f, logger), extract.New(cfg, f, logger), store, logger)

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
	added := 0
	for ev := range pipe.Run(ctx, params) {
		printEvent(ev)
		if ev.Status == types.StatusComplete {
			added = ev.ArticlesAdded
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("scrape interrupted after %s", time.Since(start).Round(time.Millisecond))
	}
	if !asJSON {
		fmt.Printf("\n✅ Scrape complete in %s — %d articles added\n",
			time.Since(start).Round(time.Millisecond), added)
	}
	return nil
}

// printEvent writes one progress event to stdout.
func printEvent(ev types.Event) {
	if asJSON {
		if b, err := ev.ToJSON(); err == nil {
			fmt.Println(string(b))
		}
		return
	}

	switch ev.Status {
	case types.StatusSuccess:
		fmt.Printf("  ✔ %s\n", ev.Message)
	case types.StatusSkipped:
		fmt.Printf("  - %s\n", ev.Message)
	case types.StatusWarning:
		fmt.Printf("  ! %s\n", ev.Message)
	case types.StatusError:
		fmt.Printf("  ✘ %s\n", ev.Message)
	case types.StatusVisiting:
		fmt.Printf("  → %s\n", ev.Message)
	default:
		fmt.Println(ev.Message)
	}
}
