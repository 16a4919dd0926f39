package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akashdoifode13/WorldSense/internal/storage"
	"github.com/akashdoifode13/WorldSense/internal/types"
)

var (
	artDate    string
	artCountry string
)

// articlesCmd creates the "articles" subcommand.
func articlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "List stored articles for a date",
		Long:  "List articles stored for a date and country. A first-of-month date lists the whole month.",
		RunE:  runArticles,
	}

	cmd.Flags().StringVarP(&artDate, "date", "d", "", "date to list (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&artCountry, "country", types.CountryGlobal, "country filter")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit articles as JSON")

	return cmd
}

// runArticles executes the articles command.
func runArticles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if artDate != "" {
		date, err = time.Parse("2006-01-02", artDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", artDate, err)
		}
	}

	store, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	articles, err := store.ArticlesByDate(cmd.Context(), date, artCountry)
	if err != nil {
		return fmt.Errorf("query articles: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	if len(articles) == 0 {
		fmt.Printf("No articles for %s (%s)\n", date.Format("2006-01-02"), artCountry)
		return nil
	}
	for _, a := range articles {
		fmt.Printf("%s  [%s]  %s\n    %s\n",
			a.PublishedDate.Format("2006-01-02"), a.Category, a.Title, a.URL)
	}
	fmt.Printf("\n%d articles\n", len(articles))
	return nil
}

// datesCmd creates the "dates" subcommand.
func datesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List dates that have stored articles",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			dates, err := store.AvailableDates(cmd.Context(), artCountry)
			if err != nil {
				return fmt.Errorf("query dates: %w", err)
			}
			for _, d := range dates {
				fmt.Println(d.Format("2006-01-02"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&artCountry, "country", types.CountryGlobal, "country filter")
	return cmd
}
