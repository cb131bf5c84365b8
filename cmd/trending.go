package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/gifdeck/internal/config"
	"github.com/user/gifdeck/internal/db"
)

var trendingPage int

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show trending GIFs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := db.NewStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		client, err := newClient(cfg, store)
		if err != nil {
			return err
		}

		page, err := client.Trending(context.Background(), trendingPage, cfg.Search.PerPage)
		if err != nil {
			return fmt.Errorf("failed to fetch trending: %w", err)
		}

		return outputDefault(nil, page)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List GIF categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := db.NewStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		client, err := newClient(cfg, store)
		if err != nil {
			return err
		}

		categories, err := client.Categories(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}

		for _, c := range categories {
			fmt.Printf("%s\t%s\n", c.Name, c.Query)
		}
		return nil
	},
}

func init() {
	trendingCmd.Flags().IntVar(&trendingPage, "page", 1, "Result page to fetch")
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(categoriesCmd)
}
