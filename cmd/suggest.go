package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/gifdeck/internal/config"
	"github.com/user/gifdeck/internal/db"
)

var related bool

var suggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Suggest search queries",
	Long:  "Autocomplete a partial query, or list related searches with --related.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

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

		var suggestions []string
		if related {
			suggestions, err = client.SearchSuggestions(context.Background(), query, 10)
		} else {
			suggestions, err = client.Autocomplete(context.Background(), query, 10)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch suggestions: %w", err)
		}

		for _, s := range suggestions {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().BoolVar(&related, "related", false, "Show related searches instead of completions")
	rootCmd.AddCommand(suggestCmd)
}
