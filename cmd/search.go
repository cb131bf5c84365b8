package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/gifdeck/internal/config"
	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/klipy"
)

var (
	jsonOutput      bool
	plaintextOutput bool
	searchPage      int
	localOnly       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search GIFs",
	Long:  "Search saved favorites and the Klipy GIF API.",
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

		favorites, err := store.SearchFavorites(query)
		if err != nil {
			return fmt.Errorf("favorites search failed: %w", err)
		}

		var page *klipy.Page
		if !localOnly {
			client, err := newClient(cfg, store)
			if err != nil {
				return err
			}
			page, err = client.Search(context.Background(), query, searchPage, cfg.Search.PerPage)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
		}

		if jsonOutput {
			return outputJSON(favorites, page)
		}
		if plaintextOutput {
			return outputPlaintext(favorites, page)
		}
		return outputDefault(favorites, page)
	},
}

// newClient builds a Klipy client keyed per the stored ad preference.
func newClient(cfg *config.Config, store *db.Store) (*klipy.Client, error) {
	settings, err := store.Settings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	key := cfg.APIKey(settings.ShowAds)
	if key == "" {
		return nil, fmt.Errorf("no API key configured; set api.key in %s/config.yaml", cfg.DataDir)
	}
	return klipy.NewClientWithBaseURL(key, cfg.API.BaseURL), nil
}

func outputJSON(favorites []db.Favorite, page *klipy.Page) error {
	out := struct {
		Favorites []db.Favorite `json:"favorites"`
		Remote    *klipy.Page   `json:"remote,omitempty"`
	}{Favorites: favorites, Remote: page}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func outputPlaintext(favorites []db.Favorite, page *klipy.Page) error {
	for _, f := range favorites {
		fmt.Printf("fav\t%d\t%s\t%s\n", f.ID, f.Filename, f.GifURL)
	}
	if page != nil {
		for _, g := range page.Gifs {
			fmt.Printf("klipy\t%s\t%s\t%s\n", g.ID, g.Title, g.GifURL)
		}
	}
	return nil
}

func outputDefault(favorites []db.Favorite, page *klipy.Page) error {
	if len(favorites) == 0 && (page == nil || len(page.Gifs) == 0) {
		fmt.Println("No results found.")
		return nil
	}

	if len(favorites) > 0 {
		fmt.Println("Favorites:")
		for _, f := range favorites {
			fmt.Printf("  ♥ %d. %s (%dx%d, used %d times)\n", f.ID, f.Filename, f.Width, f.Height, f.UseCount)
		}
		fmt.Println()
	}

	if page != nil && len(page.Gifs) > 0 {
		fmt.Printf("Klipy (page %d, %d total):\n", page.Page, page.Total)
		for i, g := range page.Gifs {
			title := g.Title
			if title == "" {
				title = g.Slug
			}
			fmt.Printf("  %d. %s\n     %s\n", i+1, truncate(title, 80), g.GifURL)
		}
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	searchCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	searchCmd.Flags().BoolVarP(&plaintextOutput, "plaintext", "p", false, "Output as plaintext")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Result page to fetch")
	searchCmd.Flags().BoolVar(&localOnly, "local", false, "Search favorites only")
	rootCmd.AddCommand(searchCmd)
}
