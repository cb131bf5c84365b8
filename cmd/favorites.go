package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/gifdeck/internal/config"
	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/media"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved favorites",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all favorites",
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

		favorites, err := store.AllFavorites()
		if err != nil {
			return fmt.Errorf("failed to list favorites: %w", err)
		}

		if len(favorites) == 0 {
			fmt.Println("No favorites saved.")
			return nil
		}
		for _, f := range favorites {
			location := f.FilePath
			if location == "" {
				location = f.GifURL
			}
			fmt.Printf("%d\t%s\t%s\t%s\n", f.ID, f.Filename, f.MediaType, location)
		}
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <path-or-slug>",
	Short: "Add a favorite",
	Long:  "Import a local media file as a favorite, or save a Klipy GIF by slug.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := db.NewStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		if _, statErr := os.Stat(arg); statErr == nil {
			return addLocalFavorite(cfg, store, arg)
		}
		return addKlipyFavorite(cfg, store, arg)
	},
}

func addLocalFavorite(cfg *config.Config, store *db.Store, path string) error {
	downloader := media.NewDownloader(cfg.MediaDir())

	imported, mediaType, err := downloader.ImportLocalFile(path)
	if err != nil {
		return fmt.Errorf("failed to import file: %w", err)
	}

	var size int64
	if info, err := os.Stat(imported); err == nil {
		size = info.Size()
	}

	fav := &db.Favorite{
		Filename:  filepath.Base(imported),
		FilePath:  imported,
		MediaType: mediaType,
		Source:    db.SourceLocal,
		FileSize:  size,
	}
	if err := store.CreateFavorite(fav); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}

	fmt.Printf("Added favorite %d: %s\n", fav.ID, fav.Filename)
	return nil
}

func addKlipyFavorite(cfg *config.Config, store *db.Store, slug string) error {
	client, err := newClient(cfg, store)
	if err != nil {
		return err
	}

	gif, err := client.GetBySlug(context.Background(), slug)
	if err != nil {
		return fmt.Errorf("failed to fetch gif: %w", err)
	}

	fav := &db.Favorite{
		Filename:    gif.Slug + ".gif",
		GifURL:      gif.GifURL,
		MediaType:   db.MediaGif,
		Source:      db.SourceKlipy,
		SourceID:    gif.ID,
		SourceURL:   gif.URL,
		Description: gif.Title,
		Width:       gif.Width,
		Height:      gif.Height,
		FileSize:    gif.Size,
	}

	downloader := media.NewDownloader(cfg.MediaDir())
	if path, err := downloader.DownloadGif(context.Background(), gif.GifURL, gif.ID); err == nil {
		fav.FilePath = path
		fav.Filename = filepath.Base(path)
	}

	if err := store.CreateFavorite(fav); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}

	fmt.Printf("Added favorite %d: %s\n", fav.ID, fav.Filename)
	return nil
}

var favoritesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid favorite id %q", args[0])
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := db.NewStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		fav, err := store.GetFavorite(id)
		if err != nil {
			return fmt.Errorf("failed to fetch favorite: %w", err)
		}
		if fav == nil {
			return fmt.Errorf("favorite %d not found", id)
		}

		if err := store.DeleteFavorite(id); err != nil {
			return fmt.Errorf("failed to delete favorite: %w", err)
		}

		// Cached files go with the record, best effort.
		if fav.FilePath != "" {
			media.Delete(fav.FilePath) //nolint:errcheck
		}
		if fav.MP4Path != "" {
			media.Delete(fav.MP4Path) //nolint:errcheck
		}

		fmt.Printf("Deleted favorite %d\n", id)
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRmCmd)
	rootCmd.AddCommand(favoritesCmd)
}
