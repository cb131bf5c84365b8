package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/gifdeck/internal/clipboard"
	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/media"
	"github.com/user/gifdeck/internal/search"
)

// favoritesStore is the slice of db.Store the action layer needs.
type favoritesStore interface {
	CreateFavorite(f *db.Favorite) error
	DeleteFavorite(id int64) error
	GetFavoriteBySource(source db.Source, sourceID string) (*db.Favorite, error)
	IncrementUseCount(id int64) error
}

// gifFetcher caches a remote GIF locally, returning its path.
type gifFetcher interface {
	DownloadGif(ctx context.Context, url, sourceID string) (string, error)
}

// Actions performs item activation and favorite toggling for the picker.
type Actions struct {
	store   favoritesStore
	copier  clipboard.Copier
	fetcher gifFetcher
}

func NewActions(store favoritesStore, copier clipboard.Copier, fetcher gifFetcher) *Actions {
	return &Actions{store: store, copier: copier, fetcher: fetcher}
}

// Activate copies the item per the clipboard mode and bumps the use count
// for favorites. In file mode an item with no local file is downloaded
// first; when download or file copy fails, the URL is copied as text
// instead of failing the activation.
func (a *Actions) Activate(ctx context.Context, it search.Item, mode db.ClipboardMode) (string, error) {
	desc, err := a.copy(ctx, it, mode)
	if err != nil {
		return "", err
	}

	if it.Kind == search.KindFavorite {
		if err := a.store.IncrementUseCount(it.Favorite.ID); err != nil {
			// The copy already happened; a failed counter bump shouldn't
			// undo the user-visible action.
			return desc, nil
		}
	}
	return desc, nil
}

func (a *Actions) copy(ctx context.Context, it search.Item, mode db.ClipboardMode) (string, error) {
	url := it.GifURL()

	if mode == db.ClipboardURL {
		if url == "" {
			url = it.MP4URL()
		}
		if url == "" {
			return "", fmt.Errorf("item %s has no URL to copy", it.Title())
		}
		if err := a.copier.CopyText(url); err != nil {
			return "", err
		}
		return "copied URL", nil
	}

	path := it.FilePath()
	if path == "" && url != "" {
		downloaded, err := a.fetcher.DownloadGif(ctx, url, sourceIDFor(it))
		if err == nil {
			path = downloaded
		}
	}

	if path != "" {
		if err := a.copier.CopyFile(path); err == nil {
			return "copied file", nil
		}
	}

	// URL-copy fallback keeps activation working when there is no file to
	// copy or the platform file clipboard fails.
	if url == "" {
		return "", fmt.Errorf("item %s has no file or URL to copy", it.Title())
	}
	if err := a.copier.CopyText(url); err != nil {
		return "", err
	}
	return "copied URL", nil
}

// SaveFavorite promotes a remote result to a favorite, caching the GIF
// locally when possible. Returns the created record.
func (a *Actions) SaveFavorite(ctx context.Context, it search.Item) (*db.Favorite, error) {
	if it.Kind != search.KindRemote {
		return it.Favorite, nil
	}
	g := it.Remote

	if existing, err := a.store.GetFavoriteBySource(db.SourceKlipy, g.ID); err == nil && existing != nil {
		return existing, nil
	}

	fav := &db.Favorite{
		Filename:  g.Slug + ".gif",
		GifURL:    g.GifURL,
		MediaType: db.MediaGif,
		Source:    db.SourceKlipy,
		SourceID:  g.ID,
		SourceURL: g.URL,
		Width:     g.Width,
		Height:    g.Height,
		FileSize:  g.Size,
	}
	if g.Title != "" {
		fav.Description = g.Title
	}

	// Best-effort local cache; the backup URL keeps the record renderable
	// when the download fails.
	if g.GifURL != "" {
		if path, err := a.fetcher.DownloadGif(ctx, g.GifURL, g.ID); err == nil {
			fav.FilePath = path
			fav.Filename = filepath.Base(path)
		}
	}

	if err := a.store.CreateFavorite(fav); err != nil {
		return nil, err
	}
	return fav, nil
}

// RemoveFavorite deletes the record and best-effort removes cached files.
func (a *Actions) RemoveFavorite(fav *db.Favorite) error {
	if err := a.store.DeleteFavorite(fav.ID); err != nil {
		return err
	}
	if fav.FilePath != "" {
		media.Delete(fav.FilePath) //nolint:errcheck
	}
	if fav.MP4Path != "" {
		media.Delete(fav.MP4Path) //nolint:errcheck
	}
	return nil
}

// ToggleFavorite saves a remote item or removes a favorite item.
func (a *Actions) ToggleFavorite(ctx context.Context, it search.Item) (string, error) {
	switch it.Kind {
	case search.KindFavorite:
		if err := a.RemoveFavorite(it.Favorite); err != nil {
			return "", err
		}
		return "removed favorite", nil
	default:
		if existing, err := a.store.GetFavoriteBySource(db.SourceKlipy, it.Remote.ID); err == nil && existing != nil {
			if err := a.RemoveFavorite(existing); err != nil {
				return "", err
			}
			return "removed favorite", nil
		}
		if _, err := a.SaveFavorite(ctx, it); err != nil {
			return "", err
		}
		return "saved favorite", nil
	}
}

func sourceIDFor(it search.Item) string {
	switch it.Kind {
	case search.KindFavorite:
		if it.Favorite.SourceID != "" {
			return it.Favorite.SourceID
		}
		return fmt.Sprintf("%d", it.Favorite.ID)
	default:
		return it.Remote.ID
	}
}
