package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGetFavorite(t *testing.T) {
	store := openTestStore(t)

	fav := &Favorite{
		Filename:    "happy-cat.gif",
		FilePath:    "/tmp/happy-cat.gif",
		GifURL:      "https://static.example.com/happy-cat.gif",
		MediaType:   MediaGif,
		Source:      SourceKlipy,
		SourceID:    "8679151651012575",
		SourceURL:   "https://klipy.com/gifs/happy-cat",
		Tags:        []string{"happy", "cat"},
		CustomTags:  []string{"reaction"},
		Description: "Happy Cat",
		Width:       480,
		Height:      270,
		FileSize:    1234567,
	}

	require.NoError(t, store.CreateFavorite(fav))
	assert.NotZero(t, fav.ID, "insert assigns the id")

	got, err := store.GetFavorite(fav.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "happy-cat.gif", got.Filename)
	assert.Equal(t, "/tmp/happy-cat.gif", got.FilePath)
	assert.Equal(t, MediaGif, got.MediaType)
	assert.Equal(t, SourceKlipy, got.Source)
	assert.Equal(t, []string{"happy", "cat"}, got.Tags)
	assert.Equal(t, []string{"reaction"}, got.CustomTags)
	assert.Equal(t, 480, got.Width)
	assert.Equal(t, 0, got.UseCount)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.LastUsed.IsZero(), "never used yet")
}

func TestCreateFavoriteRejectsUnrenderable(t *testing.T) {
	store := openTestStore(t)

	err := store.CreateFavorite(&Favorite{
		Filename:  "ghost.gif",
		MediaType: MediaGif,
	})
	require.Error(t, err, "a favorite needs a file path, mp4 path, or backup URL")
}

func TestCreateFavoriteURLOnly(t *testing.T) {
	store := openTestStore(t)

	// No local files at all is fine as long as the backup URL exists.
	fav := &Favorite{
		Filename:  "remote.gif",
		GifURL:    "https://static.example.com/remote.gif",
		MediaType: MediaGif,
	}
	require.NoError(t, store.CreateFavorite(fav))

	got, err := store.GetFavorite(fav.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FilePath)
	assert.Equal(t, "https://static.example.com/remote.gif", got.GifURL)
}

func TestGetFavoriteMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetFavorite(9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetFavoriteBySource(t *testing.T) {
	store := openTestStore(t)

	fav := &Favorite{
		Filename:  "a.gif",
		GifURL:    "https://example.com/a.gif",
		MediaType: MediaGif,
		Source:    SourceKlipy,
		SourceID:  "abc123",
	}
	require.NoError(t, store.CreateFavorite(fav))

	got, err := store.GetFavoriteBySource(SourceKlipy, "abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fav.ID, got.ID)

	missing, err := store.GetFavoriteBySource(SourceKlipy, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIncrementUseCount(t *testing.T) {
	store := openTestStore(t)

	fav := &Favorite{Filename: "a.gif", GifURL: "https://example.com/a.gif", MediaType: MediaGif}
	require.NoError(t, store.CreateFavorite(fav))

	require.NoError(t, store.IncrementUseCount(fav.ID))
	require.NoError(t, store.IncrementUseCount(fav.ID))

	got, err := store.GetFavorite(fav.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UseCount)
	assert.WithinDuration(t, time.Now(), got.LastUsed, time.Minute)
}

func TestSearchFavoritesMatchesTagsAndOrdersByUse(t *testing.T) {
	store := openTestStore(t)

	cat := &Favorite{
		Filename:  "mittens.gif",
		GifURL:    "https://example.com/mittens.gif",
		MediaType: MediaGif,
		Tags:      []string{"cat", "cute"},
	}
	dog := &Favorite{
		Filename:   "rex.gif",
		GifURL:     "https://example.com/rex.gif",
		MediaType:  MediaGif,
		CustomTags: []string{"dog"},
	}
	catByName := &Favorite{
		Filename:  "cat-dance.gif",
		GifURL:    "https://example.com/cat-dance.gif",
		MediaType: MediaGif,
	}
	require.NoError(t, store.CreateFavorite(cat))
	require.NoError(t, store.CreateFavorite(dog))
	require.NoError(t, store.CreateFavorite(catByName))

	require.NoError(t, store.IncrementUseCount(catByName.ID))

	results, err := store.SearchFavorites("cat")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "cat-dance.gif", results[0].Filename, "most used first")
	assert.Equal(t, "mittens.gif", results[1].Filename)

	results, err = store.SearchFavorites("DOG")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "rex.gif", results[0].Filename)
}

func TestUpdateFavorite(t *testing.T) {
	store := openTestStore(t)

	fav := &Favorite{Filename: "a.gif", GifURL: "https://example.com/a.gif", MediaType: MediaGif}
	require.NoError(t, store.CreateFavorite(fav))

	fav.Description = "updated"
	fav.CustomTags = []string{"keeper"}
	fav.FilePath = "/tmp/a.gif"
	require.NoError(t, store.UpdateFavorite(fav))

	got, err := store.GetFavorite(fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)
	assert.Equal(t, []string{"keeper"}, got.CustomTags)
	assert.Equal(t, "/tmp/a.gif", got.FilePath)
}

func TestUpdateFavoriteRequiresID(t *testing.T) {
	store := openTestStore(t)
	err := store.UpdateFavorite(&Favorite{Filename: "a.gif", GifURL: "u"})
	require.Error(t, err)
}

func TestDeleteFavorite(t *testing.T) {
	store := openTestStore(t)

	fav := &Favorite{Filename: "a.gif", GifURL: "https://example.com/a.gif", MediaType: MediaGif}
	require.NoError(t, store.CreateFavorite(fav))
	require.NoError(t, store.DeleteFavorite(fav.ID))

	got, err := store.GetFavorite(fav.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := store.CountFavorites()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAllFavoritesNewestFirst(t *testing.T) {
	store := openTestStore(t)

	older := &Favorite{
		Filename:  "old.gif",
		GifURL:    "https://example.com/old.gif",
		MediaType: MediaGif,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &Favorite{
		Filename:  "new.gif",
		GifURL:    "https://example.com/new.gif",
		MediaType: MediaGif,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateFavorite(older))
	require.NoError(t, store.CreateFavorite(newer))

	favorites, err := store.AllFavorites()
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "new.gif", favorites[0].Filename)
}
