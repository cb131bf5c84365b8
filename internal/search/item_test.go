package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/klipy"
)

func TestItemIDsAreNamespaced(t *testing.T) {
	fav := FavoriteItem(db.Favorite{ID: 42, Filename: "dance.gif", FilePath: "/tmp/dance.gif"})
	remote := RemoteItem(klipy.Gif{ID: "42", Slug: "dance", Title: "Dance"})

	assert.Equal(t, "fav:42", fav.ID())
	assert.Equal(t, "klipy:42", remote.ID())
	assert.NotEqual(t, fav.ID(), remote.ID(), "a favorite and a remote result with the same raw id must not collide")
}

func TestItemAccessorsByKind(t *testing.T) {
	fav := FavoriteItem(db.Favorite{
		ID:       7,
		Filename: "wave.gif",
		FilePath: "/tmp/wave.gif",
		GifURL:   "https://example.com/wave.gif",
		Width:    200,
		Height:   100,
	})
	assert.Equal(t, KindFavorite, fav.Kind)
	assert.Equal(t, "wave.gif", fav.Title())
	assert.Equal(t, "/tmp/wave.gif", fav.FilePath())
	assert.Equal(t, "https://example.com/wave.gif", fav.GifURL())

	w, h := fav.Dimensions()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)

	remote := RemoteItem(klipy.Gif{
		ID:     "9",
		Title:  "Wave",
		GifURL: "https://static.example.com/9.gif",
		MP4URL: "https://static.example.com/9.mp4",
	})
	assert.Equal(t, KindRemote, remote.Kind)
	assert.Equal(t, "Wave", remote.Title())
	assert.Empty(t, remote.FilePath(), "remote results have no local file")
	assert.Equal(t, "https://static.example.com/9.mp4", remote.MP4URL())
}
