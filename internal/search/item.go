package search

import (
	"fmt"

	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/klipy"
)

// Kind discriminates the two item variants. Code must switch on Kind, never
// on which payload fields happen to be set.
type Kind int

const (
	KindFavorite Kind = iota
	KindRemote
)

// Item is one entry in the coordinator's result sequence: either a saved
// favorite or a remote search result.
type Item struct {
	Kind     Kind
	Favorite *db.Favorite
	Remote   *klipy.Gif
}

func FavoriteItem(f db.Favorite) Item {
	return Item{Kind: KindFavorite, Favorite: &f}
}

func RemoteItem(g klipy.Gif) Item {
	return Item{Kind: KindRemote, Remote: &g}
}

// ID is stable within a result sequence and namespaced per variant, so a
// favorite can never collide with a remote result.
func (it Item) ID() string {
	switch it.Kind {
	case KindFavorite:
		return fmt.Sprintf("fav:%d", it.Favorite.ID)
	default:
		return "klipy:" + it.Remote.ID
	}
}

func (it Item) Title() string {
	switch it.Kind {
	case KindFavorite:
		return it.Favorite.Filename
	default:
		return it.Remote.Title
	}
}

// FilePath returns the local file path, if any.
func (it Item) FilePath() string {
	if it.Kind == KindFavorite {
		return it.Favorite.FilePath
	}
	return ""
}

// GifURL returns the remote GIF URL, if any.
func (it Item) GifURL() string {
	switch it.Kind {
	case KindFavorite:
		return it.Favorite.GifURL
	default:
		return it.Remote.GifURL
	}
}

func (it Item) MP4URL() string {
	if it.Kind == KindRemote {
		return it.Remote.MP4URL
	}
	return ""
}

func (it Item) Dimensions() (width, height int) {
	switch it.Kind {
	case KindFavorite:
		return it.Favorite.Width, it.Favorite.Height
	default:
		return it.Remote.Width, it.Remote.Height
	}
}
