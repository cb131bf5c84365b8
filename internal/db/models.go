package db

import (
	"fmt"
	"strings"
	"time"
)

// MediaType classifies a saved file.
type MediaType string

const (
	MediaGif   MediaType = "gif"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(s) {
	case "gif":
		return MediaGif, nil
	case "image":
		return MediaImage, nil
	case "video":
		return MediaVideo, nil
	}
	return "", fmt.Errorf("unknown media type: %s", s)
}

// Source records where a favorite originally came from.
type Source string

const (
	SourceKlipy  Source = "klipy"
	SourceGiphy  Source = "giphy"
	SourceTenor  Source = "tenor"
	SourceLocal  Source = "local"
	SourceUpload Source = "upload"
)

func ParseSource(s string) (Source, error) {
	switch strings.ToLower(s) {
	case "klipy":
		return SourceKlipy, nil
	case "giphy":
		return SourceGiphy, nil
	case "tenor":
		return SourceTenor, nil
	case "local":
		return SourceLocal, nil
	case "upload":
		return SourceUpload, nil
	}
	return "", fmt.Errorf("unknown source: %s", s)
}

// Favorite is a user-saved GIF/image/video record. Optional string fields
// use "" as absent; LastUsed uses the zero time.
type Favorite struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"filepath,omitempty"`
	MP4Path     string    `json:"mp4_filepath,omitempty"`
	GifURL      string    `json:"gif_url,omitempty"` // backup remote URL
	MediaType   MediaType `json:"media_type"`
	Source      Source    `json:"source,omitempty"`
	SourceID    string    `json:"source_id,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	Tags        []string  `json:"tags"`
	CustomTags  []string  `json:"custom_tags"`
	Description string    `json:"description,omitempty"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsed    time.Time `json:"last_used,omitempty"`
	UseCount    int       `json:"use_count"`
}

// Renderable reports whether at least one media reference exists. Records
// violating this are rejected on insert.
func (f *Favorite) Renderable() bool {
	return f.FilePath != "" || f.MP4Path != "" || f.GifURL != ""
}

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ClipboardMode selects what an item activation copies.
type ClipboardMode string

const (
	ClipboardFile ClipboardMode = "file"
	ClipboardURL  ClipboardMode = "url"
)

// Settings is the singleton key-value record. It is loaded once at startup
// and saved wholesale; no history is kept.
type Settings struct {
	Hotkey              string        `json:"hotkey"`
	WindowWidth         int           `json:"window_width"`
	WindowHeight        int           `json:"window_height"`
	MaxItemWidth        int           `json:"max_item_width"`
	CloseAfterSelection bool          `json:"close_after_selection"`
	LaunchAtStartup     bool          `json:"launch_at_startup"`
	Theme               Theme         `json:"theme"`
	ClipboardMode       ClipboardMode `json:"clipboard_mode"`
	ShowAds             bool          `json:"show_ads"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Hotkey:              "Ctrl+Shift+G",
		WindowWidth:         800,
		WindowHeight:        600,
		MaxItemWidth:        400,
		CloseAfterSelection: true,
		LaunchAtStartup:     false,
		Theme:               ThemeSystem,
		ClipboardMode:       ClipboardFile,
		ShowAds:             true,
	}
}
