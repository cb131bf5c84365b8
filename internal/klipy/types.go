package klipy

import "fmt"

// Gif is a single remote result, flattened from the API's nested per-size,
// per-format payload. HD is kept for saving, MD dimensions for layout.
type Gif struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	URL        string `json:"url"` // klipy.com page URL
	GifURL     string `json:"gif_url"`
	MP4URL     string `json:"mp4_url,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Size       int64  `json:"size,omitempty"`
}

// Page is one page of results plus the pagination markers the coordinator
// tracks.
type Page struct {
	Gifs    []Gif `json:"gifs"`
	Total   int   `json:"total_count"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// Category is a browsable search shortcut.
type Category struct {
	Name       string `json:"name"`
	Query      string `json:"query"`
	PreviewURL string `json:"preview_url"`
}

// Raw wire types below mirror the API response shape.

type mediaFile struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size,omitempty"`
}

type sizeFormat struct {
	Gif  mediaFile  `json:"gif"`
	Webp *mediaFile `json:"webp,omitempty"`
	MP4  *mediaFile `json:"mp4,omitempty"`
	Webm *mediaFile `json:"webm,omitempty"`
	Jpg  *mediaFile `json:"jpg,omitempty"`
}

type fileFormats struct {
	HD sizeFormat `json:"hd"`
	MD sizeFormat `json:"md"`
	SM sizeFormat `json:"sm"`
	XS sizeFormat `json:"xs"`
}

type rawGif struct {
	ID    int64       `json:"id"`
	Slug  string      `json:"slug"`
	Title string      `json:"title"`
	File  fileFormats `json:"file"`
}

type searchResponse struct {
	Result bool `json:"result"`
	Data   struct {
		Data        []rawGif `json:"data"`
		CurrentPage int      `json:"current_page"`
		LastPage    int      `json:"last_page"`
		PerPage     int      `json:"per_page"`
		Total       int      `json:"total"`
	} `json:"data"`
}

type categoriesResponse struct {
	Result bool `json:"result"`
	Data   struct {
		Locale     string `json:"locale"`
		Categories []struct {
			Category   string `json:"category"`
			Query      string `json:"query"`
			PreviewURL string `json:"preview_url"`
		} `json:"categories"`
	} `json:"data"`
}

type stringListResponse struct {
	Result bool     `json:"result"`
	Data   []string `json:"data"`
}

// page flattens a raw response. fallbackPage fills the page marker when the
// API omits current_page.
func (r *searchResponse) page(fallbackPage int) *Page {
	gifs := make([]Gif, 0, len(r.Data.Data))
	for _, raw := range r.Data.Data {
		g := Gif{
			ID:     fmt.Sprintf("%d", raw.ID),
			Slug:   raw.Slug,
			Title:  raw.Title,
			URL:    "https://klipy.com/gifs/" + raw.Slug,
			GifURL: raw.File.HD.Gif.URL,
			Width:  raw.File.MD.Gif.Width,
			Height: raw.File.MD.Gif.Height,
			Size:   raw.File.HD.Gif.Size,
		}
		if raw.File.HD.MP4 != nil {
			g.MP4URL = raw.File.HD.MP4.URL
		}
		if raw.File.SM.Gif.URL != "" {
			g.PreviewURL = raw.File.SM.Gif.URL
		}
		gifs = append(gifs, g)
	}

	currentPage := r.Data.CurrentPage
	if currentPage == 0 {
		currentPage = fallbackPage
	}

	return &Page{
		Gifs:    gifs,
		Total:   r.Data.Total,
		Page:    currentPage,
		PerPage: r.Data.PerPage,
	}
}
