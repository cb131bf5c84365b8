// Package media caches remote GIF/image/video files under the data
// directory so favorites can be copied as real files.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/gifdeck/internal/db"
)

type Downloader struct {
	client   *http.Client
	mediaDir string
}

func NewDownloader(mediaDir string) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		mediaDir: mediaDir,
	}
}

func subdirFor(mediaType db.MediaType) string {
	switch mediaType {
	case db.MediaImage:
		return "images"
	case db.MediaVideo:
		return "videos"
	default:
		return "gifs"
	}
}

func (d *Downloader) ensureDirs() error {
	for _, sub := range []string{"gifs", "images", "videos"} {
		if err := os.MkdirAll(filepath.Join(d.mediaDir, sub), 0755); err != nil {
			return fmt.Errorf("create media directory %s: %w", sub, err)
		}
	}
	return nil
}

// Download fetches url into the cache and returns the local path. An
// already-cached file is returned as-is.
func (d *Downloader) Download(ctx context.Context, url, filename string, mediaType db.MediaType) (string, error) {
	if err := d.ensureDirs(); err != nil {
		return "", err
	}

	path := filepath.Join(d.mediaDir, subdirFor(mediaType), filename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", url, resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// DownloadGif fetches a remote GIF with a filename derived from its source
// identifier, keeping the URL's extension.
func (d *Downloader) DownloadGif(ctx context.Context, url, sourceID string) (string, error) {
	ext := "gif"
	if i := strings.LastIndex(url, "."); i >= 0 && i > strings.LastIndex(url, "/") {
		ext = url[i+1:]
		if j := strings.IndexAny(ext, "?#"); j >= 0 {
			ext = ext[:j]
		}
	}
	filename := fmt.Sprintf("klipy_%s.%s", sourceID, ext)
	return d.Download(ctx, url, filename, db.MediaGif)
}

// ImportLocalFile copies a file from outside the cache into it, classifying
// the media type by extension.
func (d *Downloader) ImportLocalFile(sourcePath string) (string, db.MediaType, error) {
	if err := d.ensureDirs(); err != nil {
		return "", "", err
	}

	mediaType := TypeForPath(sourcePath)
	filename := filepath.Base(sourcePath)
	destPath := filepath.Join(d.mediaDir, subdirFor(mediaType), filename)

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", "", fmt.Errorf("open %s: %w", sourcePath, err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", "", fmt.Errorf("create %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destPath)
		return "", "", fmt.Errorf("copy to %s: %w", destPath, err)
	}

	return destPath, mediaType, nil
}

// Delete removes a cached file. Missing files are not an error; favorite
// deletion is best-effort about its cache.
func Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// TypeForPath classifies a file by extension, defaulting to gif.
func TypeForPath(path string) db.MediaType {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png", "jpg", "jpeg", "webp":
		return db.MediaImage
	case "mp4", "webm", "mov":
		return db.MediaVideo
	default:
		return db.MediaGif
	}
}
