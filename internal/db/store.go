package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func NewStore(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "gifdeck.db")
	return Open(dbPath)
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}

const favoriteColumns = `id, filename, filepath, mp4_filepath, gif_url, media_type,
	source, source_id, source_url, tags, custom_tags, description,
	width, height, file_size, created_at, last_used, use_count`

// CreateFavorite inserts a favorite and assigns its ID. A favorite with no
// local file, no MP4 file, and no backup URL is unrenderable and rejected.
func (s *Store) CreateFavorite(f *Favorite) error {
	if !f.Renderable() {
		return fmt.Errorf("favorite %q has no filepath, mp4 path, or backup URL", f.Filename)
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	tags, err := json.Marshal(emptyIfNil(f.Tags))
	if err != nil {
		return err
	}
	customTags, err := json.Marshal(emptyIfNil(f.CustomTags))
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO favorites (
			filename, filepath, mp4_filepath, gif_url, media_type,
			source, source_id, source_url, tags, custom_tags, description,
			width, height, file_size, created_at, last_used, use_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Filename, nullStr(f.FilePath), nullStr(f.MP4Path), nullStr(f.GifURL),
		string(f.MediaType), nullStr(string(f.Source)), nullStr(f.SourceID),
		nullStr(f.SourceURL), string(tags), string(customTags),
		nullStr(f.Description), nullInt(f.Width), nullInt(f.Height),
		nullInt64(f.FileSize), f.CreatedAt.Format(time.RFC3339), nullTime(f.LastUsed),
		f.UseCount,
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}

	f.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetFavorite(id int64) (*Favorite, error) {
	row := s.db.QueryRow(`SELECT `+favoriteColumns+` FROM favorites WHERE id = ?`, id)
	f, err := scanFavorite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch favorite %d: %w", id, err)
	}
	return f, nil
}

// GetFavoriteBySource looks up a favorite by its provenance, used to detect
// whether a remote result has already been saved.
func (s *Store) GetFavoriteBySource(source Source, sourceID string) (*Favorite, error) {
	row := s.db.QueryRow(
		`SELECT `+favoriteColumns+` FROM favorites WHERE source = ? AND source_id = ?`,
		string(source), sourceID,
	)
	f, err := scanFavorite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Store) AllFavorites() ([]Favorite, error) {
	rows, err := s.db.Query(`SELECT ` + favoriteColumns + ` FROM favorites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("fetch favorites: %w", err)
	}
	defer rows.Close()
	return collectFavorites(rows)
}

// SearchFavorites matches the query against filename, tags, custom tags, and
// description, most-used first.
func (s *Store) SearchFavorites(query string) ([]Favorite, error) {
	term := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT `+favoriteColumns+`
		FROM favorites
		WHERE filename LIKE ? COLLATE NOCASE
		   OR tags LIKE ? COLLATE NOCASE
		   OR custom_tags LIKE ? COLLATE NOCASE
		   OR description LIKE ? COLLATE NOCASE
		ORDER BY use_count DESC, created_at DESC`,
		term, term, term, term,
	)
	if err != nil {
		return nil, fmt.Errorf("search favorites: %w", err)
	}
	defer rows.Close()
	return collectFavorites(rows)
}

func (s *Store) UpdateFavorite(f *Favorite) error {
	if f.ID == 0 {
		return fmt.Errorf("favorite must have an ID to update")
	}

	tags, err := json.Marshal(emptyIfNil(f.Tags))
	if err != nil {
		return err
	}
	customTags, err := json.Marshal(emptyIfNil(f.CustomTags))
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE favorites
		SET filename = ?, filepath = ?, mp4_filepath = ?, gif_url = ?,
			media_type = ?, source = ?, source_id = ?, source_url = ?,
			tags = ?, custom_tags = ?, description = ?,
			width = ?, height = ?, file_size = ?, last_used = ?, use_count = ?
		WHERE id = ?`,
		f.Filename, nullStr(f.FilePath), nullStr(f.MP4Path), nullStr(f.GifURL),
		string(f.MediaType), nullStr(string(f.Source)), nullStr(f.SourceID),
		nullStr(f.SourceURL), string(tags), string(customTags),
		nullStr(f.Description), nullInt(f.Width), nullInt(f.Height),
		nullInt64(f.FileSize), nullTime(f.LastUsed), f.UseCount, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update favorite %d: %w", f.ID, err)
	}
	return nil
}

func (s *Store) DeleteFavorite(id int64) error {
	_, err := s.db.Exec(`DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete favorite %d: %w", id, err)
	}
	return nil
}

// IncrementUseCount bumps the use counter and stamps last_used. Called on
// every clipboard copy of a favorite.
func (s *Store) IncrementUseCount(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE favorites SET use_count = use_count + 1, last_used = ? WHERE id = ?`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("increment use count for %d: %w", id, err)
	}
	return nil
}

func (s *Store) CountFavorites() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM favorites`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFavorite(row rowScanner) (*Favorite, error) {
	var f Favorite
	var filePath, mp4Path, gifURL, source, sourceID, sourceURL, description sql.NullString
	var width, height sql.NullInt64
	var fileSize sql.NullInt64
	var tags, customTags, createdAt string
	var lastUsed sql.NullString

	err := row.Scan(
		&f.ID, &f.Filename, &filePath, &mp4Path, &gifURL, (*string)(&f.MediaType),
		&source, &sourceID, &sourceURL, &tags, &customTags, &description,
		&width, &height, &fileSize, &createdAt, &lastUsed, &f.UseCount,
	)
	if err != nil {
		return nil, err
	}

	f.FilePath = filePath.String
	f.MP4Path = mp4Path.String
	f.GifURL = gifURL.String
	f.Source = Source(source.String)
	f.SourceID = sourceID.String
	f.SourceURL = sourceURL.String
	f.Description = description.String
	f.Width = int(width.Int64)
	f.Height = int(height.Int64)
	f.FileSize = fileSize.Int64

	if err := json.Unmarshal([]byte(tags), &f.Tags); err != nil {
		f.Tags = nil
	}
	if err := json.Unmarshal([]byte(customTags), &f.CustomTags); err != nil {
		f.CustomTags = nil
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		f.CreatedAt = t
	}
	if lastUsed.Valid {
		if t, err := time.Parse(time.RFC3339, lastUsed.String); err == nil {
			f.LastUsed = t
		}
	}

	return &f, nil
}

func collectFavorites(rows *sql.Rows) ([]Favorite, error) {
	var favorites []Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, *f)
	}
	return favorites, rows.Err()
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(i int) interface{} {
	if i == 0 {
		return nil
	}
	return i
}

func nullInt64(i int64) interface{} {
	if i == 0 {
		return nil
	}
	return i
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
