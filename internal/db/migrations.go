package db

import (
	"database/sql"
	"fmt"
)

// migration is a single forward-only schema change. Migrations are additive;
// removing a constraint is done by copy-rebuild-rename (see v3).
type migration struct {
	Version int
	Name    string
	Apply   func(tx *sql.Tx) error
}

func allMigrations() []migration {
	return []migration{
		{Version: 1, Name: "initial_schema", Apply: migrateV001},
		{Version: 2, Name: "add_url_columns", Apply: migrateV002},
		{Version: 3, Name: "optional_filepath", Apply: migrateV003},
	}
}

// migrate applies all pending migrations in order, recording each in the
// schema_migrations table. Safe to run on every startup.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range allMigrations() {
		var count int
		err := s.db.QueryRow(
			`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.Version,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		if err := s.applyMigration(m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(m migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := m.Apply(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}

func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS favorites (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			filename     TEXT NOT NULL,
			filepath     TEXT NOT NULL,
			media_type   TEXT NOT NULL DEFAULT 'gif',
			source       TEXT,
			source_id    TEXT,
			source_url   TEXT,
			tags         TEXT NOT NULL DEFAULT '[]',
			custom_tags  TEXT NOT NULL DEFAULT '[]',
			description  TEXT,
			width        INTEGER,
			height       INTEGER,
			file_size    INTEGER,
			created_at   TEXT NOT NULL,
			last_used    TEXT,
			use_count    INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_favorites_source    ON favorites(source, source_id)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_use_count ON favorites(use_count)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func migrateV002(tx *sql.Tx) error {
	stmts := []string{
		`ALTER TABLE favorites ADD COLUMN gif_url TEXT`,
		`ALTER TABLE favorites ADD COLUMN mp4_filepath TEXT`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateV003 drops the NOT NULL constraint on filepath. SQLite can't alter
// a column in place, so copy-rebuild-rename.
func migrateV003(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE favorites_new (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			filename     TEXT NOT NULL,
			filepath     TEXT,
			mp4_filepath TEXT,
			gif_url      TEXT,
			media_type   TEXT NOT NULL DEFAULT 'gif',
			source       TEXT,
			source_id    TEXT,
			source_url   TEXT,
			tags         TEXT NOT NULL DEFAULT '[]',
			custom_tags  TEXT NOT NULL DEFAULT '[]',
			description  TEXT,
			width        INTEGER,
			height       INTEGER,
			file_size    INTEGER,
			created_at   TEXT NOT NULL,
			last_used    TEXT,
			use_count    INTEGER NOT NULL DEFAULT 0
		)`,

		`INSERT INTO favorites_new (
			id, filename, filepath, mp4_filepath, gif_url, media_type,
			source, source_id, source_url, tags, custom_tags, description,
			width, height, file_size, created_at, last_used, use_count
		)
		SELECT
			id, filename, filepath, mp4_filepath, gif_url, media_type,
			source, source_id, source_url, tags, custom_tags, description,
			width, height, file_size, created_at, last_used, use_count
		FROM favorites`,

		`DROP TABLE favorites`,
		`ALTER TABLE favorites_new RENAME TO favorites`,

		`CREATE INDEX IF NOT EXISTS idx_favorites_source    ON favorites(source, source_id)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_use_count ON favorites(use_count)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
