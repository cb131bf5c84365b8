package db

import (
	"encoding/json"
	"fmt"
)

// Settings reads the flat key-value settings table into a Settings value.
// Unknown keys are ignored; missing keys keep their defaults.
func (s *Store) Settings() (*Settings, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("fetch settings: %w", err)
	}
	defer rows.Close()

	settings := DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		applySetting(settings, key, value)
	}
	return settings, rows.Err()
}

func applySetting(settings *Settings, key, value string) {
	// Values are JSON-encoded strings; a bad value keeps the default.
	switch key {
	case "hotkey":
		json.Unmarshal([]byte(value), &settings.Hotkey) //nolint:errcheck
	case "window_width":
		json.Unmarshal([]byte(value), &settings.WindowWidth) //nolint:errcheck
	case "window_height":
		json.Unmarshal([]byte(value), &settings.WindowHeight) //nolint:errcheck
	case "max_item_width":
		json.Unmarshal([]byte(value), &settings.MaxItemWidth) //nolint:errcheck
	case "close_after_selection":
		json.Unmarshal([]byte(value), &settings.CloseAfterSelection) //nolint:errcheck
	case "launch_at_startup":
		json.Unmarshal([]byte(value), &settings.LaunchAtStartup) //nolint:errcheck
	case "theme":
		json.Unmarshal([]byte(value), &settings.Theme) //nolint:errcheck
	case "clipboard_mode":
		json.Unmarshal([]byte(value), &settings.ClipboardMode) //nolint:errcheck
	case "show_ads":
		json.Unmarshal([]byte(value), &settings.ShowAds) //nolint:errcheck
	}
}

// SaveSettings writes the full settings record, replacing whatever is stored.
func (s *Store) SaveSettings(settings *Settings) error {
	pairs := []struct {
		key   string
		value interface{}
	}{
		{"hotkey", settings.Hotkey},
		{"window_width", settings.WindowWidth},
		{"window_height", settings.WindowHeight},
		{"max_item_width", settings.MaxItemWidth},
		{"close_after_selection", settings.CloseAfterSelection},
		{"launch_at_startup", settings.LaunchAtStartup},
		{"theme", settings.Theme},
		{"clipboard_mode", settings.ClipboardMode},
		{"show_ads", settings.ShowAds},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}

	for _, p := range pairs {
		encoded, err := json.Marshal(p.value)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)`, p.key, string(encoded),
		); err != nil {
			return fmt.Errorf("insert setting %s: %w", p.key, err)
		}
	}

	return tx.Commit()
}

// UpdateSetting upserts a single raw key. The value must be JSON-encoded.
func (s *Store) UpdateSetting(key, value string) error {
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("setting %s: value is not valid JSON", key)
	}
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("update setting %s: %w", key, err)
	}
	return nil
}
