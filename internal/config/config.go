package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	API     APIConfig    `mapstructure:"api"`
	Search  SearchConfig `mapstructure:"search"`
}

type APIConfig struct {
	// Klipy app keys. KeyNoAds is used when the show_ads setting is off.
	Key      string `mapstructure:"key"`
	KeyNoAds string `mapstructure:"key_no_ads"`
	BaseURL  string `mapstructure:"base_url"`
}

type SearchConfig struct {
	PerPage    int `mapstructure:"per_page"`
	DebounceMS int `mapstructure:"debounce_ms"`
	WatchdogMS int `mapstructure:"watchdog_ms"`
}

func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultDataDir := filepath.Join(homeDir, ".gifdeck")

	viper.SetDefault("data_dir", defaultDataDir)
	viper.SetDefault("api.base_url", "https://api.klipy.co/api/v1")
	viper.SetDefault("search.per_page", 25)
	viper.SetDefault("search.debounce_ms", 300)
	viper.SetDefault("search.watchdog_ms", 10000)

	// API keys come from the config file only, never the environment.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultDataDir)

	// Read config file if exists (ignore error if not found)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "gifdeck.db")
}

func (c *Config) MediaDir() string {
	return filepath.Join(c.DataDir, "media")
}

// APIKey returns the app key matching the ad preference.
func (c *Config) APIKey(showAds bool) string {
	if !showAds && c.API.KeyNoAds != "" {
		return c.API.KeyNoAds
	}
	return c.API.Key
}

// Debounce and Watchdog expose the coordinator timings with sane floors.
func (c *Config) Debounce() int {
	if c.Search.DebounceMS <= 0 {
		return 300
	}
	return c.Search.DebounceMS
}

func (c *Config) Watchdog() int {
	if c.Search.WatchdogMS <= 0 {
		return 10000
	}
	return c.Search.WatchdogMS
}
