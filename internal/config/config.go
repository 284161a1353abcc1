package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Search   SearchConfig   `mapstructure:"search"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Keys     KeyConfig      `mapstructure:"keys"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type SearchConfig struct {
	Debounce       time.Duration `mapstructure:"debounce"`
	MinQueryLength int           `mapstructure:"min_query_length"`
	MaxSuggestions int           `mapstructure:"max_suggestions"`
}

type ChartConfig struct {
	MinCount int `mapstructure:"min_count"`
	MaxBars  int `mapstructure:"max_bars"`
	BarWidth int `mapstructure:"bar_width"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchIndex string        `mapstructure:"search_index"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
	Opener string   `mapstructure:"opener"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit          string `mapstructure:"quit"`
	History       string `mapstructure:"history"`
	ToggleChart   string `mapstructure:"toggle_chart"`
	OpenWeb       string `mapstructure:"open_web"`
	DeleteHistory string `mapstructure:"delete_history"`
	Back          string `mapstructure:"back"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".verso.db")
	searchIndexPath := filepath.Join(homeDir, ".verso", "index.bleve")

	return &Config{
		API: APIConfig{
			BaseURL:     "https://api.lyrics.ovh",
			HTTPTimeout: 15 * time.Second,
			UserAgent:   "verso/1.0 (lyrics search; github.com/nvoss/verso)",
		},
		Search: SearchConfig{
			Debounce:       300 * time.Millisecond,
			MinQueryLength: 1,
			MaxSuggestions: 20,
		},
		Chart: ChartConfig{
			MinCount: 2,
			MaxBars:  15,
			BarWidth: 30,
		},
		Database: DatabaseConfig{
			Path:        dbPath,
			Timeout:     1 * time.Second,
			SearchIndex: searchIndexPath,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
			Opener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:          "q",
				History:       "h",
				ToggleChart:   "t",
				OpenWeb:       "o",
				DeleteHistory: "x",
				Back:          "esc",
			},
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("search", cfg.Search)
	v.SetDefault("chart", cfg.Chart)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "verso")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VERSO")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand paths after loading
	expandPaths(&config)
	clampValues(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config
func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Database.SearchIndex = expandPath(cfg.Database.SearchIndex)
}

// clampValues keeps tunables inside workable ranges regardless of what
// the config file says. The debounce window in particular must stay in
// the 50–500ms band or the search feels either jittery or sluggish.
func clampValues(cfg *Config) {
	if cfg.Search.Debounce < 50*time.Millisecond {
		cfg.Search.Debounce = 50 * time.Millisecond
	}
	if cfg.Search.Debounce > 500*time.Millisecond {
		cfg.Search.Debounce = 500 * time.Millisecond
	}
	if cfg.Search.MinQueryLength < 1 {
		cfg.Search.MinQueryLength = 1
	}
	if cfg.Search.MaxSuggestions <= 0 {
		cfg.Search.MaxSuggestions = 20
	}
	if cfg.Chart.MinCount < 1 {
		cfg.Chart.MinCount = 1
	}
	if cfg.Chart.MaxBars <= 0 {
		cfg.Chart.MaxBars = 15
	}
	if cfg.Chart.BarWidth <= 0 {
		cfg.Chart.BarWidth = 30
	}
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Convert durations to strings for TOML readability
	apiCfg := map[string]interface{}{
		"base_url":     config.API.BaseURL,
		"http_timeout": config.API.HTTPTimeout.String(),
		"user_agent":   config.API.UserAgent,
	}

	searchCfg := map[string]interface{}{
		"debounce":         config.Search.Debounce.String(),
		"min_query_length": config.Search.MinQueryLength,
		"max_suggestions":  config.Search.MaxSuggestions,
	}

	dbCfg := map[string]interface{}{
		"path":         config.Database.Path,
		"timeout":      config.Database.Timeout.String(),
		"search_index": config.Database.SearchIndex,
	}

	v.Set("api", apiCfg)
	v.Set("search", searchCfg)
	v.Set("chart", config.Chart)
	v.Set("database", dbCfg)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
