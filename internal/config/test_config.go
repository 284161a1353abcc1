package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "https://api.lyrics.ovh",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "verso-test/1.0",
		},
		Search: SearchConfig{
			Debounce:       50 * time.Millisecond,
			MinQueryLength: 1,
			MaxSuggestions: 10,
		},
		Chart: ChartConfig{
			MinCount: 2,
			MaxBars:  10,
			BarWidth: 20,
		},
		Database: DatabaseConfig{
			Path:    ":memory:", // Use in-memory database for tests
			Timeout: 1 * time.Second,
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
	}
}
