package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nvoss/verso/internal/config"
	"github.com/nvoss/verso/internal/debuglog"
	"github.com/nvoss/verso/internal/storage"
	"github.com/nvoss/verso/internal/tui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	flagConfig   string
	flagDB       string
	flagQuiet    bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "verso",
	Short: "Search song lyrics from your terminal",
	Long:  "verso is a terminal client for searching songs, reading their lyrics,\nand charting which words a songwriter leans on.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("verso %s\n", Version)
		fmt.Println("Lyrics search")
		fmt.Println("github.com/nvoss/verso")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default config file",
	Run: func(cmd *cobra.Command, args []string) {
		home, _ := os.UserHomeDir()
		configFile := filepath.Join(home, ".config", "verso", "config.toml")

		if err := config.GenerateDefaultConfig(configFile); err != nil {
			log.Fatalf("Failed to generate config: %v", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file")
	rootCmd.Flags().StringVar(&flagDB, "db", "", "Path to database file (overrides config)")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Skip startup banner")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")

	rootCmd.AddCommand(versionCmd)
	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(configCmd)
}

func runApp() error {
	if flagLogLevel != "" {
		level := debuglog.ParseLogLevel(flagLogLevel)
		if err := debuglog.Setup(level); err != nil {
			return fmt.Errorf("log setup: %w", err)
		}
		defer debuglog.Close()
	}

	if !flagQuiet {
		tui.ShowBanner(Version)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if flagDB != "" {
		cfg.Database.Path = flagDB
	}
	cfg.Database.Path = expandTildePath(cfg.Database.Path)
	cfg.Database.SearchIndex = expandTildePath(cfg.Database.SearchIndex)

	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	app := tui.NewApp(store, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func expandTildePath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func main() {
	// A .env in the working directory may carry overrides like
	// VERSO_API_BASE_URL; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
