package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fentz26/givo/internal/app"
	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "givo",
	Short:         "givo - local-first todos and workspace notes",
	Long:          `givo keeps your todos in a local SQLite database and your workspace lists, session and settings in a local snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	dataDir    string
	apiURL     string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.givo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Auth backend URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr as well as the log file")

	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apperr.Message(err))
		os.Exit(1)
	}
}

// loadConfig applies command-line overrides on top of the config file.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromHome()
	}
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg, cfg.Validate()
}

// openLogger appends to the configured log file. toStderr mirrors the log to
// the terminal.
func openLogger(cfg *config.Config, toStderr bool) (*log.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath()), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	var w io.Writer = f
	if toStderr {
		w = io.MultiWriter(f, os.Stderr)
	}
	return log.New(w, "", log.LstdFlags), func() { f.Close() }, nil
}

// withApp opens the core for the duration of fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()
	return fn(ctx, a)
}
