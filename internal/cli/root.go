// Package cli implements the medtrack CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/config"
	"github.com/rcliao/medtrack/internal/logging"
	"github.com/rcliao/medtrack/internal/notify"
	"github.com/rcliao/medtrack/internal/reminder"
	"github.com/rcliao/medtrack/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "medtrack",
	Short: "Track medicines and their expiry dates",
	Long:  "A small CLI for a personal medicine cabinet. Records medicines, warns before they expire, and keeps a health profile. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MEDTRACK_DB or ~/.medtrack/medtrack.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.medtrack/config.yaml if present)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")

	RootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		switch strings.ToLower(formatFlag) {
		case "json", "text":
		default:
			exitErr("format", fmt.Errorf("unknown output format %q (want json or text)", formatFlag))
		}
	}
}

// app bundles what a command needs to read and write medicines.
type app struct {
	cfg         *config.Config
	store       *store.SQLiteStore
	logger      *slog.Logger
	queue       *notify.Queue
	coordinator *reminder.Coordinator
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}
	return cfg
}

func openApp() *app {
	cfg := loadConfig()

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		exitErr("logger", err)
	}

	s, err := store.NewSQLiteStore(cfg.DB)
	if err != nil {
		exitErr("open store", err)
	}

	q := notify.NewQueue(s, cfg.Notifications.Enabled)
	return &app{
		cfg:         cfg,
		store:       s,
		logger:      logger,
		queue:       q,
		coordinator: reminder.New(q, reminder.WithLogger(logger)),
	}
}

func (a *app) Close() error {
	return a.store.Close()
}

func textOutput() bool {
	return strings.EqualFold(formatFlag, "text")
}

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func warn(msg string, err error) {
	fmt.Fprintf(os.Stderr, "warning: %s: %v\n", msg, err)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
