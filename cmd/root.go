// Package cmd implements the ganttr CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/ganttr/internal/config"
	"github.com/sadopc/ganttr/internal/gantt"
	"github.com/sadopc/ganttr/internal/source"
	"github.com/sadopc/ganttr/internal/store"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagDB      string
	flagFile    string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
	flagNoColor bool
)

// logFile is the open --log-file, closed when the command finishes.
var logFile io.Closer

var rootCmd = &cobra.Command{
	Use:   "ganttr",
	Short: "Interactive Gantt chart in the terminal",
	Long: `ganttr draws tasks on a scrollable day-by-day timeline. Drag with the
mouse or use the arrow keys to move through time.

Tasks come from a local database (see "ganttr import" and "ganttr seed") or,
with --file, from a YAML, JSON or CSV file that is reloaded when it changes.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd == cmd.Root())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the task database (default ~/.config/ganttr/ganttr.db)")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "read tasks from a YAML, JSON or CSV file instead of the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config.yml (default ~/.config/ganttr/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log debug messages")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	closeLog()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// setupLogging installs the default slog logger. The TUI owns the terminal,
// so interactive runs log only to --log-file.
func setupLogging(interactive bool) error {
	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := tea.LogToFile(flagLogFile, "ganttr")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		w = f
	case interactive:
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// loadConfig reads --config, or the default config file, falling back to
// the built-in defaults when it does not exist. It also returns the path
// settings are saved to.
func loadConfig() (*config.Config, string, error) {
	path := flagConfig
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, "", fmt.Errorf("finding config dir: %w", err)
		}
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// openStore opens --db, or the default database.
func openStore() (*store.Store, error) {
	path := flagDB
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	slog.Debug("opened database", "path", path)
	return s, nil
}

// loadTasks returns the tasks of --file, or of the database together with
// its category colours.
func loadTasks() ([]gantt.Task, map[string]string, error) {
	if flagFile != "" {
		tasks, err := source.Load(flagFile)
		return tasks, nil, err
	}

	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	defer s.Close()

	tasks, err := s.ListTasks()
	if err != nil {
		return nil, nil, err
	}
	colors, err := s.CategoryColors()
	if err != nil {
		return nil, nil, err
	}
	return tasks, colors, nil
}

// printWarnings writes data-contract warnings to stderr.
func printWarnings(tasks []gantt.Task) {
	for _, w := range gantt.Validate(tasks) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}
