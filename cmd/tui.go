package cmd

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/ganttr/internal/source"
	"github.com/sadopc/ganttr/internal/tui"
	"github.com/sadopc/ganttr/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	tui.ApplyColorProfile(flagNoColor)

	var src tui.TaskSource
	if flagFile != "" {
		if _, err := source.DetectFormat(flagFile); err != nil {
			return err
		}
		src = source.File{Path: flagFile}
	} else {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		src = s
	}

	model := tui.NewApp(src, cfg, cfgPath)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if flagFile != "" {
		go startTUIWatcher(ctx, flagFile, p)
	}

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, path string, p *tea.Program) {
	w, err := watcher.New(path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		slog.Warn("live reload disabled", "path", path, "error", err)
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		slog.Warn("watching task file", "error", err)
	})
}
