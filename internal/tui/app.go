package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ganttr/internal/config"
	"github.com/sadopc/ganttr/internal/export"
	"github.com/sadopc/ganttr/internal/gantt"
)

// App is the root Bubble Tea model.
type App struct {
	source TaskSource
	cfg    *config.Config
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	chart    chartModel
	tasks    tasksModel
	summary  summaryModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp builds the UI over src. configPath is where the settings view
// saves changes; it may be empty.
func NewApp(src TaskSource, cfg *config.Config, configPath string) App {
	h := help.New()
	h.ShowAll = false

	home, _ := os.UserHomeDir()
	return App{
		source:     src,
		cfg:        cfg,
		activeView: viewChart,
		exportDir:  home,
		chart:      newChartModel(cfg),
		tasks:      newTasksModel(src),
		summary:    newSummaryModel(src),
		settings:   newSettingsModel(cfg, configPath),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.loadTasks(),
		tickCmd(),
	)
}

// tickCmd fires once a minute so the today marker follows the clock.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) loadTasks() tea.Cmd {
	src := a.source
	return func() tea.Msg {
		tasks, err := src.ListTasks()
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		var colors map[string]string
		if cs, ok := src.(colorSource); ok {
			if colors, err = cs.CategoryColors(); err != nil {
				return tasksLoadedMsg{err: err}
			}
		}
		return tasksLoadedMsg{tasks: tasks, colors: colors}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.contentHeight()
		a.chart.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.summary.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.MouseMsg:
		if a.activeView != viewChart || a.exportPicking {
			return a, nil
		}
		msg.Y -= lipgloss.Height(a.renderHeader())
		var cmd tea.Cmd
		a.chart, cmd = a.chart.update(msg)
		return a, cmd

	case tea.BlurMsg:
		var cmd tea.Cmd
		a.chart, cmd = a.chart.update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a.resized(), nil
		case key.Matches(msg, keys.Reload):
			return a, a.loadTasks()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewChart
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSummary
			return a, a.summary.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case ReloadMsg:
		slog.Debug("reload requested")
		return a, a.loadTasks()

	case tasksLoadedMsg:
		if msg.err != nil {
			slog.Error("loading tasks", "error", msg.err)
			a.status = fmt.Sprintf("Load error: %v", msg.err)
			a.statusErr = true
			return a, nil
		}
		slog.Debug("tasks loaded", "count", len(msg.tasks))
		a.chart.setTasks(msg.tasks, msg.colors)
		a.tasks.setTasks(msg.tasks, msg.colors)
		return a, a.summary.refresh()

	case taskSavedMsg:
		a.status = "Saved " + msg.task.Name
		a.statusErr = false
		return a, a.loadTasks()

	case taskDeletedMsg:
		a.status = "Deleted task " + msg.id
		a.statusErr = false
		return a, a.loadTasks()

	case focusDateMsg:
		a.activeView = viewChart
		if a.chart.session != nil && !a.chart.session.ScrollToDate(msg.date) {
			a.status = msg.date.String() + " is outside the timeline"
		}
		return a, nil

	case configChangedMsg:
		a.cfg = msg.cfg
		a.chart.setConfig(msg.cfg)
		a.status = "Settings applied"
		a.statusErr = false
		return a, nil

	case tickMsg:
		return a, tickCmd()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// resized re-applies the current size after the footer height changed.
func (a App) resized() App {
	h := a.contentHeight()
	a.chart.setSize(a.width, h)
	a.tasks.setSize(a.width, h)
	a.summary.setSize(a.width, h)
	a.settings.setSize(a.width, h)
	return a
}

func (a App) contentHeight() int {
	if a.width == 0 {
		return max(a.height-4, 1)
	}
	h := a.height - lipgloss.Height(a.renderHeader()) - lipgloss.Height(a.renderFooter())
	return max(h, 1)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewChart:
		a.chart, cmd = a.chart.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewSummary:
		a.summary, cmd = a.summary.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	if a.activeView == viewSummary {
		return a.summary.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewChart:
		content = a.chart.view()
	case viewTasks:
		content = a.tasks.view()
	case viewSummary:
		content = a.summary.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("ganttr")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(status)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+strings.ToUpper(string(f))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the current tasks laid out in pixels, the way the export
// command does.
func (a App) doExport(format export.Format) tea.Cmd {
	tasks := a.chart.tasks
	colors := a.chart.colors
	cfg := a.cfg
	dir := a.exportDir
	return func() tea.Msg {
		c, err := gantt.NewChart(tasks, cfg.SVGOptions())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		dateStr := time.Now().Format("2006-01-02")
		path := filepath.Join(dir, fmt.Sprintf("ganttr-export-%s.%s", dateStr, format))
		if err := export.Write(c, format, path, export.OptionsFromConfig(cfg, colors)); err != nil {
			return statusMsg{text: fmt.Sprintf("%s error: %v", strings.ToUpper(string(format)), err), isError: true}
		}
		slog.Info("exported chart", "format", string(format), "path", path)
		return exportDoneMsg{path: path}
	}
}
