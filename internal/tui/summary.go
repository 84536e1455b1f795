package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ganttr/internal/gantt"
	"github.com/sadopc/ganttr/internal/store"
)

type summaryMetric int

const (
	metricProgress summaryMetric = iota
	metricDays
)

type summaryModel struct {
	source TaskSource
	width  int
	height int

	metric    summaryMetric
	summaries []store.CategorySummary
	warnings  []gantt.Warning
	err       error

	chart barchart.Model
}

func newSummaryModel(src TaskSource) summaryModel {
	return summaryModel{
		source: src,
		chart:  barchart.New(60, 12),
	}
}

func (s *summaryModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

type summaryDataMsg struct {
	summaries []store.CategorySummary
	warnings  []gantt.Warning
	err       error
}

func (s summaryModel) refresh() tea.Cmd {
	src := s.source
	return func() tea.Msg {
		tasks, err := src.ListTasks()
		if err != nil {
			return summaryDataMsg{err: err}
		}
		var summaries []store.CategorySummary
		if ss, ok := src.(summarySource); ok {
			summaries, err = ss.GetCategorySummary()
		} else {
			var colors map[string]string
			if cs, ok := src.(colorSource); ok {
				colors, _ = cs.CategoryColors()
			}
			summaries = summarize(tasks, colors)
		}
		return summaryDataMsg{summaries: summaries, warnings: gantt.Validate(tasks), err: err}
	}
}

// summarize aggregates tasks per category in memory, for sources without a
// database behind them.
func summarize(tasks []gantt.Task, colors map[string]string) []store.CategorySummary {
	byName := make(map[string]*store.CategorySummary)
	progress := make(map[string]int)
	for _, t := range tasks {
		cs, ok := byName[t.Category]
		if !ok {
			cs = &store.CategorySummary{Category: t.Category, Color: colors[t.Category]}
			byName[t.Category] = cs
		}
		cs.TaskCount++
		cs.TotalDays += t.Duration()
		progress[t.Category] += t.ClampedProgress()
	}

	out := make([]store.CategorySummary, 0, len(byName))
	for name, cs := range byName {
		cs.AvgProgress = float64(progress[name]) / float64(cs.TaskCount)
		out = append(out, *cs)
	}
	slices.SortFunc(out, func(a, b store.CategorySummary) int {
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

func (s summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryDataMsg:
		s.summaries = msg.summaries
		s.warnings = msg.warnings
		s.err = msg.err
		s.buildChart()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
			if s.metric == metricProgress {
				s.metric = metricDays
			} else {
				s.metric = metricProgress
			}
			s.buildChart()
			return s, nil
		}
	}
	return s, nil
}

func (s *summaryModel) buildChart() {
	chartWidth := max(s.width-8, 20)
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)
	if len(s.summaries) == 0 {
		return
	}

	var bars []barchart.BarData
	for _, cs := range s.summaries {
		value := cs.AvgProgress
		if s.metric == metricDays {
			value = float64(cs.TotalDays)
		}
		style := lipgloss.NewStyle().Foreground(categoryColor(cs))
		bars = append(bars, barchart.BarData{
			Label:  categoryName(cs),
			Values: []barchart.BarValue{{Name: categoryName(cs), Value: value, Style: style}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s summaryModel) view() string {
	w := s.width - 4

	progressTab := inactiveTabStyle.Render("Progress")
	daysTab := inactiveTabStyle.Render("Days")
	if s.metric == metricProgress {
		progressTab = activeTabStyle.Render("Progress")
	} else {
		daysTab = activeTabStyle.Render("Days")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Summary"), "  ", progressTab, daysTab,
	)

	if s.err != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", errorStyle.Render("Error: "+s.err.Error())),
		)
	}

	nav := mutedStyle.Render("  ←/→: switch metric")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", s.chart.View(), "", s.renderTable(w), "", s.renderWarnings(), nav,
		),
	)
}

func (s summaryModel) renderTable(w int) string {
	if len(s.summaries) == 0 {
		return mutedStyle.Render("  No tasks")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %6s %8s %9s", "Category", "Tasks", "Days", "Progress")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 46))))

	for _, cs := range s.summaries {
		dot := lipgloss.NewStyle().Foreground(categoryColor(cs)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-18s %6d %8d %8.0f%%",
			dot, categoryName(cs), cs.TaskCount, cs.TotalDays, cs.AvgProgress,
		))
	}
	return strings.Join(rows, "\n")
}

func (s summaryModel) renderWarnings() string {
	if len(s.warnings) == 0 {
		return ""
	}
	rows := []string{warningStyle.Render(fmt.Sprintf("  %d data warnings", len(s.warnings)))}
	for _, w := range s.warnings {
		rows = append(rows, mutedStyle.Render("  • "+w.String()))
	}
	return strings.Join(rows, "\n") + "\n\n"
}

func categoryName(cs store.CategorySummary) string {
	if cs.Category == "" {
		return "(none)"
	}
	return cs.Category
}

func categoryColor(cs store.CategorySummary) lipgloss.Color {
	if cs.Color == "" {
		return colorSubtle
	}
	return lipgloss.Color(cs.Color)
}
