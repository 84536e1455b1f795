package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ganttr/internal/config"
)

type settingsModel struct {
	cfg    *config.Config
	path   string // where saved settings are written; empty disables saving
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dayWidth      *string
	sidebarWidth  *string
	leadDays      *string
	trailDays     *string
	infinite      *bool
	edgeThreshold *string
	extendDays    *string
	save          *bool
}

func newSettingsModel(cfg *config.Config, path string) settingsModel {
	dw, sw, ld, td, et, ed := "", "", "", "", "", ""
	inf, save := false, false
	return settingsModel{
		cfg:           cfg,
		path:          path,
		dayWidth:      &dw,
		sidebarWidth:  &sw,
		leadDays:      &ld,
		trailDays:     &td,
		infinite:      &inf,
		edgeThreshold: &et,
		extendDays:    &ed,
		save:          &save,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.dayWidth = s.cfg.Chart.DayWidth.String()
	*s.sidebarWidth = s.cfg.Chart.SidebarWidth.String()
	*s.leadDays = strconv.Itoa(s.cfg.Chart.LeadDays)
	*s.trailDays = strconv.Itoa(s.cfg.Chart.TrailDays)
	*s.infinite = s.cfg.Drag.Infinite
	*s.edgeThreshold = s.cfg.Drag.EdgeThreshold.String()
	*s.extendDays = strconv.Itoa(s.cfg.Drag.ExtendDays)
	*s.save = false

	layout := huh.NewGroup(
		huh.NewInput().Title("Day width").Description("px or rem").Value(s.dayWidth).Validate(validateLength),
		huh.NewInput().Title("Sidebar width").Description("px, rem or vw").Value(s.sidebarWidth).Validate(validateLength),
		huh.NewInput().Title("Days before the first task").Value(s.leadDays).Validate(validateCount(0)),
		huh.NewInput().Title("Days after the last task").Value(s.trailDays).Validate(validateCount(0)),
	).Title("Layout")

	drag := huh.NewGroup(
		huh.NewConfirm().Title("Extend the timeline while dragging").Value(s.infinite),
		huh.NewInput().Title("Edge threshold").Value(s.edgeThreshold).Validate(validateLength),
		huh.NewInput().Title("Days added per extension").Value(s.extendDays).Validate(validateCount(1)),
	).Title("Drag")

	groups := []*huh.Group{layout, drag}
	if s.path != "" {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().Title("Save to " + s.path + "?").Value(s.save),
		))
	}

	s.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	s.formActive = true
	return s, s.form.Init()
}

func validateLength(v string) error {
	_, err := config.ParseLength(strings.TrimSpace(v))
	return err
}

func validateCount(minimum int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if n < minimum {
			return fmt.Errorf("must be at least %d", minimum)
		}
		return nil
	}
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		cfg, err := s.formConfig()
		if err != nil {
			return s, statusCmd("Invalid settings: "+err.Error(), true)
		}
		s.cfg = cfg
		cmds := []tea.Cmd{func() tea.Msg { return configChangedMsg{cfg: cfg} }}
		if *s.save {
			path := s.path
			cmds = append(cmds, func() tea.Msg {
				if err := cfg.Save(path); err != nil {
					return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
				}
				return statusMsg{text: "Settings saved to " + path}
			})
		}
		return s, tea.Batch(cmds...)
	}

	return s, cmd
}

// formConfig returns a copy of the current config with the form values
// applied.
func (s settingsModel) formConfig() (*config.Config, error) {
	cfg := *s.cfg
	var err error
	if cfg.Chart.DayWidth, err = config.ParseLength(strings.TrimSpace(*s.dayWidth)); err != nil {
		return nil, err
	}
	if cfg.Chart.SidebarWidth, err = config.ParseLength(strings.TrimSpace(*s.sidebarWidth)); err != nil {
		return nil, err
	}
	if cfg.Drag.EdgeThreshold, err = config.ParseLength(strings.TrimSpace(*s.edgeThreshold)); err != nil {
		return nil, err
	}
	if cfg.Chart.LeadDays, err = strconv.Atoi(strings.TrimSpace(*s.leadDays)); err != nil {
		return nil, err
	}
	if cfg.Chart.TrailDays, err = strconv.Atoi(strings.TrimSpace(*s.trailDays)); err != nil {
		return nil, err
	}
	if cfg.Drag.ExtendDays, err = strconv.Atoi(strings.TrimSpace(*s.extendDays)); err != nil {
		return nil, err
	}
	cfg.Drag.Infinite = *s.infinite
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	infinite := "off"
	if s.cfg.Drag.Infinite {
		infinite = "on"
	}
	settings := [][2]string{
		{"day_width", s.cfg.Chart.DayWidth.String()},
		{"sidebar_width", s.cfg.Chart.SidebarWidth.String()},
		{"lead_days", strconv.Itoa(s.cfg.Chart.LeadDays)},
		{"trail_days", strconv.Itoa(s.cfg.Chart.TrailDays)},
		{"infinite drag", infinite},
		{"edge_threshold", s.cfg.Drag.EdgeThreshold.String()},
		{"extend_days", strconv.Itoa(s.cfg.Drag.ExtendDays)},
		{"cell_px", strconv.FormatFloat(s.cfg.Terminal.CellPx, 'f', -1, 64)},
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for _, kv := range settings {
		label := lipgloss.NewStyle().Width(24).Render(kv[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(kv[1])))
	}
	rows = append(rows, "")
	if s.path != "" {
		rows = append(rows, mutedStyle.Render("Config file: "+s.path))
	}
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
