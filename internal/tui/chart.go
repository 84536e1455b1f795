package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/ganttr/internal/config"
	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/gantt"
)

const (
	chartHeaderRows = 2 // month row and day row
	chartInfoRows   = 1
	sidebarStepVw   = 2
	maxSidebarVw    = 60
	minViewportCols = 10
)

// chartModel draws the timeline and turns mouse input into drag gestures.
// Coordinates it receives are relative to the top-left of the view.
type chartModel struct {
	cfg     *config.Config
	clock   func() time.Time
	session *gantt.Session
	tasks   []gantt.Task
	colors  map[string]string
	err     error

	width         int
	height        int
	sidebarWidth  string
	sidebarHidden bool
	rowOffset     int
	status        string
}

func newChartModel(cfg *config.Config) chartModel {
	return chartModel{
		cfg:          cfg,
		sidebarWidth: cfg.Chart.SidebarWidth.String(),
	}
}

func (m *chartModel) setSize(w, h int) {
	m.width = w
	m.height = h
	if m.session == nil {
		m.rebuild()
		return
	}
	opts := m.options()
	cur := m.session.Chart().Options()
	if opts.DayWidth == cur.DayWidth && opts.Extension == cur.Extension {
		m.session.Resize(m.viewportWidth())
		m.clampRows()
		return
	}
	m.rebuild()
}

// setTasks replaces the chart contents, keeping the leftmost visible date
// in place when it is still on the timeline.
func (m *chartModel) setTasks(tasks []gantt.Task, colors map[string]string) {
	m.tasks = tasks
	m.colors = colors
	m.rebuild()
}

// setConfig applies new layout settings.
func (m *chartModel) setConfig(cfg *config.Config) {
	m.cfg = cfg
	m.sidebarWidth = cfg.Chart.SidebarWidth.String()
	m.rebuild()
}

func (m *chartModel) options() gantt.Options {
	opts := m.cfg.TerminalOptions(max(m.width, 1))
	opts.Now = m.clock
	opts.OnDateClick = func(d date.Date) {
		slog.Info("date clicked", "date", d.String())
	}
	return opts
}

func (m *chartModel) rebuild() {
	if m.width == 0 {
		return
	}
	var (
		keep    date.Date
		hasKeep bool
	)
	if m.session != nil {
		m.sidebarWidth = m.session.Sidebar.Width
		keep, hasKeep = m.session.Timeline().DayAt(m.session.View().Offset())
	}

	chart, err := gantt.NewChart(m.tasks, m.options())
	if err != nil {
		m.session = nil
		if !errors.Is(err, gantt.ErrEmptyInput) {
			m.err = err
		} else {
			m.err = nil
		}
		return
	}
	m.err = nil
	for _, w := range chart.Warnings() {
		slog.Warn("task data", "warning", w.String())
	}

	m.session = gantt.NewSession(chart, m.viewportWidth(), m.sidebarWidth)
	switch {
	case hasKeep && chart.Window().Contains(keep):
		m.session.View().SetOffset(m.session.Timeline().Offset(keep))
	default:
		m.session.ScrollToToday()
	}
	m.clampRows()
}

// sidebarColumns resolves the sidebar width against the terminal width. The
// viewport always keeps at least a few columns.
func (m chartModel) sidebarColumns() int {
	if m.sidebarHidden || m.width == 0 {
		return 0
	}
	width := m.sidebarWidth
	if m.session != nil {
		width = m.session.Sidebar.Width
	}
	l, err := config.ParseLength(width)
	if err != nil {
		l = m.cfg.Chart.SidebarWidth
	}
	cols := m.cfg.SidebarColumns(l, m.width)
	return max(min(cols, m.width-minViewportCols-1), 0)
}

// viewportX is the column where the scrollable timeline starts.
func (m chartModel) viewportX() int {
	if s := m.sidebarColumns(); s > 0 {
		return s + 1
	}
	return 0
}

func (m chartModel) viewportWidth() int {
	return max(m.width-m.viewportX(), 1)
}

func (m chartModel) visibleRows() int {
	return max(m.height-chartHeaderRows-chartInfoRows, 0)
}

func (m *chartModel) clampRows() {
	n := 0
	if m.session != nil {
		n = m.session.Chart().Len()
	}
	m.rowOffset = max(min(m.rowOffset, n-m.visibleRows()), 0)
}

func (m chartModel) update(msg tea.Msg) (chartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.BlurMsg:
		if m.session != nil {
			m.session.Handle(gantt.Pointer(gantt.GestureLeave, 0))
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m chartModel) handleKey(msg tea.KeyMsg) (chartModel, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	dw := m.session.Timeline().DayWidth()
	switch {
	case key.Matches(msg, keys.Left):
		m.scroll(-dw)
	case key.Matches(msg, keys.Right):
		m.scroll(dw)
	case key.Matches(msg, keys.PageLeft):
		m.scroll(-m.viewportWidth())
	case key.Matches(msg, keys.PageRight):
		m.scroll(m.viewportWidth())
	case key.Matches(msg, keys.Up):
		m.rowOffset--
		m.clampRows()
	case key.Matches(msg, keys.Down):
		m.rowOffset++
		m.clampRows()
	case key.Matches(msg, keys.Today):
		if m.session.ScrollToToday() {
			m.status = ""
		} else {
			m.status = "Today is outside the timeline"
		}
	case key.Matches(msg, keys.SidebarNarrow):
		m.adjustSidebar(-sidebarStepVw)
	case key.Matches(msg, keys.SidebarWiden):
		m.adjustSidebar(sidebarStepVw)
	case key.Matches(msg, keys.SidebarToggle):
		m.sidebarHidden = !m.sidebarHidden
		m.session.Resize(m.viewportWidth())
	}
	return m, nil
}

func (m *chartModel) scroll(dx int) {
	out := m.session.ScrollBy(dx)
	m.logExtension(out)
}

// adjustSidebar changes the sidebar width by delta vw. Widths in other
// units are converted to vw first.
func (m *chartModel) adjustSidebar(delta float64) {
	m.sidebarHidden = false
	l, err := config.ParseLength(m.session.Sidebar.Width)
	if err != nil || l.Unit != config.Vw {
		cols := m.sidebarColumns()
		l = config.Length{Value: math.Round(float64(cols) * 100 / float64(max(m.width, 1))), Unit: config.Vw}
	}
	l.Value = max(min(l.Value+delta, maxSidebarVw), 0)
	m.session.Sidebar.Width = l.String()
	m.sidebarWidth = m.session.Sidebar.Width
	m.session.Resize(m.viewportWidth())
}

func (m chartModel) handleMouse(msg tea.MouseMsg) (chartModel, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	vx := msg.X - m.viewportX()
	inside := vx >= 0 && vx < m.viewportWidth() && msg.Y >= 0 && msg.Y < m.height
	dragging := m.session.Drag().State() == gantt.Dragging

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.rowOffset--
		m.clampRows()
	case msg.Button == tea.MouseButtonWheelDown:
		m.rowOffset++
		m.clampRows()
	case msg.Button == tea.MouseButtonWheelLeft:
		m.scroll(-m.session.Timeline().DayWidth())
	case msg.Button == tea.MouseButtonWheelRight:
		m.scroll(m.session.Timeline().DayWidth())

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside {
			m.session.Handle(gantt.Pointer(gantt.GestureDown, vx))
		}

	case msg.Action == tea.MouseActionMotion:
		if !dragging {
			return m, nil
		}
		if !inside {
			m.session.Handle(gantt.Pointer(gantt.GestureLeave, vx))
			return m, nil
		}
		m.logExtension(m.session.Handle(gantt.Pointer(gantt.GestureMove, vx)))

	case msg.Action == tea.MouseActionRelease:
		if !dragging {
			return m, nil
		}
		out := m.session.Handle(gantt.Pointer(gantt.GestureUp, vx))
		if out.Click {
			if d, ok := m.session.Click(vx); ok {
				m.status = "Selected " + d.Format("Mon, Jan 2 2006")
			}
		}
	}
	return m, nil
}

func (m chartModel) logExtension(out gantt.Outcome) {
	if out.Appended > 0 || out.Prepended > 0 {
		w := m.session.Timeline().Window()
		slog.Debug("timeline extended",
			"appended", out.Appended,
			"prepended", out.Prepended,
			"start", w.Start.String(),
			"end", w.End.String(),
		)
	}
}

// --- Rendering ---

// cells is one row of single-width runes, each with an index into a style
// table. Consecutive cells sharing a style are rendered together.
type cells struct {
	runes  []rune
	styles []int
}

func newCells(w int) cells {
	c := cells{runes: make([]rune, w), styles: make([]int, w)}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c cells) set(x int, r rune, style int) {
	if x >= 0 && x < len(c.runes) {
		c.runes[x] = r
		c.styles[x] = style
	}
}

func (c cells) text(x int, s string, style int) {
	for _, r := range s {
		c.set(x, r, style)
		x++
	}
}

func (c cells) render(styles []lipgloss.Style) string {
	var b strings.Builder
	for start := 0; start < len(c.runes); {
		end := start + 1
		for end < len(c.runes) && c.styles[end] == c.styles[start] {
			end++
		}
		b.WriteString(styles[c.styles[start]].Render(string(c.runes[start:end])))
		start = end
	}
	return b.String()
}

func (m chartModel) view() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.session == nil {
		return mutedStyle.Render("No tasks to show. Add one in the Tasks view or run `ganttr seed`.")
	}

	sidebar := m.sidebarColumns()
	rows := []string{
		m.row(sidebar, sidebarTitleStyle.Render("Tasks"), m.renderMonths()),
		m.row(sidebar, "", m.renderDays()),
	}

	bars := m.session.Bars()
	end := min(m.rowOffset+m.visibleRows(), len(bars))
	for i := m.rowOffset; i < end; i++ {
		t := m.session.Chart().Task(i)
		label := t.Name
		if t.Icon != "" {
			label = t.Icon + " " + label
		}
		rows = append(rows, m.row(sidebar, normalItemStyle.Render(label), m.renderBar(t, bars[i])))
	}
	for len(rows) < chartHeaderRows+m.visibleRows() {
		rows = append(rows, m.row(sidebar, "", ""))
	}
	rows = append(rows, m.renderInfo())
	return strings.Join(rows, "\n")
}

func (m chartModel) row(sidebar int, label, timeline string) string {
	if sidebar == 0 {
		return timeline
	}
	cell := lipgloss.NewStyle().Width(sidebar).MaxWidth(sidebar).
		Render(ansi.Truncate(label, sidebar-1, "…"))
	return cell + separatorStyle.Render("│") + timeline
}

func (m chartModel) renderMonths() string {
	const (
		plain = iota
		grid
		month
		monthAlt
	)
	styles := []lipgloss.Style{lipgloss.NewStyle(), gridStyle, monthStyle, monthAltStyle}

	w := m.viewportWidth()
	off := m.session.View().Offset()
	c := newCells(w)
	x := 0
	for i, b := range m.session.Timeline().Grid() {
		vx0, vx1 := x-off, x+b.Width-off
		x += b.Width
		if vx1 <= 0 || vx0 >= w {
			continue
		}
		style := month
		if i%2 == 1 {
			style = monthAlt
		}
		labelX := max(vx0, 0)
		if vx0 >= 0 {
			c.set(vx0, '▏', grid)
			labelX = vx0 + 1
		}
		label := b.Label
		if room := vx1 - labelX; room < len(label) {
			label = label[:max(room, 0)]
		}
		c.text(labelX, label, style)
	}
	return c.render(styles)
}

func (m chartModel) renderDays() string {
	const (
		plain = iota
		tick
		weekend
		today
	)
	styles := []lipgloss.Style{lipgloss.NewStyle(), tickStyle, weekendTickStyle, todayTickStyle}

	tl := m.session.Timeline()
	dw := tl.DayWidth()
	off := m.session.View().Offset()
	now := m.session.Chart().Today()
	c := newCells(m.viewportWidth())
	first, last := m.session.VisibleDays()
	days := tl.Days()
	for i := first; i < last; i++ {
		d := days[i]
		style := tick
		switch {
		case d.Equal(now):
			style = today
		case d.Weekday() == time.Saturday || d.Weekday() == time.Sunday:
			style = weekend
		}
		s := strconv.Itoa(d.Day())
		if len(s) > dw {
			s = s[len(s)-dw:]
		}
		x := i*dw - off
		if style == today {
			for j := range dw {
				c.set(x+j, ' ', today)
			}
		}
		c.text(x+dw-len(s), s, style)
	}
	return c.render(styles)
}

func (m chartModel) renderBar(t gantt.Task, bar gantt.Bar) string {
	const (
		plain = iota
		now
		fill
	)
	styles := []lipgloss.Style{
		lipgloss.NewStyle(),
		nowLineStyle,
		lipgloss.NewStyle().Foreground(barColor(t.Category, m.colors)),
	}

	off := m.session.View().Offset()
	c := newCells(m.viewportWidth())
	done := gantt.ProgressWidth(bar, t.ClampedProgress())
	for x := bar.Left; x < bar.Right(); x++ {
		r := '░'
		if x-bar.Left < done {
			r = '█'
		}
		c.set(x-off, r, fill)
	}
	if mx, ok := m.session.TodayMarker(); ok {
		c.set(mx-off, '│', now)
	}
	return c.render(styles)
}

func (m chartModel) renderInfo() string {
	tl := m.session.Timeline()
	days := tl.Days()
	first, last := m.session.VisibleDays()
	var visible string
	if last > first {
		visible = fmt.Sprintf("%s – %s", days[first].Format("Jan 2"), days[last-1].Format("Jan 2 2006"))
	}
	parts := []string{
		visible,
		fmt.Sprintf("%d tasks", m.session.Chart().Len()),
	}
	if n := len(m.session.Chart().Warnings()); n > 0 {
		parts = append(parts, warningStyle.Render(fmt.Sprintf("%d warnings", n)))
	}
	if m.session.Drag().State() == gantt.Dragging {
		parts = append(parts, highlightStyle.Render("dragging"))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}
