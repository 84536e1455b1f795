package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/sadopc/ganttr/internal/config"
	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/export"
	"github.com/sadopc/ganttr/internal/gantt"
	"github.com/sadopc/ganttr/internal/source"
	"github.com/sadopc/ganttr/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock() time.Time {
	return time.Date(2023, time.March, 15, 9, 30, 0, 0, time.UTC)
}

func launchTasks() []gantt.Task {
	return []gantt.Task{
		{ID: "1", Name: "Launch", Start: date.New(2023, time.January, 1), End: date.New(2023, time.June, 30), Progress: 50, Category: "development"},
		{ID: "2", Name: "Docs", Start: date.New(2023, time.March, 1), End: date.New(2023, time.March, 20), Category: "marketing"},
	}
}

// newTestChart returns a 100x20 chart: a 16-column sidebar, a separator and
// an 83-column viewport with 3 columns per day.
func newTestChart(t *testing.T, cfg *config.Config, tasks []gantt.Task) chartModel {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	m := newChartModel(cfg)
	m.clock = fixedClock
	m.setSize(100, 20)
	m.setTasks(tasks, map[string]string{"development": "#2EC4B6"})
	if m.session == nil {
		t.Fatalf("no session: %v", m.err)
	}
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// Chart layout
// ============================================================

func TestChartLayout(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())

	if got := m.sidebarColumns(); got != 16 {
		t.Fatalf("sidebar = %d columns, want 16", got)
	}
	if m.viewportX() != 17 || m.viewportWidth() != 83 {
		t.Fatalf("viewport at %d, %d wide", m.viewportX(), m.viewportWidth())
	}
	if dw := m.session.Timeline().DayWidth(); dw != 3 {
		t.Fatalf("day width = %d columns, want 3", dw)
	}
	if m.visibleRows() != 17 {
		t.Fatalf("visible rows = %d, want 17", m.visibleRows())
	}
}

func TestChartOpensOnToday(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())

	tl := m.session.Timeline()
	today := date.New(2023, time.March, 15)
	want := tl.Offset(today) + tl.DayWidth()/2 - m.viewportWidth()/2
	if got := m.session.View().Offset(); got != want {
		t.Fatalf("offset = %d, want %d", got, want)
	}
}

func TestChartOpensAtStartWhenTodayOutside(t *testing.T) {
	tasks := []gantt.Task{{ID: "1", Name: "Old", Start: date.New(2001, time.May, 1), End: date.New(2001, time.December, 1)}}
	m := newTestChart(t, nil, tasks)
	if m.session.View().Offset() != 0 {
		t.Fatalf("offset = %d, want 0", m.session.View().Offset())
	}
}

func TestChartEmpty(t *testing.T) {
	m := newChartModel(config.Default())
	m.setSize(100, 20)
	m.setTasks(nil, nil)

	if m.session != nil || m.err != nil {
		t.Fatal("empty task list should show the empty state, not an error")
	}
	if !strings.Contains(m.view(), "No tasks") {
		t.Fatal("missing empty-state message")
	}
}

// ============================================================
// Chart mouse gestures
// ============================================================

func TestChartDragScrolls(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	start := m.session.View().Offset()
	x0 := m.viewportX()

	m, _ = m.update(press(x0+50, 4))
	if m.session.Drag().State() != gantt.Dragging {
		t.Fatal("press in the viewport should start a drag")
	}
	m, _ = m.update(motion(x0+20, 4))
	if got := m.session.View().Offset(); got != start+30 {
		t.Fatalf("offset = %d, want %d", got, start+30)
	}
	m, _ = m.update(motion(x0+60, 4))
	if got := m.session.View().Offset(); got != start-10 {
		t.Fatalf("offset = %d, want %d", got, start-10)
	}

	m, _ = m.update(release(x0+60, 4))
	if m.session.Drag().State() != gantt.Idle {
		t.Fatal("release should end the drag")
	}
	if m.status != "" {
		t.Fatalf("a drag is not a click, got status %q", m.status)
	}
}

func TestChartClickSelectsDate(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	x := m.viewportX() + 10

	want, ok := m.session.DateAt(10)
	if !ok {
		t.Fatal("no date under the pointer")
	}
	m, _ = m.update(press(x, 3))
	m, _ = m.update(release(x, 3))

	if !strings.Contains(m.status, want.Format("Jan 2 2006")) {
		t.Fatalf("status = %q, want the clicked date %s", m.status, want)
	}
}

func TestChartPressInSidebarIgnored(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	m, _ = m.update(press(3, 4))
	if m.session.Drag().State() != gantt.Idle {
		t.Fatal("press in the sidebar should not start a drag")
	}
}

func TestChartLeavingViewportEndsDrag(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	x0 := m.viewportX()
	start := m.session.View().Offset()

	m, _ = m.update(press(x0+40, 4))
	m, _ = m.update(motion(2, 4))
	if m.session.Drag().State() != gantt.Idle {
		t.Fatal("moving into the sidebar should end the drag")
	}
	// Further motion no longer scrolls
	m, _ = m.update(motion(x0+10, 4))
	if m.session.View().Offset() != start {
		t.Fatalf("offset changed after leave: %d", m.session.View().Offset())
	}
}

func TestChartBlurEndsDrag(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	m, _ = m.update(press(m.viewportX()+5, 4))
	m, _ = m.update(tea.BlurMsg{})
	if m.session.Drag().State() != gantt.Idle {
		t.Fatal("losing focus should end the drag")
	}
}

func TestChartDragExtendsTimeline(t *testing.T) {
	cfg := config.Default()
	cfg.Drag.Infinite = true
	m := newTestChart(t, cfg, launchTasks())
	m.session.View().SetOffset(m.session.View().MaxOffset())
	days := m.session.Timeline().Len()
	x0 := m.viewportX()

	m, _ = m.update(press(x0+40, 4))
	m, _ = m.update(motion(x0+30, 4))

	if got := m.session.Timeline().Len(); got != days+cfg.Drag.ExtendDays {
		t.Fatalf("timeline has %d days, want %d", got, days+cfg.Drag.ExtendDays)
	}
}

func TestChartWheelScrollsRows(t *testing.T) {
	var tasks []gantt.Task
	for i := range 30 {
		start := date.New(2023, time.March, 1+i)
		tasks = append(tasks, gantt.Task{ID: string(rune('a' + i)), Name: "Row", Start: start, End: start.AddDays(3)})
	}
	m := newTestChart(t, nil, tasks)

	m, _ = m.update(tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.rowOffset != 1 {
		t.Fatalf("rowOffset = %d, want 1", m.rowOffset)
	}
	for range 3 {
		m, _ = m.update(tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	}
	if m.rowOffset != 0 {
		t.Fatalf("rowOffset = %d, want 0", m.rowOffset)
	}
	for range 50 {
		m, _ = m.update(keyPress("j"))
	}
	if m.rowOffset != 30-m.visibleRows() {
		t.Fatalf("rowOffset = %d, want %d", m.rowOffset, 30-m.visibleRows())
	}
}

// ============================================================
// Chart keys
// ============================================================

func TestChartKeysScroll(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	start := m.session.View().Offset()

	m, _ = m.update(keyPress("right"))
	if got := m.session.View().Offset(); got != start+3 {
		t.Fatalf("right: offset = %d, want %d", got, start+3)
	}
	m, _ = m.update(keyPress("H"))
	if got := m.session.View().Offset(); got != start+3-83 {
		t.Fatalf("page left: offset = %d, want %d", got, start+3-83)
	}
	m, _ = m.update(keyPress("t"))
	if got := m.session.View().Offset(); got != start {
		t.Fatalf("today: offset = %d, want %d", got, start)
	}
}

func TestChartTodayOutsideTimeline(t *testing.T) {
	tasks := []gantt.Task{{ID: "1", Name: "Old", Start: date.New(2001, time.May, 1), End: date.New(2001, time.December, 1)}}
	m := newTestChart(t, nil, tasks)
	m, _ = m.update(keyPress("t"))
	if !strings.Contains(m.status, "outside") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestChartSidebarKeys(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())

	m, _ = m.update(keyPress("]"))
	if m.session.Sidebar.Width != "18vw" {
		t.Fatalf("sidebar width = %q, want 18vw", m.session.Sidebar.Width)
	}
	if m.viewportX() != 19 || m.session.View().ClientWidth() != 81 {
		t.Fatalf("viewport at %d, %d wide", m.viewportX(), m.session.View().ClientWidth())
	}

	m, _ = m.update(keyPress("["))
	m, _ = m.update(keyPress("["))
	if m.session.Sidebar.Width != "14vw" {
		t.Fatalf("sidebar width = %q, want 14vw", m.session.Sidebar.Width)
	}

	m, _ = m.update(keyPress("0"))
	if m.viewportX() != 0 || m.session.View().ClientWidth() != 100 {
		t.Fatal("hidden sidebar should give the viewport the full width")
	}
	m, _ = m.update(keyPress("0"))
	if m.sidebarColumns() != 14 {
		t.Fatalf("sidebar = %d columns after toggling back, want 14", m.sidebarColumns())
	}
}

func TestChartSidebarFromPixels(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.SidebarWidth = config.MustLength("200px")
	m := newTestChart(t, cfg, launchTasks())

	m, _ = m.update(keyPress("]"))
	if m.session.Sidebar.Width != "22vw" {
		t.Fatalf("sidebar width = %q, want 22vw", m.session.Sidebar.Width)
	}
}

func TestChartSidebarWidthSurvivesReload(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	m, _ = m.update(keyPress("]"))
	m.setTasks(launchTasks(), nil)
	if m.session.Sidebar.Width != "18vw" {
		t.Fatalf("sidebar width = %q after reload", m.session.Sidebar.Width)
	}
}

// ============================================================
// Chart reload and resize
// ============================================================

func TestChartReloadKeepsLeftmostDate(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	m, _ = m.update(keyPress("right"))
	keep, _ := m.session.Timeline().DayAt(m.session.View().Offset())

	tasks := append(launchTasks(), gantt.Task{
		ID: "3", Name: "Kickoff", Start: date.New(2022, time.December, 1), End: date.New(2022, time.December, 5),
	})
	m.setTasks(tasks, nil)

	got, _ := m.session.Timeline().DayAt(m.session.View().Offset())
	if !got.Equal(keep) {
		t.Fatalf("leftmost date = %s, want %s", got, keep)
	}
	if m.session.Chart().Len() != 3 {
		t.Fatalf("chart has %d tasks", m.session.Chart().Len())
	}
}

func TestChartResizeKeepsSession(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	s := m.session
	m.setSize(150, 30)
	if m.session != s {
		t.Fatal("resize should not rebuild the session")
	}
	if m.session.View().ClientWidth() != m.viewportWidth() {
		t.Fatalf("client width %d, want %d", m.session.View().ClientWidth(), m.viewportWidth())
	}
}

func TestChartSetConfigRebuilds(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	cfg := config.Default()
	cfg.Chart.DayWidth = config.MustLength("20px")
	m.setConfig(cfg)
	if dw := m.session.Timeline().DayWidth(); dw != 2 {
		t.Fatalf("day width = %d, want 2", dw)
	}
}

// ============================================================
// Chart rendering
// ============================================================

func TestChartViewRenders(t *testing.T) {
	m := newTestChart(t, nil, launchTasks())
	out := m.view()
	plain := ansi.Strip(out)

	for _, want := range []string{"Tasks", "March", "Launch", "Docs", "█", "░", "15"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q", want)
		}
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("view has %d lines, want 20", len(lines))
	}
	for i := range 4 {
		if w := lipgloss.Width(lines[i]); w != 100 {
			t.Errorf("line %d is %d wide, want 100", i, w)
		}
	}
}

func TestChartViewShowsWarnings(t *testing.T) {
	tasks := launchTasks()
	tasks[1].Progress = 140
	m := newTestChart(t, nil, tasks)
	if !strings.Contains(ansi.Strip(m.view()), "1 warnings") {
		t.Fatal("info line should count data warnings")
	}
}

func TestCellsRender(t *testing.T) {
	c := newCells(6)
	c.text(1, "ab", 1)
	c.set(5, 'x', 0)
	c.set(9, 'y', 1) // clipped

	out := c.render([]lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle().Bold(true)})
	if got := ansi.Strip(out); got != " ab  x" {
		t.Fatalf("render = %q", got)
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestTasksFormTask(t *testing.T) {
	m := newTasksModel(newTestStore(t))
	*m.formName = "  Build  "
	*m.formStart = "2023-03-01"
	*m.formEnd = "2023-03-10"
	*m.formProgress = "40"
	*m.formCategory = "development"
	m.editingID = "7"

	task, err := m.formTask()
	if err != nil {
		t.Fatal(err)
	}
	want := gantt.Task{ID: "7", Name: "Build", Start: date.New(2023, time.March, 1), End: date.New(2023, time.March, 10), Progress: 40, Category: "development"}
	if task != want {
		t.Fatalf("task = %+v, want %+v", task, want)
	}

	*m.formEnd = "2023-02-01"
	if _, err := m.formTask(); err == nil {
		t.Fatal("end before start should be rejected")
	}
}

func TestTaskValidators(t *testing.T) {
	if validateName("  ") == nil {
		t.Error("blank name accepted")
	}
	if validateDate("2023-13-01") == nil {
		t.Error("bad date accepted")
	}
	if validateDate("2023-12-01") != nil {
		t.Error("good date rejected")
	}
	for _, p := range []string{"-1", "101", "x"} {
		if validateProgress(p) == nil {
			t.Errorf("progress %q accepted", p)
		}
	}
	if validateProgress("100") != nil {
		t.Error("progress 100 rejected")
	}
}

func TestTasksReadOnlySource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yml")
	os.WriteFile(path, []byte("- {id: \"1\", name: One, start: 2023-01-01, end: 2023-01-05}\n"), 0o600)

	m := newTasksModel(source.File{Path: path})
	m, cmd := m.update(keyPress("n"))
	if m.formActive {
		t.Fatal("form should not open on a read-only source")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isError {
		t.Fatalf("expected an error status, got %#v", msg)
	}
}

func TestTasksDelete(t *testing.T) {
	s := newTestStore(t)
	s.Seed()
	tasks, _ := s.ListTasks()

	m := newTasksModel(s)
	m.setTasks(tasks, nil)
	m, _ = m.update(keyPress("j"))
	_, cmd := m.update(keyPress("d"))

	msg, ok := cmd().(taskDeletedMsg)
	if !ok || msg.id != tasks[1].ID {
		t.Fatalf("unexpected message %#v", msg)
	}
	left, _ := s.ListTasks()
	if len(left) != len(tasks)-1 {
		t.Fatalf("%d tasks left, want %d", len(left), len(tasks)-1)
	}
}

func TestTasksEnterFocusesChart(t *testing.T) {
	m := newTasksModel(newTestStore(t))
	m.setTasks(launchTasks(), nil)
	m, _ = m.update(keyPress("j"))
	_, cmd := m.update(keyPress("enter"))

	msg, ok := cmd().(focusDateMsg)
	if !ok || !msg.date.Equal(date.New(2023, time.March, 1)) {
		t.Fatalf("unexpected message %#v", msg)
	}
}

// ============================================================
// Summary view
// ============================================================

func TestSummarize(t *testing.T) {
	tasks := launchTasks()
	tasks = append(tasks, gantt.Task{ID: "3", Name: "More", Start: date.New(2023, time.April, 1), End: date.New(2023, time.April, 11), Progress: 150, Category: "development"})

	sums := summarize(tasks, map[string]string{"development": "#111111"})
	if len(sums) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(sums))
	}
	dev := sums[0]
	if dev.Category != "development" || dev.TaskCount != 2 || dev.Color != "#111111" {
		t.Fatalf("development = %+v", dev)
	}
	if dev.AvgProgress != 75 {
		t.Fatalf("avg progress = %v, want 75", dev.AvgProgress)
	}
	if dev.TotalDays != 180+10 {
		t.Fatalf("total days = %d, want 190", dev.TotalDays)
	}
}

func TestSummaryRefreshFromStore(t *testing.T) {
	s := newTestStore(t)
	s.Seed()
	m := newSummaryModel(s)
	m.setSize(120, 40)

	m, _ = m.update(m.refresh()())
	if m.err != nil {
		t.Fatal(m.err)
	}
	if len(m.summaries) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(m.summaries))
	}
	if !strings.Contains(ansi.Strip(m.view()), "research") {
		t.Fatal("view missing category")
	}
}

func TestSummaryToggleMetric(t *testing.T) {
	m := newSummaryModel(newTestStore(t))
	m, _ = m.update(keyPress("right"))
	if m.metric != metricDays {
		t.Fatal("right should switch to days")
	}
	m, _ = m.update(keyPress("left"))
	if m.metric != metricProgress {
		t.Fatal("left should switch back to progress")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSettingsFormConfig(t *testing.T) {
	cfg := config.Default()
	m := newSettingsModel(cfg, "")
	m, _ = m.showForm()

	*m.dayWidth = "2rem"
	*m.sidebarWidth = "240px"
	*m.leadDays = "7"
	*m.infinite = true
	got, err := m.formConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got.Chart.DayWidth.String() != "2rem" || got.Chart.SidebarWidth.String() != "240px" ||
		got.Chart.LeadDays != 7 || !got.Drag.Infinite {
		t.Fatalf("config = %+v", got)
	}
	if cfg.Chart.LeadDays != config.DefaultLeadDays {
		t.Fatal("formConfig should not modify the current config")
	}

	*m.dayWidth = "10vw"
	if _, err := m.formConfig(); err == nil {
		t.Fatal("viewport-relative day width should be rejected")
	}
}

func TestSettingsValidators(t *testing.T) {
	if validateLength("3em") == nil {
		t.Error("unknown unit accepted")
	}
	if validateLength("16vw") != nil {
		t.Error("16vw rejected")
	}
	if validateCount(1)("0") == nil {
		t.Error("0 accepted with minimum 1")
	}
	if validateCount(0)("0") != nil {
		t.Error("0 rejected with minimum 0")
	}
}

// ============================================================
// App model
// ============================================================

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

func newTestApp(t *testing.T) App {
	t.Helper()
	s := newTestStore(t)
	if _, err := s.Seed(); err != nil {
		t.Fatal(err)
	}
	a := NewApp(s, config.Default(), "")
	a = update(t, a, a.loadTasks()())
	return update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestNewApp(t *testing.T) {
	app := NewApp(newTestStore(t), config.Default(), "")

	if app.activeView != viewChart {
		t.Fatal("default view should be the chart")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	app := NewApp(newTestStore(t), config.Default(), "")
	// Width 0 means not yet sized
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppShowsTasks(t *testing.T) {
	a := newTestApp(t)
	if a.chart.session == nil || a.chart.session.Chart().Len() != 12 {
		t.Fatal("chart should hold the seeded tasks")
	}
	out := ansi.Strip(a.View())
	if !strings.Contains(out, "Onboarding") || !strings.Contains(out, "ganttr") {
		t.Fatal("view missing title or tasks")
	}
	if lipgloss.Height(a.View()) != 40 {
		t.Fatalf("view is %d lines, want 40", lipgloss.Height(a.View()))
	}
}

func TestAppViewStates(t *testing.T) {
	a := newTestApp(t)
	for i, name := range viewNames {
		a = update(t, a, keyPress(string(rune('1'+i))))
		if a.activeView != viewState(i) {
			t.Fatalf("key %d: active view = %d", i+1, a.activeView)
		}
		if a.View() == "" {
			t.Fatalf("view %s rendered empty", name)
		}
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeView != viewChart {
		t.Fatal("tab should wrap around to the chart")
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	a := newTestApp(t)
	header := a.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppMouseOffsetByHeader(t *testing.T) {
	a := newTestApp(t)
	top := lipgloss.Height(a.renderHeader())
	x := a.chart.viewportX() + 10

	a = update(t, a, press(x, top+3))
	if a.chart.session.Drag().State() != gantt.Dragging {
		t.Fatal("press over the chart should start a drag")
	}
	a = update(t, a, release(x, top+3))
	if !strings.Contains(a.chart.status, "Selected") {
		t.Fatalf("click should select a date, status %q", a.chart.status)
	}
}

func TestAppMouseIgnoredOutsideChart(t *testing.T) {
	a := newTestApp(t)
	a = update(t, a, keyPress("2"))
	a = update(t, a, press(a.chart.viewportX()+10, 10))
	if a.chart.session.Drag().State() != gantt.Idle {
		t.Fatal("mouse should only drive the chart when it is visible")
	}
}

func TestAppFocusDate(t *testing.T) {
	a := newTestApp(t)
	a = update(t, a, keyPress("2"))
	a = update(t, a, focusDateMsg{date: date.New(2023, time.June, 1)})

	if a.activeView != viewChart {
		t.Fatal("focusing a date should switch to the chart")
	}
	first, last := a.chart.session.VisibleDays()
	days := a.chart.session.Timeline().Days()
	if d := date.New(2023, time.June, 1); d.Before(days[first]) || !d.Before(days[last-1].AddDays(1)) {
		t.Fatalf("June 1 not visible: %s..%s", days[first], days[last-1])
	}
}

func TestAppReload(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(ReloadMsg{})
	if cmd == nil {
		t.Fatal("reload should return a load command")
	}
	msg, ok := cmd().(tasksLoadedMsg)
	if !ok || len(msg.tasks) != 12 || msg.colors["design"] == "" {
		t.Fatalf("unexpected reload result %#v", msg)
	}
}

func TestAppLoadError(t *testing.T) {
	a := NewApp(source.File{Path: filepath.Join(t.TempDir(), "missing.yml")}, config.Default(), "")
	a = update(t, a, a.loadTasks()())
	if !a.statusErr || !strings.Contains(a.status, "Load error") {
		t.Fatalf("status = %q", a.status)
	}
}

func TestAppConfigChanged(t *testing.T) {
	a := newTestApp(t)
	cfg := config.Default()
	cfg.Chart.DayWidth = config.MustLength("40px")
	a = update(t, a, configChangedMsg{cfg: cfg})
	if dw := a.chart.session.Timeline().DayWidth(); dw != 4 {
		t.Fatalf("day width = %d, want 4", dw)
	}
}

func TestAppStatusMessage(t *testing.T) {
	a := newTestApp(t)
	a = update(t, a, statusMsg{text: "test status"})
	if !strings.Contains(a.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPicker(t *testing.T) {
	a := newTestApp(t)
	a = update(t, a, keyPress("x"))
	if !a.exportPicking {
		t.Fatal("x should open the export picker")
	}
	out := ansi.Strip(a.View())
	for _, f := range export.Formats {
		if !strings.Contains(out, strings.ToUpper(string(f))) {
			t.Errorf("picker missing %s", f)
		}
	}
	a = update(t, a, keyPress("esc"))
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppExport(t *testing.T) {
	a := newTestApp(t)
	a.exportDir = t.TempDir()

	for _, f := range export.Formats {
		msg, ok := a.doExport(f)().(exportDoneMsg)
		if !ok {
			t.Fatalf("%s: export failed", f)
		}
		if filepath.Ext(msg.path) != "."+string(f) {
			t.Fatalf("%s: path %q", f, msg.path)
		}
		if _, err := os.Stat(msg.path); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"activeTab":   activeTabStyle,
		"inactiveTab": inactiveTabStyle,
		"panel":       panelStyle,
		"activePanel": activePanelStyle,
		"month":       monthStyle,
		"monthAlt":    monthAltStyle,
		"tick":        tickStyle,
		"weekend":     weekendTickStyle,
		"today":       todayTickStyle,
		"nowLine":     nowLineStyle,
		"title":       titleStyle,
		"muted":       mutedStyle,
		"footer":      footerStyle,
	}
	for name, s := range styles {
		if s.Render("test") == "" {
			t.Fatalf("style %q rendered empty", name)
		}
	}
}

func TestApplyColorProfileNoColor(t *testing.T) {
	defer lipgloss.SetColorProfile(lipgloss.ColorProfile())
	ApplyColorProfile(true)
	if lipgloss.ColorProfile() != termenv.Ascii {
		t.Fatal("no-color should select the ASCII profile")
	}
	if out := mutedStyle.Render("plain"); out != "plain" {
		t.Fatalf("ASCII profile should render without escapes, got %q", out)
	}
}

func TestBarColor(t *testing.T) {
	colors := map[string]string{"design": "#123456", "blank": ""}
	if barColor("design", colors) != lipgloss.Color("#123456") {
		t.Error("category colour not used")
	}
	if barColor("blank", colors) != colorPrimary || barColor("nope", nil) != colorPrimary {
		t.Error("missing colour should fall back to the primary colour")
	}
}
