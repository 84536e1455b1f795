package gantt

import (
	"fmt"
	"slices"
	"time"

	"github.com/sadopc/ganttr/internal/date"
)

// Default layout options.
const (
	DefaultDayWidth     = 30
	DefaultLeadDays     = 3
	DefaultTrailDays    = 0
	DefaultSidebarWidth = "16vw"
)

// Options configures a chart. They are read-only once the chart is built.
type Options struct {
	DayWidth  int
	LeadDays  int
	TrailDays int
	Extension Extension

	// OnDateClick is called with the day under a click on the timeline.
	OnDateClick func(date.Date)
	// Now is the clock used to find today. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns a 30-unit day width, three lead days and no edge
// extension.
func DefaultOptions() Options {
	return Options{
		DayWidth:  DefaultDayWidth,
		LeadDays:  DefaultLeadDays,
		TrailDays: DefaultTrailDays,
		Extension: DefaultExtension(),
	}
}

// Chart is the shared, read-only context of one render: the tasks, the
// options and the date window computed from them.
type Chart struct {
	tasks    []Task
	opts     Options
	window   Window
	warnings []Warning
}

// NewChart snapshots tasks and computes the window. It fails with
// ErrEmptyInput when there are no tasks, and with ErrMissingDate when a task
// has no start or end date.
func NewChart(tasks []Task, opts Options) (*Chart, error) {
	if opts.DayWidth <= 0 {
		return nil, fmt.Errorf("gantt: day width must be positive, got %d", opts.DayWidth)
	}
	if err := CheckDates(tasks); err != nil {
		return nil, err
	}
	w, err := ComputeRange(tasks, opts.LeadDays, opts.TrailDays)
	if err != nil {
		return nil, err
	}
	return &Chart{
		tasks:    slices.Clone(tasks),
		opts:     opts,
		window:   w,
		warnings: Validate(tasks),
	}, nil
}

// Tasks returns a copy of the chart's tasks.
func (c *Chart) Tasks() []Task { return slices.Clone(c.tasks) }

// Len returns the number of tasks.
func (c *Chart) Len() int { return len(c.tasks) }

// Task returns the i-th task.
func (c *Chart) Task(i int) Task { return c.tasks[i] }

// Start returns the computed anchor date of the chart.
func (c *Chart) Start() date.Date { return c.window.Start }

// Window returns the computed date window.
func (c *Chart) Window() Window { return c.window }

// Options returns the options the chart was built with.
func (c *Chart) Options() Options { return c.opts }

// DayWidth returns the width of one day.
func (c *Chart) DayWidth() int { return c.opts.DayWidth }

// Warnings returns the data-contract problems found in the tasks.
func (c *Chart) Warnings() []Warning { return c.warnings }

// Today returns the current date according to the chart's clock.
func (c *Chart) Today() date.Date { return date.Today(c.opts.Now) }

// SidebarState is the user-adjustable sidebar width, as a CSS length.
type SidebarState struct {
	Width string
}

// Session is the mutable state of one chart on screen: the sidebar width,
// the (possibly extended) timeline, the scroll view and the drag
// controller.
type Session struct {
	Sidebar SidebarState

	chart    *Chart
	timeline *Timeline
	view     *ScrollView
	frames   FrameQueue
	drag     *DragController
}

// NewSession starts a session over chart with a viewport clientWidth units
// wide.
func NewSession(chart *Chart, clientWidth int, sidebarWidth string) *Session {
	if sidebarWidth == "" {
		sidebarWidth = DefaultSidebarWidth
	}
	s := &Session{
		Sidebar:  SidebarState{Width: sidebarWidth},
		chart:    chart,
		timeline: NewTimeline(chart.Window(), chart.DayWidth()),
	}
	s.view = NewScrollView(clientWidth, s.timeline.Width())
	s.drag = NewDragController(s.timeline, s.view, &s.frames, chart.Options().Extension)
	return s
}

// Chart returns the read-only chart context.
func (s *Session) Chart() *Chart { return s.chart }

// Timeline returns the session's timeline.
func (s *Session) Timeline() *Timeline { return s.timeline }

// View returns the scroll view.
func (s *Session) View() *ScrollView { return s.view }

// Drag returns the drag controller.
func (s *Session) Drag() *DragController { return s.drag }

// Resize changes the viewport width.
func (s *Session) Resize(clientWidth int) {
	s.view.Resize(clientWidth)
	s.frame()
}

// frame lays the content out and then runs next-frame work, in that order.
func (s *Session) frame() {
	s.view.Reflow(s.timeline.Width())
	s.frames.Flush()
}

// Handle feeds one gesture through the drag controller and completes the
// frame, so that by the time it returns the view is ready to draw.
func (s *Session) Handle(g Gesture) Outcome {
	out := s.drag.Handle(g)
	s.frame()
	return out
}

// ScrollBy scrolls by dx units, extending the timeline at its edges when
// extension is enabled.
func (s *Session) ScrollBy(dx int) Outcome {
	before := s.view.Offset()
	s.view.ScrollBy(dx)
	out := s.drag.CheckEdges(0)
	s.frame()
	out.Scrolled = s.view.Offset() != before
	return out
}

// ScrollToDate scrolls so that d is centred in the viewport, as far as the
// content allows. It reports false when d is not on the timeline.
func (s *Session) ScrollToDate(d date.Date) bool {
	if !s.timeline.Window().Contains(d) {
		return false
	}
	dw := s.timeline.DayWidth()
	s.view.SetOffset(s.timeline.Offset(d) + dw/2 - s.view.ClientWidth()/2)
	s.frame()
	return true
}

// ScrollToToday centres today, if today is on the timeline.
func (s *Session) ScrollToToday() bool {
	return s.ScrollToDate(s.chart.Today())
}

// DateAt returns the day under viewport coordinate x.
func (s *Session) DateAt(x int) (date.Date, bool) {
	if x < 0 || x >= s.view.ClientWidth() {
		return date.Date{}, false
	}
	return s.timeline.DayAt(s.view.Offset() + x)
}

// Click resolves viewport coordinate x to a day and reports it to the
// chart's OnDateClick callback.
func (s *Session) Click(x int) (date.Date, bool) {
	d, ok := s.DateAt(x)
	if !ok {
		return date.Date{}, false
	}
	if fn := s.chart.Options().OnDateClick; fn != nil {
		fn(d)
	}
	return d, true
}

// Bars returns the placement of every task, in chart order, relative to the
// current anchor.
func (s *Session) Bars() []Bar {
	bars := make([]Bar, s.chart.Len())
	for i := range bars {
		bars[i] = s.timeline.Bar(s.chart.Task(i))
	}
	return bars
}

// TodayMarker returns the content x of the "now" line.
func (s *Session) TodayMarker() (int, bool) {
	return TodayMarker(s.timeline.Days(), s.chart.Today(), s.timeline.DayWidth())
}

// VisibleDays returns the index range [first, last) of days at least
// partly inside the viewport.
func (s *Session) VisibleDays() (first, last int) {
	dw := s.timeline.DayWidth()
	first = s.view.Offset() / dw
	last = min((s.view.Offset()+s.view.ClientWidth()+dw-1)/dw, s.timeline.Len())
	return first, max(first, last)
}
