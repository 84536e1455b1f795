package gantt

import "github.com/sadopc/ganttr/internal/date"

// Timeline is a resizable date window with every day materialized. Days can
// be added at either end; a timeline nothing extends is the fixed-range
// chart.
type Timeline struct {
	window   Window
	dayWidth int
	days     []date.Date
	grid     []MonthBucket
}

// NewTimeline materializes the days of w.
func NewTimeline(w Window, dayWidth int) *Timeline {
	t := &Timeline{window: w, dayWidth: dayWidth}
	t.rebuild()
	return t
}

func (t *Timeline) rebuild() {
	t.days = EnumerateDays(t.window)
	t.grid = groupByMonth(t.days, t.dayWidth)
}

// Window returns the current span.
func (t *Timeline) Window() Window { return t.window }

// Anchor returns the leftmost date; x offsets are measured from it.
func (t *Timeline) Anchor() date.Date { return t.window.Start }

// DayWidth returns the width of one day in layout units.
func (t *Timeline) DayWidth() int { return t.dayWidth }

// Days returns the days of the window in ascending order. The slice is
// shared; callers must not modify it.
func (t *Timeline) Days() []date.Date { return t.days }

// Len returns the number of days.
func (t *Timeline) Len() int { return len(t.days) }

// Width returns the content width of the whole timeline.
func (t *Timeline) Width() int { return len(t.days) * t.dayWidth }

// Grid returns the month buckets of the current window.
func (t *Timeline) Grid() []MonthBucket { return t.grid }

// Append adds n days after the current end.
func (t *Timeline) Append(n int) {
	if n <= 0 {
		return
	}
	t.window.End = t.window.End.AddDays(n)
	t.rebuild()
}

// Prepend adds n days before the current start. Every offset grows by
// n*DayWidth(); callers showing the timeline must shift their scroll
// position by the same amount.
func (t *Timeline) Prepend(n int) {
	if n <= 0 {
		return
	}
	t.window.Start = t.window.Start.AddDays(-n)
	t.rebuild()
}

// Offset returns the x offset of d.
func (t *Timeline) Offset(d date.Date) int {
	return DateToOffset(d, t.window.Start, t.dayWidth)
}

// Bar places task on the timeline.
func (t *Timeline) Bar(task Task) Bar {
	return TaskToBar(task, t.window.Start, t.dayWidth)
}

// DayAt returns the day under content coordinate x.
func (t *Timeline) DayAt(x int) (date.Date, bool) {
	if x < 0 || x >= t.Width() || t.dayWidth <= 0 {
		return date.Date{}, false
	}
	return t.days[x/t.dayWidth], true
}
