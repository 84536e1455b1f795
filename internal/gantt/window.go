// Package gantt computes the layout of a Gantt chart: the visible date
// window, the month/day grid, bar positions and the drag-to-scroll
// interaction. It has no rendering code; the tui and export packages draw
// what it computes.
package gantt

import (
	"errors"

	"github.com/sadopc/ganttr/internal/date"
)

// ErrEmptyInput is returned when a date window is requested for no tasks.
var ErrEmptyInput = errors.New("gantt: no tasks to lay out")

// Window is the inclusive span of days shown by the chart. Start is the
// anchor date: every offset is measured from it.
type Window struct {
	Start date.Date
	End   date.Date
}

// Days returns the number of days in the window, counting both ends. A
// degenerate window (Start after End) has zero days.
func (w Window) Days() int {
	n := w.Start.DaysUntil(w.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d date.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// ComputeRange returns the window spanning every task: the earliest start
// minus leadDays through the latest end plus trailDays. Negative margins
// count as zero. The result depends only on the tasks, never on today.
func ComputeRange(tasks []Task, leadDays, trailDays int) (Window, error) {
	if len(tasks) == 0 {
		return Window{}, ErrEmptyInput
	}

	earliest := tasks[0].Start
	latest := tasks[0].End
	for _, t := range tasks {
		earliest = date.Min(earliest, t.Start)
		// A malformed task can end before it starts; its start must still
		// be inside the window.
		latest = date.Max(latest, date.Max(t.Start, t.End))
	}

	return Window{
		Start: earliest.AddDays(-max(leadDays, 0)),
		End:   latest.AddDays(max(trailDays, 0)),
	}, nil
}
