package gantt

import "github.com/sadopc/ganttr/internal/date"

// MinBarDays is the width, in days, given to a task whose start equals its
// end. Zero-duration tasks are milestones and must stay visible.
const MinBarDays = 1

// Bar is the horizontal placement of a task relative to the anchor date.
type Bar struct {
	Left  int
	Width int
	// Clamped is set when the task ended before it started and its duration
	// was clamped to zero.
	Clamped bool
}

// Right returns the x coordinate just past the bar.
func (b Bar) Right() int { return b.Left + b.Width }

// DateToOffset returns the x offset of d measured from anchor. Dates before
// the anchor have negative offsets.
func DateToOffset(d, anchor date.Date, dayWidth int) int {
	return anchor.DaysUntil(d) * dayWidth
}

// TaskToBar places a task relative to anchor.
func TaskToBar(t Task, anchor date.Date, dayWidth int) Bar {
	days := t.Duration()
	if days < MinBarDays {
		days = MinBarDays
	}
	return Bar{
		Left:    DateToOffset(t.Start, anchor, dayWidth),
		Width:   days * dayWidth,
		Clamped: t.End.Before(t.Start),
	}
}

// ProgressWidth returns how much of the bar is filled for a progress
// percentage. Out-of-range percentages are clamped.
func ProgressWidth(b Bar, progress int) int {
	progress = min(max(progress, 0), 100)
	return b.Width * progress / 100
}

// FindTodayIndex returns the index of today in days, or -1 when today is
// not in the sequence.
func FindTodayIndex(days []date.Date, today date.Date) int {
	for i, d := range days {
		if d.Year() == today.Year() && d.Month() == today.Month() && d.Day() == today.Day() {
			return i
		}
	}
	return -1
}

// TodayMarker returns the x position of the "now" line: the middle of
// today's column. ok is false when today is outside days and no marker
// should be drawn.
func TodayMarker(days []date.Date, today date.Date, dayWidth int) (x int, ok bool) {
	i := FindTodayIndex(days, today)
	if i < 0 {
		return 0, false
	}
	return i*dayWidth + dayWidth/2, true
}
