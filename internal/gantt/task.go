package gantt

import (
	"errors"
	"fmt"

	"github.com/sadopc/ganttr/internal/date"
)

// Task is one row of the chart. Tasks are owned by the caller and never
// modified by the chart.
type Task struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	Start    date.Date `yaml:"start" json:"start"`
	End      date.Date `yaml:"end" json:"end"`
	Progress int       `yaml:"progress,omitempty" json:"progress,omitempty"` // percent, 0-100
	Category string    `yaml:"category,omitempty" json:"category,omitempty"`
	Icon     string    `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// Duration returns the whole days from Start to End, clamped at zero for
// malformed tasks whose End is before Start.
func (t Task) Duration() int {
	n := t.Start.DaysUntil(t.End)
	if n < 0 {
		return 0
	}
	return n
}

// ClampedProgress returns Progress limited to 0-100.
func (t Task) ClampedProgress() int {
	switch {
	case t.Progress < 0:
		return 0
	case t.Progress > 100:
		return 100
	}
	return t.Progress
}

// ErrMissingDate is returned for a task without a start or end date.
var ErrMissingDate = errors.New("missing date")

// CheckDates returns an error naming the first task whose start or end date
// is unset.
func CheckDates(tasks []Task) error {
	for i, t := range tasks {
		var field string
		switch {
		case t.Start.IsZero():
			field = "start"
		case t.End.IsZero():
			field = "end"
		default:
			continue
		}
		name := t.ID
		if name == "" {
			name = t.Name
		}
		if name == "" {
			return fmt.Errorf("task #%d: %w: %s", i, ErrMissingDate, field)
		}
		return fmt.Errorf("task %q: %w: %s", name, ErrMissingDate, field)
	}
	return nil
}

// WarningKind classifies a data-contract violation found in a task.
type WarningKind int

const (
	WarnMissingID WarningKind = iota
	WarnDuplicateID
	WarnEndBeforeStart
	WarnProgressRange
	WarnMissingDate
)

// Warning describes a task that breaks the data contract but can still be
// rendered.
type Warning struct {
	Kind   WarningKind
	TaskID string
	Index  int
	Msg    string
}

func (w Warning) String() string {
	if w.TaskID == "" {
		return fmt.Sprintf("task #%d: %s", w.Index, w.Msg)
	}
	return fmt.Sprintf("task %q: %s", w.TaskID, w.Msg)
}

// Validate checks every task and returns the problems found. It never fails:
// a malformed task is rendered with its duration clamped to zero.
func Validate(tasks []Task) []Warning {
	var warnings []Warning
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			warnings = append(warnings, Warning{Kind: WarnMissingID, Index: i, Msg: "missing id"})
		} else if seen[t.ID] {
			warnings = append(warnings, Warning{Kind: WarnDuplicateID, TaskID: t.ID, Index: i, Msg: "duplicate id"})
		}
		seen[t.ID] = true

		if t.Start.IsZero() || t.End.IsZero() {
			warnings = append(warnings, Warning{Kind: WarnMissingDate, TaskID: t.ID, Index: i, Msg: "missing start or end date"})
		} else if t.End.Before(t.Start) {
			warnings = append(warnings, Warning{
				Kind:   WarnEndBeforeStart,
				TaskID: t.ID,
				Index:  i,
				Msg:    fmt.Sprintf("end %s is before start %s; duration clamped to zero", t.End, t.Start),
			})
		}
		if t.Progress < 0 || t.Progress > 100 {
			warnings = append(warnings, Warning{
				Kind:   WarnProgressRange,
				TaskID: t.ID,
				Index:  i,
				Msg:    fmt.Sprintf("progress %d outside 0-100", t.Progress),
			})
		}
	}
	return warnings
}
