package tui

import (
	"time"

	"github.com/sadopc/ganttr/internal/config"
	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/gantt"
	"github.com/sadopc/ganttr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewChart viewState = iota
	viewTasks
	viewSummary
	viewSettings
)

var viewNames = []string{"Chart", "Tasks", "Summary", "Settings"}

// TaskSource supplies the tasks shown in the chart.
type TaskSource interface {
	ListTasks() ([]gantt.Task, error)
}

// taskWriter is implemented by sources that can be edited from the UI.
type taskWriter interface {
	CreateTask(t gantt.Task) (gantt.Task, error)
	UpdateTask(t gantt.Task) error
	DeleteTask(id string) error
}

// colorSource is implemented by sources that keep category colours.
type colorSource interface {
	CategoryColors() (map[string]string, error)
}

// summarySource is implemented by sources that can aggregate by category.
type summarySource interface {
	GetCategorySummary() ([]store.CategorySummary, error)
}

// --- Messages ---

// ReloadMsg asks the app to reload its tasks, e.g. after the task file
// changed on disk.
type ReloadMsg struct{}

type tasksLoadedMsg struct {
	tasks  []gantt.Task
	colors map[string]string
	err    error
}

type taskSavedMsg struct {
	task gantt.Task
}

type taskDeletedMsg struct {
	id string
}

// focusDateMsg switches to the chart and scrolls to a date.
type focusDateMsg struct {
	date date.Date
}

type configChangedMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}
