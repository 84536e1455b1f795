package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/gantt"
)

var taskIcons = []string{"", "🎨", "📦", "📊", "📈", "📝", "🔒", "🌐", "⚡", "🔗", "🔍"}

// errReadOnly is reported when editing a source that cannot be written.
var errReadOnly = errors.New("task source is read-only")

type tasksModel struct {
	source TaskSource
	width  int
	height int

	tasks  []gantt.Task
	colors map[string]string
	cursor int

	formActive bool
	form       *huh.Form
	editingID  string // empty for a new task

	// Form field pointers (survive value copies)
	formName     *string
	formStart    *string
	formEnd      *string
	formProgress *string
	formCategory *string
	formIcon     *string
}

func newTasksModel(src TaskSource) tasksModel {
	name, start, end, progress, category, icon := "", "", "", "0", "", ""
	return tasksModel{
		source:       src,
		formName:     &name,
		formStart:    &start,
		formEnd:      &end,
		formProgress: &progress,
		formCategory: &category,
		formIcon:     &icon,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t *tasksModel) setTasks(tasks []gantt.Task, colors map[string]string) {
	t.tasks = tasks
	t.colors = colors
	if t.cursor >= len(t.tasks) {
		t.cursor = max(0, len(t.tasks)-1)
	}
}

func (t tasksModel) writer() (taskWriter, bool) {
	w, ok := t.source.(taskWriter)
	return w, ok
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return t.updateList(msg)
	}
	return t, nil
}

func (t tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		if t.cursor < len(t.tasks)-1 {
			t.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(t.tasks) > 0 {
			start := t.tasks[t.cursor].Start
			return t, func() tea.Msg { return focusDateMsg{date: start} }
		}
	case key.Matches(msg, keys.New):
		if _, ok := t.writer(); !ok {
			return t, statusCmd(errReadOnly.Error(), true)
		}
		return t.showForm(nil)
	case key.Matches(msg, keys.Edit):
		if _, ok := t.writer(); !ok {
			return t, statusCmd(errReadOnly.Error(), true)
		}
		if len(t.tasks) > 0 {
			task := t.tasks[t.cursor]
			return t.showForm(&task)
		}
	case key.Matches(msg, keys.Delete):
		w, ok := t.writer()
		if !ok {
			return t, statusCmd(errReadOnly.Error(), true)
		}
		if len(t.tasks) > 0 {
			id := t.tasks[t.cursor].ID
			return t, func() tea.Msg {
				if err := w.DeleteTask(id); err != nil {
					return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
				}
				return taskDeletedMsg{id: id}
			}
		}
	}
	return t, nil
}

func (t tasksModel) categoryOptions(current string) []huh.Option[string] {
	names := make([]string, 0, len(t.colors)+1)
	for name := range t.colors {
		names = append(names, name)
	}
	if current != "" && !slices.Contains(names, current) {
		names = append(names, current)
	}
	slices.Sort(names)

	options := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, name := range names {
		options = append(options, huh.NewOption("● "+name, name))
	}
	return options
}

// showForm opens the task form, prefilled from task when editing.
func (t tasksModel) showForm(task *gantt.Task) (tasksModel, tea.Cmd) {
	today := date.Today(nil)
	*t.formName = ""
	*t.formStart = today.String()
	*t.formEnd = today.AddDays(7).String()
	*t.formProgress = "0"
	*t.formCategory = ""
	*t.formIcon = ""
	t.editingID = ""
	if task != nil {
		*t.formName = task.Name
		*t.formStart = task.Start.String()
		*t.formEnd = task.End.String()
		*t.formProgress = strconv.Itoa(task.Progress)
		*t.formCategory = task.Category
		*t.formIcon = task.Icon
		t.editingID = task.ID
	}

	iconOptions := make([]huh.Option[string], len(taskIcons))
	for i, icon := range taskIcons {
		label := icon
		if label == "" {
			label = "(none)"
		}
		iconOptions[i] = huh.NewOption(label, icon)
	}
	if !slices.Contains(taskIcons, *t.formIcon) {
		iconOptions = append(iconOptions, huh.NewOption(*t.formIcon, *t.formIcon))
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(t.formName).Validate(validateName),
			huh.NewInput().Title("Start (YYYY-MM-DD)").Value(t.formStart).Validate(validateDate),
			huh.NewInput().Title("End (YYYY-MM-DD)").Value(t.formEnd).Validate(validateDate),
			huh.NewInput().Title("Progress (0-100)").Value(t.formProgress).Validate(validateProgress),
			huh.NewSelect[string]().Title("Category").Options(t.categoryOptions(*t.formCategory)...).Value(t.formCategory),
			huh.NewSelect[string]().Title("Icon").Options(iconOptions...).Value(t.formIcon),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func validateDate(s string) error {
	_, err := date.Parse(strings.TrimSpace(s))
	return err
}

func validateProgress(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("progress must be a whole number")
	}
	if p < 0 || p > 100 {
		return errors.New("progress must be between 0 and 100")
	}
	return nil
}

// formTask builds a task from the form fields. End before start is
// rejected here even though the chart tolerates it.
func (t tasksModel) formTask() (gantt.Task, error) {
	start, err := date.Parse(strings.TrimSpace(*t.formStart))
	if err != nil {
		return gantt.Task{}, err
	}
	end, err := date.Parse(strings.TrimSpace(*t.formEnd))
	if err != nil {
		return gantt.Task{}, err
	}
	if end.Before(start) {
		return gantt.Task{}, errors.New("end is before start")
	}
	progress, err := strconv.Atoi(strings.TrimSpace(*t.formProgress))
	if err != nil {
		return gantt.Task{}, err
	}
	return gantt.Task{
		ID:       t.editingID,
		Name:     strings.TrimSpace(*t.formName),
		Start:    start,
		End:      end,
		Progress: progress,
		Category: *t.formCategory,
		Icon:     *t.formIcon,
	}, nil
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		task, err := t.formTask()
		if err != nil {
			return t, statusCmd("Invalid task: "+err.Error(), true)
		}
		w, ok := t.writer()
		if !ok {
			return t, statusCmd(errReadOnly.Error(), true)
		}
		editing := t.editingID != ""
		return t, func() tea.Msg {
			if editing {
				if err := w.UpdateTask(task); err != nil {
					return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
				}
				return taskSavedMsg{task: task}
			}
			created, err := w.CreateTask(task)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
			}
			return taskSavedMsg{task: created}
		}
	}

	return t, cmd
}

func (t tasksModel) view() string {
	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		if t.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(t.width - 4).Render(content)
	}
	return t.renderList()
}

func (t tasksModel) renderList() string {
	w := t.width - 4
	title := titleStyle.Render("Tasks")

	if len(t.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-28s %-10s  %-10s %5s %9s  %-12s",
		"", "Name", "Start", "End", "Days", "Progress", "Category")))

	// Leave room for the title, header, help line and panel padding.
	visible := max(t.height-10, 1)
	first := max(0, min(t.cursor-visible+1, len(t.tasks)-visible))
	last := min(first+visible, len(t.tasks))

	for i := first; i < last; i++ {
		task := t.tasks[i]
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := lipgloss.NewStyle().Foreground(barColor(task.Category, t.colors)).Render("●")
		name := task.Name
		if task.Icon != "" {
			name = task.Icon + " " + name
		}
		row := style.Render(fmt.Sprintf("%s%s %-28s %-10s  %-10s %5d %8d%%  %-12s",
			cursor, dot, truncate(name, 28), task.Start, task.End, task.Duration(), task.ClampedProgress(), task.Category))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: show in chart"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}
