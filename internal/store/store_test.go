package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/gantt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTask(id, name string) gantt.Task {
	return gantt.Task{
		ID:       id,
		Name:     name,
		Start:    date.New(2023, time.March, 1),
		End:      date.New(2023, time.March, 11),
		Progress: 25,
		Category: "design",
		Icon:     "🎨",
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != len(migrations) {
		t.Fatalf("expected user_version %d, got %d", len(migrations), version)
	}
}

func TestNewRejectsNewerSchema(t *testing.T) {
	path := t.TempDir() + "/ganttr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := New(path); err == nil {
		t.Fatal("expected error opening a database from a newer version")
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/ganttr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTask(sampleTask("a", "Persisted")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: should not re-migrate or lose data
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if _, err := s2.GetTask("a"); err != nil {
		t.Fatalf("task lost after reopen: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)
	want := sampleTask("t1", "Design")
	got, err := s.CreateTask(want)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("CreateTask = %+v, want %+v", got, want)
	}
}

func TestCreateTaskGeneratesID(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(sampleTask("7", "Seven"))
	s.CreateTask(sampleTask("x", "Letter"))

	got, err := s.CreateTask(sampleTask("", "Next"))
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "8" {
		t.Fatalf("generated ID = %q, want 8", got.ID)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTask("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTasksKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := s.CreateTask(sampleTask("", name)); err != nil {
			t.Fatal(err)
		}
	}
	tasks, err := s.ListTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "Zeta" || tasks[2].Name != "Mid" {
		t.Fatalf("unexpected order: %v, %v, %v", tasks[0].Name, tasks[1].Name, tasks[2].Name)
	}
}

func TestListTasksEmpty(t *testing.T) {
	s := newTestStore(t)
	tasks, err := s.ListTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected 0 tasks, got %d", len(tasks))
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask(sampleTask("u", "Before"))

	task.Name = "After"
	task.Progress = 80
	task.End = task.End.AddDays(5)
	if err := s.UpdateTask(task); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetTask("u")
	if got != task {
		t.Fatalf("after update = %+v, want %+v", got, task)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateTask(sampleTask("nope", "x"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(sampleTask("d", "Doomed"))

	if err := s.DeleteTask("d"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetTask("d"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task still present: %v", err)
	}
	if err := s.DeleteTask("d"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestMalformedTaskStored(t *testing.T) {
	s := newTestStore(t)
	bad := sampleTask("bad", "Backwards")
	bad.Start, bad.End = bad.End, bad.Start
	bad.Progress = 150

	got, err := s.CreateTask(bad)
	if err != nil {
		t.Fatal(err)
	}
	if got != bad {
		t.Fatalf("malformed task altered: %+v", got)
	}
}

// ============================================================
// Import / replace
// ============================================================

func TestImportTasksUpserts(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(sampleTask("1", "Old name"))

	in := []gantt.Task{sampleTask("1", "New name"), sampleTask("", "Fresh")}
	n, err := s.ImportTasks(in)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}

	tasks, _ := s.ListTasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "1" || tasks[0].Name != "New name" {
		t.Fatalf("task 1 = %+v", tasks[0])
	}
	if tasks[1].ID != "2" || tasks[1].Name != "Fresh" {
		t.Fatalf("task 2 = %+v", tasks[1])
	}
}

func TestReplaceTasks(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(sampleTask("gone", "Gone"))

	n, err := s.ReplaceTasks([]gantt.Task{sampleTask("b", "B"), sampleTask("a", "A")})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("replaced %d, want 2", n)
	}
	tasks, _ := s.ListTasks()
	if len(tasks) != 2 || tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestReplaceTasksRejectsDuplicateIDs(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(sampleTask("keep", "Keep"))

	_, err := s.ReplaceTasks([]gantt.Task{sampleTask("x", "First"), sampleTask("x", "Second")})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	tasks, _ := s.ListTasks()
	if len(tasks) != 1 || tasks[0].ID != "keep" {
		t.Fatalf("failed replace must leave the store alone: %+v", tasks)
	}
}

func TestReplaceTasksAutoIDSkipsExplicitIDs(t *testing.T) {
	s := newTestStore(t)
	n, err := s.ReplaceTasks([]gantt.Task{sampleTask("", "First"), sampleTask("1", "Second")})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("n = %d", n)
	}
	tasks, _ := s.ListTasks()
	if len(tasks) != 2 {
		t.Fatalf("expected both tasks stored, got %+v", tasks)
	}
	if tasks[0].ID != "2" || tasks[0].Name != "First" {
		t.Fatalf("task 0 = %+v", tasks[0])
	}
	if tasks[1].ID != "1" || tasks[1].Name != "Second" {
		t.Fatalf("task 1 = %+v", tasks[1])
	}
}

func TestImportTasksAutoIDSkipsExplicitIDs(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(sampleTask("1", "Existing"))

	n, err := s.ImportTasks([]gantt.Task{sampleTask("", "Auto"), sampleTask("2", "Explicit")})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("n = %d", n)
	}
	tasks, _ := s.ListTasks()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %+v", tasks)
	}
	got, err := s.GetTask("3")
	if err != nil || got.Name != "Auto" {
		t.Fatalf("auto task = %+v, %v", got, err)
	}
	if got, _ := s.GetTask("2"); got.Name != "Explicit" {
		t.Fatalf("explicit task overwritten: %+v", got)
	}
}

func TestImportTasksRejectsDuplicateIDs(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ImportTasks([]gantt.Task{sampleTask("a", "One"), sampleTask("a", "Two")})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if tasks, _ := s.ListTasks(); len(tasks) != 0 {
		t.Fatalf("expected nothing imported, got %+v", tasks)
	}
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	n, err := s.Seed()
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Fatalf("seeded %d, want 12", n)
	}
	tasks, _ := s.ListTasks()
	if tasks[0].Name != "Onboarding redesign" || !tasks[0].Start.Equal(date.New(2023, time.February, 15)) {
		t.Fatalf("first demo task = %+v", tasks[0])
	}
	if w := gantt.Validate(tasks); len(w) != 0 {
		t.Fatalf("demo data has warnings: %v", w)
	}
}

// ============================================================
// Categories
// ============================================================

func TestDefaultCategories(t *testing.T) {
	s := newTestStore(t)
	colors, err := s.CategoryColors()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"design", "development", "research", "marketing"} {
		if colors[name] == "" {
			t.Fatalf("missing default category %q", name)
		}
	}
}

func TestSetCategory(t *testing.T) {
	s := newTestStore(t)
	c, err := s.SetCategory("ops", "#123456")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "ops" || c.Color != "#123456" || c.CreatedAt.IsZero() {
		t.Fatalf("unexpected category: %+v", c)
	}

	c, _ = s.SetCategory("ops", "#654321")
	if c.Color != "#654321" {
		t.Fatalf("color not updated: %+v", c)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetCategory("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategorySummary(t *testing.T) {
	s := newTestStore(t)
	a := sampleTask("a", "A") // 10 days, 25%
	b := sampleTask("b", "B")
	b.Progress = 175 // clamped to 100
	c := sampleTask("c", "C")
	c.Category = "unlisted"
	c.Start, c.End = c.End, c.Start // counts as 0 days
	s.ReplaceTasks([]gantt.Task{a, b, c})

	sums, err := s.GetCategorySummary()
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(sums))
	}

	design := sums[0]
	if design.Category != "design" || design.TaskCount != 2 || design.TotalDays != 20 {
		t.Fatalf("design = %+v", design)
	}
	if design.AvgProgress != 62.5 {
		t.Fatalf("avg progress = %v, want 62.5", design.AvgProgress)
	}
	if design.Color == "" {
		t.Fatal("design should carry its colour")
	}

	other := sums[1]
	if other.Category != "unlisted" || other.Color != "" || other.TotalDays != 0 {
		t.Fatalf("unlisted = %+v", other)
	}
}

func TestCategorySummaryEmpty(t *testing.T) {
	s := newTestStore(t)
	sums, err := s.GetCategorySummary()
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 0 {
		t.Fatalf("expected no rows, got %d", len(sums))
	}
}

// ============================================================
// Close
// ============================================================

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
}
