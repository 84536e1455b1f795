package store

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/gantt"
)

const taskColumns = `id, name, start_date, end_date, progress, category, icon`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (gantt.Task, error) {
	var t gantt.Task
	var start, end string
	if err := row.Scan(&t.ID, &t.Name, &start, &end, &t.Progress, &t.Category, &t.Icon); err != nil {
		return gantt.Task{}, err
	}
	var err error
	if t.Start, err = date.Parse(start); err != nil {
		return gantt.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
	}
	if t.End, err = date.Parse(end); err != nil {
		return gantt.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
	}
	return t, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// CreateTask inserts t at the end of the list. An empty ID is replaced by
// the next free number.
func (s *Store) CreateTask(t gantt.Task) (gantt.Task, error) {
	if t.ID == "" {
		id, err := nextID(s.db)
		if err != nil {
			return gantt.Task{}, err
		}
		t.ID = id
	}
	if err := upsertTask(s.db, t, -1); err != nil {
		return gantt.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(t.ID)
}

func (s *Store) GetTask(id string) (gantt.Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return gantt.Task{}, fmt.Errorf("get task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return gantt.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// ListTasks returns every task in display order.
func (s *Store) ListTasks() ([]gantt.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []gantt.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(t gantt.Task) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE tasks SET name = ?, start_date = ?, end_date = ?, progress = ?, category = ?, icon = ?, updated_at = ?
		 WHERE id = ?`,
		t.Name, t.Start.String(), t.End.String(), t.Progress, t.Category, t.Icon, now, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}
	return nil
}

// ImportTasks inserts or updates tasks by ID, keeping the order they are
// given in after any existing tasks. Tasks without an ID are numbered after
// the stored tasks, skipping IDs used elsewhere in the batch. An ID given
// twice in one batch is an error.
func (s *Store) ImportTasks(tasks []gantt.Task) (int, error) {
	return s.inTx(func(tx *sql.Tx) (int, error) {
		first, err := nextNumber(tx)
		if err != nil {
			return 0, err
		}
		tasks, err := fillIDs(tasks, first)
		if err != nil {
			return 0, err
		}
		for i, t := range tasks {
			if err := upsertTask(tx, t, -1); err != nil {
				return 0, fmt.Errorf("import task #%d: %w", i, err)
			}
		}
		return len(tasks), nil
	})
}

// ReplaceTasks deletes every task and inserts tasks in their place. IDs are
// assigned and checked as in ImportTasks, numbering from 1.
func (s *Store) ReplaceTasks(tasks []gantt.Task) (int, error) {
	tasks, err := fillIDs(tasks, 1)
	if err != nil {
		return 0, err
	}
	return s.inTx(func(tx *sql.Tx) (int, error) {
		if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
			return 0, fmt.Errorf("clear tasks: %w", err)
		}
		for i, t := range tasks {
			if err := upsertTask(tx, t, i); err != nil {
				return 0, fmt.Errorf("insert task #%d: %w", i, err)
			}
		}
		return len(tasks), nil
	})
}

// fillIDs returns a copy of tasks with every empty ID replaced by the lowest
// number from first up that no task in the batch uses.
func fillIDs(tasks []gantt.Task, first int) ([]gantt.Task, error) {
	taken := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			continue
		}
		if taken[t.ID] {
			return nil, fmt.Errorf("task #%d: %w: %q", i, ErrDuplicateID, t.ID)
		}
		taken[t.ID] = true
	}

	out := slices.Clone(tasks)
	n := first
	for i := range out {
		if out[i].ID != "" {
			continue
		}
		for taken[strconv.Itoa(n)] {
			n++
		}
		out[i].ID = strconv.Itoa(n)
		taken[out[i].ID] = true
	}
	return out, nil
}

func (s *Store) inTx(fn func(tx *sql.Tx) (int, error)) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	n, err := fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// upsertTask writes t. A negative position appends new rows to the end and
// leaves the position of existing rows alone.
func upsertTask(db execer, t gantt.Task, position int) error {
	if position < 0 {
		if err := db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM tasks`).Scan(&position); err != nil {
			return err
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.Exec(
		`INSERT INTO tasks (id, position, name, start_date, end_date, progress, category, icon, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			progress = excluded.progress,
			category = excluded.category,
			icon = excluded.icon,
			updated_at = excluded.updated_at`,
		t.ID, position, t.Name, t.Start.String(), t.End.String(), t.Progress, t.Category, t.Icon, now, now,
	)
	return err
}

// nextID returns one more than the largest numeric task ID.
func nextID(db execer) (string, error) {
	n, err := nextNumber(db)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

func nextNumber(db execer) (int, error) {
	var n int
	err := db.QueryRow(
		`SELECT COALESCE(MAX(CAST(id AS INTEGER)), 0) + 1 FROM tasks WHERE id GLOB '[0-9]*'`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next task id: %w", err)
	}
	return n, nil
}
