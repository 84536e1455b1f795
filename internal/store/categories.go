package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SetCategory creates the category or changes its colour.
func (s *Store) SetCategory(name, color string) (*Category, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO categories (name, color, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET color = excluded.color, updated_at = excluded.updated_at`,
		name, color, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("set category: %w", err)
	}
	return s.GetCategory(name)
}

func (s *Store) GetCategory(name string) (*Category, error) {
	c := &Category{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT name, color, created_at, updated_at FROM categories WHERE name = ?`, name,
	).Scan(&c.Name, &c.Color, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return c, nil
}

func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT name, color, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var createdAt, updatedAt string
		if err := rows.Scan(&c.Name, &c.Color, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CategoryColors maps category names to their colour.
func (s *Store) CategoryColors() (map[string]string, error) {
	categories, err := s.ListCategories()
	if err != nil {
		return nil, err
	}
	colors := make(map[string]string, len(categories))
	for _, c := range categories {
		colors[c.Name] = c.Color
	}
	return colors, nil
}

// GetCategorySummary aggregates tasks per category. Progress is clamped to
// 0-100 and malformed tasks count as zero days.
func (s *Store) GetCategorySummary() ([]CategorySummary, error) {
	rows, err := s.db.Query(`
		SELECT t.category, COALESCE(c.color, ''), COUNT(*),
		       AVG(MIN(MAX(t.progress, 0), 100)),
		       COALESCE(SUM(MAX(CAST(julianday(t.end_date) - julianday(t.start_date) AS INTEGER), 0)), 0)
		FROM tasks t
		LEFT JOIN categories c ON c.name = t.category
		GROUP BY t.category
		ORDER BY t.category`)
	if err != nil {
		return nil, fmt.Errorf("category summary: %w", err)
	}
	defer rows.Close()

	var summaries []CategorySummary
	for rows.Next() {
		var cs CategorySummary
		if err := rows.Scan(&cs.Category, &cs.Color, &cs.TaskCount, &cs.AvgProgress, &cs.TotalDays); err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	return summaries, rows.Err()
}
