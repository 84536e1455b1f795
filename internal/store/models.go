package store

import "time"

// Category is a named bar colour. Tasks refer to categories by name; a task
// whose category has no row is drawn in the default colour.
type Category struct {
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategorySummary aggregates the tasks of one category.
type CategorySummary struct {
	Category    string
	Color       string
	TaskCount   int
	AvgProgress float64 // percent
	TotalDays   int
}
