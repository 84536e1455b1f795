package store

import (
	"time"

	"github.com/sadopc/ganttr/internal/date"
	"github.com/sadopc/ganttr/internal/gantt"
)

// DemoTasks returns the sample roadmap loaded by Seed.
func DemoTasks() []gantt.Task {
	d := func(m time.Month, day int) date.Date { return date.New(2023, m, day) }
	return []gantt.Task{
		{ID: "1", Name: "Onboarding redesign", Start: d(time.February, 15), End: d(time.April, 15), Progress: 100, Category: "design", Icon: "🎨"},
		{ID: "2", Name: "GIPHY Integration", Start: d(time.April, 5), End: d(time.May, 10), Progress: 70, Category: "development", Icon: "📦"},
		{ID: "3", Name: "Roadmap timeline", Start: d(time.March, 20), End: d(time.May, 5), Progress: 90, Category: "design", Icon: "📊"},
		{ID: "4", Name: "Solar panel data", Start: d(time.April, 10), End: d(time.June, 1), Progress: 60, Category: "research", Icon: "📈"},
		{ID: "5", Name: "User documentation", Start: d(time.May, 1), End: d(time.May, 20), Progress: 40, Category: "marketing", Icon: "📝"},
		{ID: "6", Name: "Redesigned building windows", Start: d(time.May, 5), End: d(time.June, 15), Progress: 30, Category: "design", Icon: "🏢"},
		{ID: "7", Name: "Garden map", Start: d(time.June, 1), End: d(time.June, 20), Progress: 20, Category: "design", Icon: "🔍"},
		{ID: "8", Name: "Users metrics", Start: d(time.June, 10), End: d(time.June, 25), Progress: 10, Category: "research", Icon: "📊"},
		{ID: "9", Name: "Security update", Start: d(time.March, 1), End: d(time.July, 1), Progress: 50, Category: "development", Icon: "🔒"},
		{ID: "10", Name: "Website links", Start: d(time.June, 20), End: d(time.July, 5), Progress: 0, Category: "marketing", Icon: "🔗"},
		{ID: "11", Name: "New website", Start: d(time.June, 15), End: d(time.August, 15), Progress: 5, Category: "development", Icon: "🌐"},
		{ID: "12", Name: "Speed", Start: d(time.July, 1), End: d(time.August, 1), Progress: 0, Category: "development", Icon: "⚡"},
	}
}

// Seed replaces the task list with the demo roadmap.
func (s *Store) Seed() (int, error) {
	return s.ReplaceTasks(DemoTasks())
}
