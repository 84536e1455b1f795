// Package export writes a chart's layout as CSV, JSON or SVG.
package export

import (
	"github.com/sadopc/ganttr/internal/gantt"
)

// row is one task with its bar resolved against the chart's window.
type row struct {
	Task     gantt.Task
	Bar      gantt.Bar
	Progress int // filled part of the bar, in layout units
}

func layoutRows(c *gantt.Chart) []row {
	anchor := c.Start()
	rows := make([]row, 0, c.Len())
	for _, t := range c.Tasks() {
		bar := gantt.TaskToBar(t, anchor, c.DayWidth())
		rows = append(rows, row{
			Task:     t,
			Bar:      bar,
			Progress: gantt.ProgressWidth(bar, t.Progress),
		})
	}
	return rows
}
