package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/ganttr/internal/gantt"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Start      string      `json:"start"`
	End        string      `json:"end"`
	DayWidth   int         `json:"day_width"`
	Width      int         `json:"width"`
	Count      int         `json:"count"`
	Months     []jsonMonth `json:"months"`
	Tasks      []jsonTask  `json:"tasks"`
	Warnings   []string    `json:"warnings,omitempty"`
}

type jsonMonth struct {
	Label string `json:"label"`
	Start string `json:"start"`
	Days  int    `json:"days"`
	Width int    `json:"width"`
}

type jsonTask struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Days          int    `json:"days"`
	Progress      int    `json:"progress"`
	Category      string `json:"category,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Left          int    `json:"left"`
	Width         int    `json:"width"`
	ProgressWidth int    `json:"progress_width"`
}

// ToJSON writes the chart window, its month grid and every task bar. The
// tasks key can be read back by the task loader.
func ToJSON(c *gantt.Chart, path string) error {
	grid := gantt.BuildGrid(c.Window(), c.DayWidth())
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Start:      c.Window().Start.String(),
		End:        c.Window().End.String(),
		DayWidth:   c.DayWidth(),
		Width:      gantt.TotalWidth(grid),
		Count:      c.Len(),
	}

	for _, m := range grid {
		export.Months = append(export.Months, jsonMonth{
			Label: m.Label,
			Start: m.Days[0].String(),
			Days:  len(m.Days),
			Width: m.Width,
		})
	}

	for _, r := range layoutRows(c) {
		t := r.Task
		export.Tasks = append(export.Tasks, jsonTask{
			ID:            t.ID,
			Name:          t.Name,
			Start:         t.Start.String(),
			End:           t.End.String(),
			Days:          t.Duration(),
			Progress:      t.Progress,
			Category:      t.Category,
			Icon:          t.Icon,
			Left:          r.Bar.Left,
			Width:         r.Bar.Width,
			ProgressWidth: r.Progress,
		})
	}

	for _, w := range c.Warnings() {
		export.Warnings = append(export.Warnings, w.String())
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
