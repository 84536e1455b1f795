package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/ganttr/internal/gantt"
)

// ToCSV writes one row per task with its dates and bar position. The file
// can be read back by the task loader; the layout columns are ignored.
func ToCSV(c *gantt.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"ID", "Name", "Start", "End", "Days", "Progress", "Category", "Icon", "Left", "Width"}); err != nil {
		return err
	}

	for _, r := range layoutRows(c) {
		t := r.Task
		row := []string{
			t.ID,
			t.Name,
			t.Start.String(),
			t.End.String(),
			strconv.Itoa(t.Duration()),
			strconv.Itoa(t.Progress),
			t.Category,
			t.Icon,
			strconv.Itoa(r.Bar.Left),
			strconv.Itoa(r.Bar.Width),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
