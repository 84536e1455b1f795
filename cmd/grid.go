package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/ganttr/internal/gantt"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the computed layout: month buckets and task bars",
	Long: `Prints the date window, its month buckets and the position of every bar.
Positions are in pixels, or in terminal columns with --cols.`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().Int("cols", 0, "lay out for a terminal this many columns wide instead of in pixels")
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, _ []string) error {
	cols, _ := cmd.Flags().GetInt("cols")

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	tasks, _, err := loadTasks()
	if err != nil {
		return err
	}
	printWarnings(tasks)

	opts := cfg.SVGOptions()
	unit := "px"
	if cols > 0 {
		opts = cfg.TerminalOptions(cols)
		unit = "cols"
	}
	c, err := gantt.NewChart(tasks, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, renderGrid(c, unit))
	return nil
}

var gridHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var gridCellStyle = lipgloss.NewStyle().Padding(0, 1)

func gridTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return gridHeaderStyle
			}
			return gridCellStyle
		})
}

// renderGrid describes the layout of c as two tables.
func renderGrid(c *gantt.Chart, unit string) string {
	w := c.Window()
	grid := gantt.BuildGrid(w, c.DayWidth())

	var b strings.Builder
	fmt.Fprintf(&b, "Window %s to %s, %d days, %d %s per day\n\n",
		w.Start, w.End, w.Days(), c.DayWidth(), unit)

	months := gridTable("Month", "Days", "Width")
	for _, m := range grid {
		months.Row(m.Label, strconv.Itoa(len(m.Days)), strconv.Itoa(m.Width))
	}
	months.Row("Total", strconv.Itoa(w.Days()), strconv.Itoa(gantt.TotalWidth(grid)))
	b.WriteString(months.Render())
	b.WriteString("\n\n")

	bars := gridTable("Task", "Start", "End", "Left", "Width", "Progress")
	for i := range c.Len() {
		t := c.Task(i)
		bar := gantt.TaskToBar(t, c.Start(), c.DayWidth())
		name := t.Name
		if bar.Clamped {
			name += " (clamped)"
		}
		bars.Row(name, t.Start.String(), t.End.String(),
			strconv.Itoa(bar.Left), strconv.Itoa(bar.Width),
			fmt.Sprintf("%d%%", t.ClampedProgress()))
	}
	b.WriteString(bars.Render())
	b.WriteString("\n")
	return b.String()
}
