package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/ganttr/internal/export"
	"github.com/sadopc/ganttr/internal/gantt"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the chart as SVG, CSV or JSON",
	Long: `Lays the tasks out in pixels, using the chart and svg sections of the
config, and writes the result. The format defaults to the extension of
--output.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "", "output format: svg, csv or json")
	exportCmd.Flags().StringP("output", "o", "", "output file")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	var (
		format export.Format
		err    error
	)
	if formatName != "" {
		format, err = export.ParseFormat(formatName)
	} else {
		format, err = export.FormatFromPath(output)
	}
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	tasks, colors, err := loadTasks()
	if err != nil {
		return err
	}
	printWarnings(tasks)

	c, err := gantt.NewChart(tasks, cfg.SVGOptions())
	if err != nil {
		return err
	}
	if err := export.Write(c, format, output, export.OptionsFromConfig(cfg, colors)); err != nil {
		return err
	}
	slog.Debug("exported chart", "format", string(format), "path", output, "tasks", c.Len())
	fmt.Fprintf(os.Stdout, "Exported %d tasks to %s\n", c.Len(), output)
	return nil
}
