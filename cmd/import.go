package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/ganttr/internal/source"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load tasks from a file into the database",
	Long: `Reads tasks from a YAML, JSON or CSV file and stores them. Tasks whose ID
already exists are updated; tasks without an ID are numbered. With --replace
the existing tasks are deleted first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("replace", false, "delete existing tasks before importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	replace, _ := cmd.Flags().GetBool("replace")

	tasks, err := source.Load(args[0])
	if err != nil {
		return err
	}
	printWarnings(tasks)

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var n int
	if replace {
		n, err = s.ReplaceTasks(tasks)
	} else {
		n, err = s.ImportTasks(tasks)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Imported %d tasks from %s\n", n, args[0])
	return nil
}
