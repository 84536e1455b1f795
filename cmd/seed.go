package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the tasks in the database with a demo roadmap",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Seed()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Seeded %d demo tasks\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
