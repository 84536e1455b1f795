package cmd

import (
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "List task categories and their colours",
	Args:    cobra.NoArgs,
	RunE:    runCategoryList,
}

var categorySetCmd = &cobra.Command{
	Use:   "set <name> <#rrggbb>",
	Short: "Create a category or change its colour",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategorySet,
}

func init() {
	categoryCmd.AddCommand(categorySetCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(_ *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	categories, err := s.ListCategories()
	if err != nil {
		return err
	}
	for _, c := range categories {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		fmt.Fprintf(os.Stdout, "%s %-16s %s\n", dot, c.Name, c.Color)
	}
	return nil
}

func runCategorySet(_ *cobra.Command, args []string) error {
	name, color := args[0], args[1]
	if !hexColor.MatchString(color) {
		return fmt.Errorf("invalid colour %q: want #rgb or #rrggbb", color)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.SetCategory(name, color)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Category %s is now %s\n", c.Name, c.Color)
	return nil
}
