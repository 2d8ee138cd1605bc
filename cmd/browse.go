package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskhelp/taskhelp/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse tasks interactively",
	Long: `Opens a full-screen interactive browser over every task from the main
Taskfile and all namespaces. Type to filter (whitespace-separated terms
are combined with AND), arrow keys move, Esc quits.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}
	d := newDiscovery()

	records := flattenRecords(collectAll(p, d))
	if len(records) == 0 {
		return notFoundError(d, "main")
	}

	prog := tea.NewProgram(tui.NewBrowser(records), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
