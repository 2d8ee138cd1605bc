package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskhelp/taskhelp/internal/output"
	"github.com/taskhelp/taskhelp/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [NAMESPACE|all]",
	Short: "Re-render the task listing when Taskfiles change",
	Long: `Watches the search directories for Taskfile changes and re-renders
the listing on every change. Rapid edits are debounced into a single
refresh. Press Ctrl+C to stop.`,
	ValidArgsFunction: completeNamespaces,
	RunE:              runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	render := func() {
		fmt.Print("\033[H\033[2J")
		if err := runNamespace(cmd, args); err != nil {
			output.Errorln(os.Stderr, err.Error())
		}
	}

	d := newDiscovery()
	w, err := watcher.New(existingDirs(d.SearchDirs), render)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	render()
	output.Messagef(os.Stderr, "Watching for Taskfile changes (Ctrl+C to stop)...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Run(ctx, func(err error) {
		output.Warning(os.Stderr, fmt.Sprintf("watch error: %v", err))
	})
	return nil
}

// existingDirs filters out search directories that do not exist, since
// the watcher refuses to add missing paths.
func existingDirs(dirs []string) []string {
	var out []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}
