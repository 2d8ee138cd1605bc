package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskhelp/taskhelp/internal/clierr"
	"github.com/taskhelp/taskhelp/internal/discovery"
	"github.com/taskhelp/taskhelp/internal/output"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [NAMESPACE|all]",
	Short: "Check Taskfiles for structural problems",
	Long: `Runs the structural validator over one or more Taskfiles and reports
every advisory warning. Validation checks the version field, the tasks
section, and the YAML types of well-known task fields. It never stops
the listing commands; this command surfaces the same warnings on their
own and exits non-zero when any are found.`,
	ValidArgsFunction: completeNamespaces,
	RunE:              runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	d := newDiscovery()
	showVerbose(d)

	paths, err := validateTargets(d, args)
	if err != nil {
		return err
	}

	var warnings []string
	collect := func(msg string) { warnings = append(warnings, msg) }

	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // taskfile path from discovery
		if err != nil {
			collect(fmt.Sprintf("Error reading %s: %v", path, err))
			continue
		}
		taskfile.Validate(data, path, collect)
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, output.WarningsJSON(warnings)); err != nil {
			return err
		}
	} else {
		for _, msg := range warnings {
			output.Warning(os.Stdout, msg)
		}
		if len(warnings) == 0 {
			output.Messagef(os.Stdout, "Validated %d file(s), no warnings", len(paths))
		} else {
			output.Messagef(os.Stdout, "Validated %d file(s), %d warning(s)", len(paths), len(warnings))
		}
	}

	if len(warnings) > 0 {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

// validateTargets resolves the command arguments to the Taskfile paths to
// check. No argument means the main Taskfile; "all" adds every namespace.
func validateTargets(d *discovery.Discovery, args []string) ([]string, error) {
	target := "main"
	if len(args) > 0 {
		target = args[0]
	}

	switch target {
	case "all":
		var paths []string
		if main, ok := d.FindMain(); ok {
			paths = append(paths, main)
		}
		for _, ns := range d.AllNamespaces() {
			paths = append(paths, ns.Path)
		}
		if len(paths) == 0 {
			return nil, notFoundError(d, "main")
		}
		return paths, nil
	case "", "main":
		main, ok := d.FindMain()
		if !ok {
			return nil, notFoundError(d, "main")
		}
		return []string{main}, nil
	default:
		for _, ns := range d.AllNamespaces() {
			if ns.Name == target {
				return []string{ns.Path}, nil
			}
		}
		if path, ok := d.FindNamespace(target); ok {
			return []string{path}, nil
		}
		return nil, notFoundError(d, target)
	}
}
