// Package cmd implements the taskhelp CLI commands.
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/taskhelp/taskhelp/internal/clierr"
	"github.com/taskhelp/taskhelp/internal/config"
	"github.com/taskhelp/taskhelp/internal/discovery"
	"github.com/taskhelp/taskhelp/internal/output"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON         bool
	flagCompact      bool
	flagNoColor      bool
	flagVerbose      bool
	flagSearchDirs   []string
	flagGroupPattern string
)

// settings is resolved once per invocation in PersistentPreRun.
var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "taskhelp",
	Short: "Dynamic help generator for Taskfiles",
	Long: `taskhelp parses Taskfile YAML files and renders organized, colored help
text similar to 'task --list', with comment-based grouping and namespace
support. Namespaces come from includes: declarations or from
Taskfile-<namespace>.yml files in the search directories.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runMainListing,
}

func init() {
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		resolveSettings()
		if colorDisabled() {
			output.DisableColor()
		}
	}
	addGlobalFlags(rootCmd.PersistentFlags())
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&flagJSON, "json", false, "output as JSON")
	fs.BoolVar(&flagCompact, "compact", false, "compact one-line-per-task output")
	fs.BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	fs.BoolVar(&flagNoColor, "no-color", false, "disable color output")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "show search directories on stderr")
	fs.StringSliceVarP(&flagSearchDirs, "search-dirs", "s", nil,
		"directories to search for Taskfiles (colon-separated or repeated)")
	fs.StringVar(&flagGroupPattern, "group-pattern", "",
		"regex for group marker comments (one capture group)")
}

// resolveSettings layers flags over environment and config file values.
// Idempotent so completion callbacks can call it too.
func resolveSettings() {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	settings = config.Resolve(config.Flags{
		SearchDirs:     flagSearchDirs,
		GroupPattern:   flagGroupPattern,
		NoColor:        flagNoColor,
		ChangedNoColor: rootCmd.PersistentFlags().Changed("no-color"),
	}, cwd)
}

func colorDisabled() bool {
	if flagNoColor || settings.NoColor || termenv.EnvNoColor() {
		return true
	}
	if outputFormat() != output.FormatText {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	output.Errorln(os.Stderr, err.Error())
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		if tried, ok := cliErr.Details["tried"].([]string); ok && len(tried) > 0 {
			output.Messagef(os.Stderr, "Tried:")
			for _, path := range tried {
				output.Messagef(os.Stderr, "  %s", path)
			}
		}
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// outputFormat returns the detected output format from flags and config.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagCompact, settings.Output)
}

// newDiscovery builds a Discovery over the resolved search directories.
func newDiscovery() *discovery.Discovery {
	return discovery.New(settings.SearchDirs)
}

// newParser builds a line parser with the resolved group pattern.
func newParser() (*taskfile.Parser, error) {
	return taskfile.NewParser(settings.GroupPattern)
}

// warnf routes an advisory warning to stderr in the active format.
func warnf(msg string) {
	if outputFormat() == output.FormatJSON {
		output.JSONWarning(os.Stderr, msg)
		return
	}
	output.Warning(os.Stderr, msg)
}

// loadRecords reads one Taskfile, runs the structural validator as a
// side-channel warning emitter, and extracts its task records. A file that
// cannot be read or scanned contributes zero records; other files are
// unaffected.
func loadRecords(p *taskfile.Parser, path, namespace string) []taskfile.Record {
	data, err := os.ReadFile(path) //nolint:gosec // taskfile path from discovery
	if err != nil {
		warnf(fmt.Sprintf("Error reading %s: %v", path, err))
		return nil
	}

	taskfile.Validate(data, path, warnf)

	records, err := p.Parse(bytes.NewReader(data), namespace)
	if err != nil {
		warnf(fmt.Sprintf("Error reading %s: %v", path, err))
		return nil
	}
	return records
}

// collectAll parses the main Taskfile plus every discovered namespace,
// in namespace order.
func collectAll(p *taskfile.Parser, d *discovery.Discovery) []output.NamespaceTasks {
	var sets []output.NamespaceTasks
	if main, ok := d.FindMain(); ok {
		sets = append(sets, output.NamespaceTasks{
			Namespace: "",
			Tasks:     loadRecords(p, main, ""),
		})
	}
	for _, ns := range d.AllNamespaces() {
		sets = append(sets, output.NamespaceTasks{
			Namespace: ns.Name,
			Tasks:     loadRecords(p, ns.Path, ns.Name),
		})
	}
	return sets
}

// flattenRecords joins per-namespace record lists preserving aggregate order.
func flattenRecords(sets []output.NamespaceTasks) []taskfile.Record {
	var records []taskfile.Record
	for _, set := range sets {
		records = append(records, set.Tasks...)
	}
	return records
}

// showVerbose prints the resolved search directories to stderr.
func showVerbose(d *discovery.Discovery) {
	if !flagVerbose || outputFormat() == output.FormatJSON {
		return
	}
	output.Heading(os.Stderr, "Searching in directories:")
	for _, dir := range d.SearchDirs {
		output.Messagef(os.Stderr, "  %s", dir)
	}
	output.Messagef(os.Stderr, "")
}

// runMainListing is the root command: list tasks from the main Taskfile.
func runMainListing(cmd *cobra.Command, _ []string) error {
	return runNamespace(cmd, nil)
}
