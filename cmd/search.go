package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskhelp/taskhelp/internal/output"
	"github.com/taskhelp/taskhelp/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [PATTERN...]",
	Short: "Search tasks by pattern or regex",
	Long: `Searches across namespaces, groups, task names, and descriptions.

Positional patterns are case-insensitive substrings; --regex adds
case-sensitive regular expressions. All patterns and regexes are combined
with AND logic: every filter must match somewhere in a task's fields,
each possibly in a different field. At least one pattern or regex is
required.`,
	Example: `  taskhelp search test                 # tasks mentioning "test"
  taskhelp search version bump         # both "version" AND "bump"
  taskhelp search --regex '^build'     # task text matching the regex
  taskhelp search lint --regex 'fix$'  # pattern and regex combined`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArrayP("regex", "r", nil, "regular expression filter (repeatable)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	regexes, _ := cmd.Flags().GetStringArray("regex")

	p, err := newParser()
	if err != nil {
		return err
	}
	d := newDiscovery()
	showVerbose(d)

	records := flattenRecords(collectAll(p, d))
	results, err := search.Run(records, search.Filter{
		Patterns: args,
		Regexes:  regexes,
	})
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.SearchJSON(results))
	case output.FormatCompact:
		output.SearchCompact(os.Stdout, results)
	default:
		output.SearchResults(os.Stdout, results)
	}
	return nil
}
