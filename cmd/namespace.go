package cmd

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskhelp/taskhelp/internal/clierr"
	"github.com/taskhelp/taskhelp/internal/discovery"
	"github.com/taskhelp/taskhelp/internal/output"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// validNamespaceRe keeps namespace arguments to name characters; anything
// else would leak into filename construction.
var validNamespaceRe = regexp.MustCompile(`^[\w:-]+$`)

var namespaceCmd = &cobra.Command{
	Use:     "namespace [NAMESPACE...]",
	Aliases: []string{"ns"},
	Short:   "Show tasks for one or more namespaces",
	Long: `Displays tasks from a specific namespace or all namespaces.

Meta-namespaces:
  main    Tasks from the main Taskfile (default when no namespace is given)
  all     Tasks from the main Taskfile and every namespace
  ?       List all available namespace names`,
	ValidArgsFunction: completeNamespaces,
	RunE:              runNamespace,
}

func init() {
	rootCmd.AddCommand(namespaceCmd)
}

func runNamespace(_ *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}
	d := newDiscovery()
	showVerbose(d)

	if len(args) == 0 {
		return showMain(p, d)
	}

	for _, arg := range args {
		switch arg {
		case "all":
			if err := showAll(p, d); err != nil {
				return err
			}
		case "?":
			if err := showAvailable(d); err != nil {
				return err
			}
		case "", "main":
			if err := showMain(p, d); err != nil {
				return err
			}
		default:
			if !validNamespaceRe.MatchString(arg) {
				return clierr.Newf(clierr.InvalidNamespace,
					"Invalid namespace name '%s'", arg).
					WithDetails(map[string]any{"namespace": arg})
			}
			if err := showNamespace(p, d, arg); err != nil {
				return err
			}
		}
	}
	return nil
}

func showMain(p *taskfile.Parser, d *discovery.Discovery) error {
	path, ok := d.FindMain()
	if !ok {
		return notFoundError(d, "main")
	}
	return renderListing("", loadRecords(p, path, ""))
}

func showNamespace(p *taskfile.Parser, d *discovery.Discovery, namespace string) error {
	// includes-declared namespaces win over loose files, matching the
	// first-discovered-wins rule of AllNamespaces.
	for _, ns := range d.AllNamespaces() {
		if ns.Name == namespace {
			return renderListing(namespace, loadRecords(p, ns.Path, namespace))
		}
	}
	if path, ok := d.FindNamespace(namespace); ok {
		return renderListing(namespace, loadRecords(p, path, namespace))
	}
	return notFoundError(d, namespace)
}

func showAll(p *taskfile.Parser, d *discovery.Discovery) error {
	sets := collectAll(p, d)
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.AllJSON(sets))
	case output.FormatCompact:
		output.AllCompact(os.Stdout, sets)
	default:
		output.AllListings(os.Stdout, sets)
	}
	return nil
}

func showAvailable(d *discovery.Discovery) error {
	names := namespaceNames(d)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.NamespacesJSON(names))
	}
	output.Namespaces(os.Stdout, names)
	return nil
}

func renderListing(namespace string, records []taskfile.Record) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.ListingJSON(namespace, records))
	case output.FormatCompact:
		output.ListingCompact(os.Stdout, records)
	default:
		output.Listing(os.Stdout, namespace, records)
	}
	return nil
}

// notFoundError builds a NAMESPACE_NOT_FOUND error carrying the checked
// paths and the available namespaces as suggestions.
func notFoundError(d *discovery.Discovery, namespace string) error {
	tried := d.PossiblePaths(namespace)
	available := namespaceNames(d)

	msg := "No Taskfile found for namespace '" + namespace + "'"
	if len(available) > 0 {
		msg += " (available: " + strings.Join(available, ", ") + ")"
	}
	code := clierr.NamespaceNotFound
	if namespace == "main" || namespace == "" {
		code = clierr.TaskfileNotFound
		msg = "No main Taskfile found"
	}
	return clierr.New(code, msg).WithDetails(map[string]any{
		"namespace": namespace,
		"tried":     tried,
		"available": available,
	})
}

func namespaceNames(d *discovery.Discovery) []string {
	all := d.AllNamespaces()
	names := make([]string, 0, len(all))
	for _, ns := range all {
		names = append(names, ns.Name)
	}
	return names
}

// completeNamespaces offers namespace names plus the meta-namespaces for
// shell completion.
func completeNamespaces(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	resolveSettings()
	d := newDiscovery()

	candidates := append(namespaceNames(d), "main", "all")
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) {
			matches = append(matches, c)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
