package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskhelp/taskhelp/internal/search"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// taskColumnWidth is the padded width of the "task <name>" column.
const taskColumnWidth = 20

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	groupStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	taskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

// DisableColor strips all styling from text output.
func DisableColor() {
	titleStyle = lipgloss.NewStyle()
	groupStyle = lipgloss.NewStyle()
	taskStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	warnStyle = lipgloss.NewStyle()
	errStyle = lipgloss.NewStyle()
	headingStyle = lipgloss.NewStyle()
}

// Listing renders the tasks of a single namespace as grouped help text.
func Listing(w io.Writer, namespace string, records []taskfile.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, warnStyle.Render(
			fmt.Sprintf("No public tasks found for namespace '%s'", namespace)))
		return
	}

	title := "Task Commands"
	if namespace != "" {
		title = strings.ToUpper(namespace) + " Task Commands"
	}
	fmt.Fprintln(w, titleStyle.Render(title+":"))
	fmt.Fprintln(w)

	for _, g := range orderedGroups(records) {
		fmt.Fprintln(w, groupStyle.Render(g.name+":"))
		for _, rec := range g.tasks {
			fmt.Fprintf(w, "  %s - %s\n",
				padRight(taskStyle.Render("task "+rec.FullName()), taskColumnWidth+5),
				rec.Description)
		}
		fmt.Fprintln(w)
	}
}

// AllListings renders every namespace's tasks with a banner per Taskfile.
func AllListings(w io.Writer, sets []NamespaceTasks) {
	for _, set := range sets {
		banner := "=== Main Taskfile ==="
		if set.Namespace != "" {
			banner = fmt.Sprintf("=== %s Taskfile ===", strings.ToUpper(set.Namespace))
		}
		fmt.Fprintln(w, titleStyle.Render(banner))
		fmt.Fprintln(w)
		Listing(w, set.Namespace, set.Tasks)
		fmt.Fprintln(w)
	}
}

// SearchResults renders matches grouped by namespace, then by group,
// preserving the aggregate order.
func SearchResults(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, warnStyle.Render("No tasks found matching search criteria"))
		return
	}

	fmt.Fprintln(w, titleStyle.Render("Search Results:"))
	fmt.Fprintln(w)

	for _, ns := range resultsByNamespace(results) {
		title := "Main Namespace"
		if ns.namespace != "" {
			title = strings.ToUpper(ns.namespace) + " Namespace"
		}
		fmt.Fprintln(w, groupStyle.Render(title+":"))

		for _, g := range orderedGroups(records(ns.results)) {
			fmt.Fprintln(w, "  "+groupStyle.Render(g.name+":"))
			for _, rec := range g.tasks {
				fmt.Fprintf(w, "    %s - %s\n",
					padRight(taskStyle.Render("task "+rec.FullName()), taskColumnWidth+5),
					rec.Description)
			}
		}
		fmt.Fprintln(w)
	}
}

// Namespaces renders the list of available namespace names.
func Namespaces(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, warnStyle.Render("No namespaces found"))
		return
	}
	fmt.Fprintf(w, "Available namespaces: %s\n", strings.Join(names, ", "))
}

// Heading renders a section heading (used by verbose output).
func Heading(w io.Writer, msg string) {
	fmt.Fprintln(w, headingStyle.Render(msg))
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Warning renders an advisory warning line.
func Warning(w io.Writer, msg string) {
	fmt.Fprintln(w, warnStyle.Render("Warning: "+msg))
}

// Errorln renders an error line.
func Errorln(w io.Writer, msg string) {
	fmt.Fprintln(w, errStyle.Render("Error: "+msg))
}

// namespaceResults is a run of search results sharing a namespace.
type namespaceResults struct {
	namespace string
	results   []search.Result
}

func resultsByNamespace(results []search.Result) []namespaceResults {
	index := make(map[string]int)
	var grouped []namespaceResults
	for _, res := range results {
		ns := res.Record.Namespace
		i, ok := index[ns]
		if !ok {
			i = len(grouped)
			index[ns] = i
			grouped = append(grouped, namespaceResults{namespace: ns})
		}
		grouped[i].results = append(grouped[i].results, res)
	}
	return grouped
}

func records(results []search.Result) []taskfile.Record {
	recs := make([]taskfile.Record, len(results))
	for i, res := range results {
		recs[i] = res.Record
	}
	return recs
}

// padRight pads s with spaces to the given visible width, accounting for
// ANSI escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
