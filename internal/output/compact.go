package output

import (
	"fmt"
	"io"

	"github.com/taskhelp/taskhelp/internal/search"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// ListingCompact renders records as one line per task:
// "<full_name> [<group>] <description>".
func ListingCompact(w io.Writer, records []taskfile.Record) {
	for _, rec := range records {
		fmt.Fprintln(w, formatTaskLine(rec))
	}
}

// AllCompact renders every namespace's records in one flat compact list.
func AllCompact(w io.Writer, sets []NamespaceTasks) {
	for _, set := range sets {
		ListingCompact(w, set.Tasks)
	}
}

// SearchCompact renders search results in compact format, annotating the
// matched fields.
func SearchCompact(w io.Writer, results []search.Result) {
	for _, res := range results {
		line := formatTaskLine(res.Record)
		if len(res.Fields) > 0 {
			line += " matched:"
			for i, f := range res.Fields {
				if i > 0 {
					line += ","
				}
				line += string(f)
			}
		}
		fmt.Fprintln(w, line)
	}
}

func formatTaskLine(rec taskfile.Record) string {
	return fmt.Sprintf("%s [%s] %s", rec.FullName(), rec.Group, rec.Description)
}
