// Package output renders task listings and search results as styled text,
// JSON, or compact one-line-per-task format.
package output

import (
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// Format represents an output format.
type Format int

const (
	// FormatText outputs styled, grouped help text (the default).
	FormatText Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatCompact outputs one line per task.
	FormatCompact
)

// Detect returns the output format from flags, falling back to the resolved
// configuration value (env or config file), then to text.
func Detect(jsonFlag, compactFlag bool, configured string) Format {
	if jsonFlag {
		return FormatJSON
	}
	if compactFlag {
		return FormatCompact
	}

	switch configured {
	case "json":
		return FormatJSON
	case "compact", "oneline":
		return FormatCompact
	case "table", "text":
		return FormatText
	}

	return FormatText
}

// NamespaceTasks pairs a namespace with its parsed records, in discovery
// order.
type NamespaceTasks struct {
	Namespace string
	Tasks     []taskfile.Record
}

// group is a run of records sharing a group name, in first-appearance order.
type group struct {
	name  string
	tasks []taskfile.Record
}

// orderedGroups buckets records by group, preserving the order in which
// groups first appear in the file.
func orderedGroups(records []taskfile.Record) []group {
	index := make(map[string]int)
	var groups []group
	for _, rec := range records {
		i, ok := index[rec.Group]
		if !ok {
			i = len(groups)
			index[rec.Group] = i
			groups = append(groups, group{name: rec.Group})
		}
		groups[i].tasks = append(groups[i].tasks, rec)
	}
	return groups
}
