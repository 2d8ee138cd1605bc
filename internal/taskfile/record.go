// Package taskfile extracts documented task records from Taskfile YAML files.
package taskfile

// Record is one documented task extracted from a Taskfile.
// Records exist only for public tasks: a task with no desc field,
// or with internal: true, never becomes a Record.
type Record struct {
	Namespace   string `json:"namespace"`
	Group       string `json:"group"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FullName returns the namespace-qualified task name, e.g. "dev:build",
// or just the task name for the main Taskfile.
func (r Record) FullName() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + ":" + r.Name
}

// DefaultGroup is the group assigned to tasks that appear before any
// group marker comment.
const DefaultGroup = "Other"
