package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/taskhelp/taskhelp/internal/search"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// JSONWarning writes a single warning as a one-line JSON object.
func JSONWarning(w io.Writer, msg string) {
	_ = json.NewEncoder(w).Encode(map[string]string{"warning": msg})
}

// taskJSON is the wire shape of one task record.
type taskJSON struct {
	Group       string `json:"group"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
}

// listingJSON is the wire shape of one namespace listing.
type listingJSON struct {
	Namespace string     `json:"namespace"`
	Tasks     []taskJSON `json:"tasks"`
}

// ListingJSON builds the JSON value for a single namespace listing.
func ListingJSON(namespace string, records []taskfile.Record) any {
	return buildListing(namespace, records)
}

// AllJSON builds the JSON value for an all-namespaces listing.
func AllJSON(sets []NamespaceTasks) any {
	listings := make([]listingJSON, 0, len(sets))
	for _, set := range sets {
		listings = append(listings, buildListing(set.Namespace, set.Tasks))
	}
	return map[string]any{"taskfiles": listings}
}

// resultJSON is the wire shape of one search result.
type resultJSON struct {
	Namespace     string   `json:"namespace"`
	Group         string   `json:"group"`
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   string   `json:"description"`
	MatchedFields []string `json:"matched_fields"`
}

// SearchJSON builds the JSON value for a search run.
func SearchJSON(results []search.Result) any {
	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		fields := make([]string, len(res.Fields))
		for i, f := range res.Fields {
			fields[i] = string(f)
		}
		out = append(out, resultJSON{
			Namespace:     res.Record.Namespace,
			Group:         res.Record.Group,
			Name:          res.Record.Name,
			FullName:      res.Record.FullName(),
			Description:   res.Record.Description,
			MatchedFields: fields,
		})
	}
	return map[string]any{"results": out}
}

// NamespacesJSON builds the JSON value for a namespace name listing.
func NamespacesJSON(names []string) any {
	if names == nil {
		names = []string{}
	}
	return map[string]any{"namespaces": names}
}

// WarningsJSON builds the JSON value for a validation run.
func WarningsJSON(warnings []string) any {
	if warnings == nil {
		warnings = []string{}
	}
	return map[string]any{"warnings": warnings}
}

func buildListing(namespace string, records []taskfile.Record) listingJSON {
	tasks := make([]taskJSON, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, taskJSON{
			Group:       rec.Group,
			Name:        rec.Name,
			FullName:    rec.FullName(),
			Description: rec.Description,
		})
	}
	return listingJSON{Namespace: namespace, Tasks: tasks}
}
