// Package search filters task records with AND-combined substring patterns
// and regular expressions.
package search

import (
	"regexp"
	"strings"

	"github.com/taskhelp/taskhelp/internal/clierr"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// Field identifies which part of a record a filter matched.
type Field string

// Searchable fields. Each filter is checked against every field
// independently; fields are never concatenated into one blob.
const (
	FieldNamespace   Field = "namespace"
	FieldGroup       Field = "group"
	FieldName        Field = "name"
	FieldDescription Field = "description"
)

// Filter is one search query: case-insensitive substring patterns plus
// case-sensitive regular expressions. All entries must match for a record to
// qualify, each possibly in a different field.
type Filter struct {
	Patterns []string
	Regexes  []string
}

// Result is a matching record annotated with the fields where at least one
// filter matched.
type Result struct {
	Record taskfile.Record
	Fields []Field
}

// Run evaluates the filter against records, preserving their order.
// A filter with no patterns and no regexes is a caller error, as is a regex
// that fails to compile; both are reported distinctly from "no results".
func Run(records []taskfile.Record, f Filter) ([]Result, error) {
	if len(f.Patterns) == 0 && len(f.Regexes) == 0 {
		return nil, clierr.New(clierr.EmptyFilter,
			"at least one search filter (pattern or regex) is required")
	}

	compiled := make([]*regexp.Regexp, 0, len(f.Regexes))
	for _, expr := range f.Regexes {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, clierr.Newf(clierr.InvalidRegex, "invalid regex %q: %v", expr, err).
				WithDetails(map[string]any{"regex": expr})
		}
		compiled = append(compiled, re)
	}

	var results []Result
	for _, rec := range records {
		fields, ok := matchRecord(rec, f.Patterns, compiled)
		if ok {
			results = append(results, Result{Record: rec, Fields: fields})
		}
	}
	return results, nil
}

// matchRecord applies every pattern and regex to the record. Each filter
// must match in at least one field; the returned fields are the union of
// where any filter matched.
func matchRecord(rec taskfile.Record, patterns []string, regexes []*regexp.Regexp) ([]Field, bool) {
	fields := searchableFields(rec)
	matched := make(map[Field]bool, len(fields))

	for _, pattern := range patterns {
		needle := strings.ToLower(pattern)
		hit := false
		for field, text := range fields {
			if strings.Contains(strings.ToLower(text), needle) {
				matched[field] = true
				hit = true
			}
		}
		if !hit {
			return nil, false
		}
	}

	for _, re := range regexes {
		hit := false
		for field, text := range fields {
			if re.MatchString(text) {
				matched[field] = true
				hit = true
			}
		}
		if !hit {
			return nil, false
		}
	}

	return orderedFields(matched), true
}

func searchableFields(rec taskfile.Record) map[Field]string {
	return map[Field]string{
		FieldNamespace:   rec.Namespace,
		FieldGroup:       rec.Group,
		FieldName:        rec.FullName(),
		FieldDescription: rec.Description,
	}
}

// fieldOrder fixes the reporting order of matched fields.
var fieldOrder = []Field{FieldNamespace, FieldGroup, FieldName, FieldDescription}

func orderedFields(matched map[Field]bool) []Field {
	var fields []Field
	for _, f := range fieldOrder {
		if matched[f] {
			fields = append(fields, f)
		}
	}
	return fields
}
