package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhelp/taskhelp/internal/clierr"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

func sampleRecords() []taskfile.Record {
	return []taskfile.Record{
		{Group: "Build", Name: "build", Description: "Build the project"},
		{Group: "Release", Name: "version", Description: "Print the current version"},
		{Group: "Release", Name: "release", Description: "Bump version and tag"},
		{Namespace: "docker", Group: "Other", Name: "up", Description: "Start containers"},
	}
}

func TestRunSinglePattern(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{Patterns: []string{"version"}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "version", results[0].Record.Name)
	assert.Equal(t, "release", results[1].Record.Name)
}

func TestRunPatternsAreANDCombined(t *testing.T) {
	// Both terms must match, each possibly in a different field.
	results, err := Run(sampleRecords(), Filter{Patterns: []string{"version", "bump"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "release", results[0].Record.Name)
}

func TestRunPatternCaseInsensitive(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{Patterns: []string{"BUILD"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "build", results[0].Record.Name)
}

func TestRunRegexCaseSensitive(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{Regexes: []string{"^Build"}})
	require.NoError(t, err)
	// Matches the group "Build" and the description "Build the project",
	// not the lowercase task name on other records.
	require.Len(t, results, 1)
	assert.Equal(t, "build", results[0].Record.Name)
}

func TestRunPatternAndRegexCombined(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{
		Patterns: []string{"release"},
		Regexes:  []string{`tag$`},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "release", results[0].Record.Name)
}

func TestRunMatchedFields(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{Patterns: []string{"version"}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	// "version" appears in both the name and the description of the first hit.
	assert.Equal(t, []Field{FieldName, FieldDescription}, results[0].Fields)
	// The second hit only mentions it in the description.
	assert.Equal(t, []Field{FieldDescription}, results[1].Fields)
}

func TestRunMatchesNamespaceField(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{Patterns: []string{"docker"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "up", results[0].Record.Name)
	// The namespace matches directly and through the qualified full name.
	assert.Equal(t, []Field{FieldNamespace, FieldName}, results[0].Fields)
}

func TestRunNoResults(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{Patterns: []string{"nonexistent"}})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunEmptyFilter(t *testing.T) {
	_, err := Run(sampleRecords(), Filter{})
	require.Error(t, err)
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.EmptyFilter, cliErr.Code)
}

func TestRunInvalidRegex(t *testing.T) {
	_, err := Run(sampleRecords(), Filter{Regexes: []string{"["}})
	require.Error(t, err)
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.InvalidRegex, cliErr.Code)
	assert.Equal(t, "[", cliErr.Details["regex"])
}

func TestRunPreservesRecordOrder(t *testing.T) {
	results, err := Run(sampleRecords(), Filter{Patterns: []string{"e"}})
	require.NoError(t, err)
	var names []string
	for _, res := range results {
		names = append(names, res.Record.Name)
	}
	assert.Equal(t, []string{"build", "version", "release", "up"}, names)
}
