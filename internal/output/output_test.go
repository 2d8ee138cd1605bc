package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhelp/taskhelp/internal/search"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		jsonFlag    bool
		compactFlag bool
		configured  string
		want        Format
	}{
		{name: "default", want: FormatText},
		{name: "json flag", jsonFlag: true, want: FormatJSON},
		{name: "compact flag", compactFlag: true, want: FormatCompact},
		{name: "json flag beats config", jsonFlag: true, configured: "compact", want: FormatJSON},
		{name: "configured json", configured: "json", want: FormatJSON},
		{name: "configured compact", configured: "compact", want: FormatCompact},
		{name: "configured oneline", configured: "oneline", want: FormatCompact},
		{name: "configured text", configured: "text", want: FormatText},
		{name: "configured table", configured: "table", want: FormatText},
		{name: "unknown configured value", configured: "bogus", want: FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.jsonFlag, tt.compactFlag, tt.configured))
		})
	}
}

func TestOrderedGroupsPreservesFirstAppearance(t *testing.T) {
	records := []taskfile.Record{
		{Group: "Build", Name: "build"},
		{Group: "Test", Name: "test"},
		{Group: "Build", Name: "build-all"},
	}

	groups := orderedGroups(records)
	require.Len(t, groups, 2)
	assert.Equal(t, "Build", groups[0].name)
	assert.Len(t, groups[0].tasks, 2)
	assert.Equal(t, "Test", groups[1].name)
}

func TestListingText(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	Listing(&buf, "dev", []taskfile.Record{
		{Namespace: "dev", Group: "Build", Name: "build", Description: "Build it"},
	})

	out := buf.String()
	assert.Contains(t, out, "DEV Task Commands:")
	assert.Contains(t, out, "Build:")
	assert.Contains(t, out, "task dev:build")
	assert.Contains(t, out, "- Build it")
}

func TestListingTextEmpty(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	Listing(&buf, "dev", nil)
	assert.Contains(t, buf.String(), "No public tasks found for namespace 'dev'")
}

func TestListingJSONShape(t *testing.T) {
	var buf bytes.Buffer
	err := JSON(&buf, ListingJSON("dev", []taskfile.Record{
		{Namespace: "dev", Group: "Build", Name: "build", Description: "Build it"},
	}))
	require.NoError(t, err)

	var got struct {
		Namespace string `json:"namespace"`
		Tasks     []struct {
			Group       string `json:"group"`
			Name        string `json:"name"`
			FullName    string `json:"full_name"`
			Description string `json:"description"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "dev", got.Namespace)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "build", got.Tasks[0].Name)
	assert.Equal(t, "dev:build", got.Tasks[0].FullName)
}

func TestListingJSONEmptyTasksArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, ListingJSON("", nil)))
	assert.Contains(t, buf.String(), `"tasks": []`)
}

func TestSearchJSONShape(t *testing.T) {
	var buf bytes.Buffer
	err := JSON(&buf, SearchJSON([]search.Result{
		{
			Record: taskfile.Record{Group: "Release", Name: "version", Description: "Print version"},
			Fields: []search.Field{search.FieldName, search.FieldDescription},
		},
	}))
	require.NoError(t, err)

	var got struct {
		Results []struct {
			FullName      string   `json:"full_name"`
			MatchedFields []string `json:"matched_fields"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "version", got.Results[0].FullName)
	assert.Equal(t, []string{"name", "description"}, got.Results[0].MatchedFields)
}

func TestErrorResponseShape(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "NAMESPACE_NOT_FOUND", "No Taskfile found for namespace 'dev'",
		map[string]any{"namespace": "dev"})

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "NAMESPACE_NOT_FOUND", got.Code)
	assert.Equal(t, "No Taskfile found for namespace 'dev'", got.Error)
	assert.Equal(t, "dev", got.Details["namespace"])
}

func TestListingCompact(t *testing.T) {
	var buf bytes.Buffer
	ListingCompact(&buf, []taskfile.Record{
		{Namespace: "dev", Group: "Build", Name: "build", Description: "Build it"},
	})
	assert.Equal(t, "dev:build [Build] Build it\n", buf.String())
}

func TestSearchCompactAnnotatesFields(t *testing.T) {
	var buf bytes.Buffer
	SearchCompact(&buf, []search.Result{
		{
			Record: taskfile.Record{Group: "Release", Name: "version", Description: "Print version"},
			Fields: []search.Field{search.FieldName, search.FieldDescription},
		},
	})
	assert.Equal(t, "version [Release] Print version matched:name,description\n", buf.String())
}

func TestNamespacesJSONNeverNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NamespacesJSON(nil)))
	assert.Contains(t, buf.String(), `"namespaces": []`)
}

func TestWarningsJSONNeverNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, WarningsJSON(nil)))
	assert.Contains(t, buf.String(), `"warnings": []`)
}
