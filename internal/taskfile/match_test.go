package taskfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchName(t *testing.T) {
	tests := []struct {
		name string
		want Match
	}{
		{"Taskfile.yml", Match{Kind: KindMain}},
		{"Taskfile.yaml", Match{Kind: KindMain}},
		{"taskfile.yml", Match{Kind: KindMain}},
		{"TASKFILE.yml", Match{Kind: KindMain}},
		{"Taskfile-dev.yml", Match{Kind: KindNamespace, Namespace: "dev"}},
		{"Taskfile_ci.yaml", Match{Kind: KindNamespace, Namespace: "ci"}},
		{"taskfile-docker.yml", Match{Kind: KindNamespace, Namespace: "docker"}},
		{"Taskfile.yml.bak", Match{Kind: KindNone}},
		{"mytaskfile.yml", Match{Kind: KindNone}},
		{"Taskfile-.yml", Match{Kind: KindNone}},
		{"README.md", Match{Kind: KindNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchName(tt.name))
		})
	}
}

func TestMainNamesPreferenceOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Taskfile.yml",
		"Taskfile.yaml",
		"taskfile.yml",
		"taskfile.yaml",
	}, MainNames)
}

func TestNamespaceNamesPreferenceOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Taskfile-dev.yml",
		"Taskfile-dev.yaml",
		"Taskfile_dev.yml",
		"Taskfile_dev.yaml",
	}, NamespaceNames("dev"))
}
