package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhelp/taskhelp/internal/discovery"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

func writeTaskfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// requireNonRoot skips permission-bit tests under root, where chmod 0o000
// does not prevent reads.
func requireNonRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not apply to root")
	}
}

func TestLoadRecordsUnreadableFile(t *testing.T) {
	requireNonRoot(t)
	dir := t.TempDir()
	path := writeTaskfile(t, dir, "Taskfile.yml", "version: '3'\ntasks:\n  a:\n    desc: A\n")
	require.NoError(t, os.Chmod(path, 0o000))

	p, err := taskfile.NewParser("")
	require.NoError(t, err)

	assert.Empty(t, loadRecords(p, path, ""))
}

func TestCollectAllSkipsUnreadableFile(t *testing.T) {
	requireNonRoot(t)
	dir := t.TempDir()
	writeTaskfile(t, dir, "Taskfile.yml", "version: '3'\ntasks:\n  root:\n    desc: Root task\n")
	writeTaskfile(t, dir, "Taskfile-ok.yml", "version: '3'\ntasks:\n  fine:\n    desc: Fine task\n")
	bad := writeTaskfile(t, dir, "Taskfile-bad.yml", "version: '3'\ntasks:\n  broken:\n    desc: Broken task\n")
	require.NoError(t, os.Chmod(bad, 0o000))

	p, err := taskfile.NewParser("")
	require.NoError(t, err)

	// The unreadable namespace contributes zero records; the main Taskfile
	// and the readable namespace are unaffected.
	sets := collectAll(p, discovery.New([]string{dir}))
	require.Len(t, sets, 3)

	byNamespace := make(map[string][]taskfile.Record, len(sets))
	for _, set := range sets {
		byNamespace[set.Namespace] = set.Tasks
	}
	assert.Empty(t, byNamespace["bad"])
	require.Len(t, byNamespace[""], 1)
	assert.Equal(t, "root", byNamespace[""][0].Name)
	require.Len(t, byNamespace["ok"], 1)
	assert.Equal(t, "fine", byNamespace["ok"][0].Name)

	records := flattenRecords(sets)
	assert.Len(t, records, 2)
}
