package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// unsetenv removes a variable for the test while keeping t.Setenv's
// automatic restore of the original value.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func clearEnv(t *testing.T) {
	t.Helper()
	unsetenv(t, EnvSearchDirs)
	unsetenv(t, EnvGroupPattern)
	unsetenv(t, EnvNoColor)
	unsetenv(t, EnvOutput)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)

	s := Resolve(Flags{}, t.TempDir())
	assert.Empty(t, s.SearchDirs)
	assert.Equal(t, taskfile.DefaultGroupPattern, s.GroupPattern)
	assert.False(t, s.NoColor)
	assert.Empty(t, s.Output)
}

func TestResolveSearchDirsPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "search-dirs:\n  - /from/file\n")

	t.Run("file when nothing else set", func(t *testing.T) {
		s := Resolve(Flags{}, dir)
		assert.Equal(t, []string{"/from/file"}, s.SearchDirs)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv(EnvSearchDirs, "/from/env")
		s := Resolve(Flags{}, dir)
		assert.Equal(t, []string{"/from/env"}, s.SearchDirs)
	})

	t.Run("flags over env and file", func(t *testing.T) {
		t.Setenv(EnvSearchDirs, "/from/env")
		s := Resolve(Flags{SearchDirs: []string{"/from/flag"}}, dir)
		assert.Equal(t, []string{"/from/flag"}, s.SearchDirs)
	})
}

func TestResolveSearchDirsColonSplitting(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("flag entries", func(t *testing.T) {
		s := Resolve(Flags{SearchDirs: []string{"/a:/b", "/c"}}, dir)
		assert.Equal(t, []string{"/a", "/b", "/c"}, s.SearchDirs)
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv(EnvSearchDirs, "/x:/y:/z")
		s := Resolve(Flags{}, dir)
		assert.Equal(t, []string{"/x", "/y", "/z"}, s.SearchDirs)
	})

	t.Run("empty entries dropped", func(t *testing.T) {
		t.Setenv(EnvSearchDirs, ":/x::")
		s := Resolve(Flags{}, dir)
		assert.Equal(t, []string{"/x"}, s.SearchDirs)
	})
}

func TestResolveGroupPattern(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "group-pattern: 'file (.+)'\n")

	t.Run("file value", func(t *testing.T) {
		s := Resolve(Flags{}, dir)
		assert.Equal(t, "file (.+)", s.GroupPattern)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv(EnvGroupPattern, "env (.+)")
		s := Resolve(Flags{}, dir)
		assert.Equal(t, "env (.+)", s.GroupPattern)
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv(EnvGroupPattern, "env (.+)")
		s := Resolve(Flags{GroupPattern: "flag (.+)"}, dir)
		assert.Equal(t, "flag (.+)", s.GroupPattern)
	})
}

func TestResolveNoColor(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "no-color: true\n")

	t.Run("file value", func(t *testing.T) {
		s := Resolve(Flags{}, dir)
		assert.True(t, s.NoColor)
	})

	t.Run("truthy env over file", func(t *testing.T) {
		t.Setenv(EnvNoColor, "1")
		s := Resolve(Flags{}, dir)
		assert.True(t, s.NoColor)
	})

	t.Run("falsy env over file", func(t *testing.T) {
		t.Setenv(EnvNoColor, "0")
		s := Resolve(Flags{}, dir)
		assert.False(t, s.NoColor)
	})

	t.Run("changed flag wins", func(t *testing.T) {
		t.Setenv(EnvNoColor, "1")
		s := Resolve(Flags{NoColor: false, ChangedNoColor: true}, dir)
		assert.False(t, s.NoColor)
	})

	t.Run("unchanged flag ignored", func(t *testing.T) {
		s := Resolve(Flags{NoColor: false, ChangedNoColor: false}, dir)
		assert.True(t, s.NoColor)
	})
}

func TestResolveOutput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "output: compact\n")

	t.Run("file value", func(t *testing.T) {
		s := Resolve(Flags{}, dir)
		assert.Equal(t, "compact", s.Output)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv(EnvOutput, "json")
		s := Resolve(Flags{}, dir)
		assert.Equal(t, "json", s.Output)
	})
}

func TestResolveMalformedConfigIgnored(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "search-dirs: [unclosed\n")

	s := Resolve(Flags{}, dir)
	assert.Empty(t, s.SearchDirs)
	assert.Equal(t, taskfile.DefaultGroupPattern, s.GroupPattern)
}
