// Package config resolves taskhelp settings from flags, environment
// variables, and an optional taskhelp.yml file in the working directory.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// Settings is the fully resolved configuration handed to commands.
// The core packages never read the environment themselves.
type Settings struct {
	SearchDirs   []string
	GroupPattern string
	NoColor      bool
	Output       string // "", "json", "compact", "text"
}

// Flags carries the command-line values that participate in resolution.
// Zero values mean "not set"; Changed* report whether the flag was given,
// since a false bool flag is indistinguishable from an unset one.
type Flags struct {
	SearchDirs     []string
	GroupPattern   string
	NoColor        bool
	ChangedNoColor bool
}

// fileConfig mirrors the taskhelp.yml schema.
type fileConfig struct {
	SearchDirs   []string `yaml:"search-dirs"`
	GroupPattern string   `yaml:"group-pattern"`
	NoColor      *bool    `yaml:"no-color"`
	Output       string   `yaml:"output"`
}

// Resolve layers the configuration sources. Precedence, highest first:
// command-line flags, TASKHELP_* environment variables, taskhelp.yml in dir,
// built-in defaults.
func Resolve(flags Flags, dir string) Settings {
	file := loadFile(filepath.Join(dir, FileName))

	return Settings{
		SearchDirs:   resolveSearchDirs(flags.SearchDirs, file),
		GroupPattern: resolveGroupPattern(flags.GroupPattern, file),
		NoColor:      resolveNoColor(flags, file),
		Output:       resolveOutput(file),
	}
}

// loadFile reads taskhelp.yml. A missing or malformed file yields an empty
// config; configuration is optional and never blocks the command.
func loadFile(path string) fileConfig {
	data, err := os.ReadFile(path) //nolint:gosec // config path rooted in cwd
	if err != nil {
		return fileConfig{}
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}
	}
	return cfg
}

func resolveSearchDirs(flagDirs []string, file fileConfig) []string {
	if len(flagDirs) > 0 {
		return splitDirList(flagDirs)
	}
	if env := os.Getenv(EnvSearchDirs); env != "" {
		return splitDirList([]string{env})
	}
	if len(file.SearchDirs) > 0 {
		return file.SearchDirs
	}
	return nil
}

// splitDirList expands colon-separated entries so both
// "-s a:b -s c" and TASKHELP_SEARCH_DIRS=a:b:c work.
func splitDirList(entries []string) []string {
	var dirs []string
	for _, entry := range entries {
		for _, dir := range strings.Split(entry, ":") {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

func resolveGroupPattern(flagPattern string, file fileConfig) string {
	if flagPattern != "" {
		return flagPattern
	}
	if env := os.Getenv(EnvGroupPattern); env != "" {
		return env
	}
	if file.GroupPattern != "" {
		return file.GroupPattern
	}
	return taskfile.DefaultGroupPattern
}

func resolveNoColor(flags Flags, file fileConfig) bool {
	if flags.ChangedNoColor {
		return flags.NoColor
	}
	if env, ok := os.LookupEnv(EnvNoColor); ok {
		return isTruthyEnv(env)
	}
	if file.NoColor != nil {
		return *file.NoColor
	}
	return false
}

func resolveOutput(file fileConfig) string {
	if env := os.Getenv(EnvOutput); env != "" {
		return env
	}
	return file.Output
}

func isTruthyEnv(v string) bool {
	switch strings.ToLower(v) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
