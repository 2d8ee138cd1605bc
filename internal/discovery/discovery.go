// Package discovery locates Taskfiles across search directories and resolves
// namespaces, both from includes: declarations and from namespace-suffixed
// filenames.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// Namespace pairs a resolved namespace name with the Taskfile that defines it.
type Namespace struct {
	Name string
	Path string
}

// Discovery searches an ordered list of directories for Taskfiles.
// Earlier directories win; nonexistent directories are skipped silently.
type Discovery struct {
	SearchDirs []string
}

// New creates a Discovery over the given directories. Paths are
// tilde-expanded and made absolute, duplicates are dropped keeping the first
// occurrence, and an empty list defaults to the current directory.
func New(dirs []string) *Discovery {
	return &Discovery{SearchDirs: normalizeDirs(dirs)}
}

func normalizeDirs(dirs []string) []string {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	seen := make(map[string]bool, len(dirs))
	normalized := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		dir = expandTilde(dir)
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		normalized = append(normalized, abs)
	}
	return normalized
}

func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// FindMain returns the first main Taskfile found, checking each search
// directory in order and each candidate filename in preference order.
func (d *Discovery) FindMain() (string, bool) {
	return d.findFirst(taskfile.MainNames)
}

// FindNamespace returns the first Taskfile for the given namespace,
// honoring the separator and extension preference order.
func (d *Discovery) FindNamespace(namespace string) (string, bool) {
	return d.findFirst(taskfile.NamespaceNames(namespace))
}

func (d *Discovery) findFirst(names []string) (string, bool) {
	for _, dir := range d.SearchDirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, true
			}
		}
	}
	return "", false
}

// PossiblePaths lists every path a lookup would have checked, for
// "not found" error messages.
func (d *Discovery) PossiblePaths(namespace string) []string {
	names := taskfile.MainNames
	if namespace != "" && namespace != "main" {
		names = taskfile.NamespaceNames(namespace)
	}
	var paths []string
	for _, dir := range d.SearchDirs {
		for _, name := range names {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// AllNamespaces returns the union of includes-declared and filename-based
// namespaces, deduplicated by name (first discovered wins; includes-based
// resolution runs first) and sorted alphabetically.
func (d *Discovery) AllNamespaces() []Namespace {
	var all []Namespace
	if main, ok := d.FindMain(); ok {
		all = d.ResolveIncludes(main)
	}
	all = append(all, d.legacyNamespaces()...)

	seen := make(map[string]bool, len(all))
	unique := all[:0]
	for _, ns := range all {
		if seen[ns.Name] {
			continue
		}
		seen[ns.Name] = true
		unique = append(unique, ns)
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i].Name < unique[j].Name })
	return unique
}

// ResolveIncludes recursively resolves the includes: mapping of the Taskfile
// at path. Nested includes produce composite namespace names joined with
// ":". A file that transitively includes itself stops contributing further
// namespaces; the cycle is truncated, not reported.
func (d *Discovery) ResolveIncludes(path string) []Namespace {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	visited := map[string]bool{abs: true}
	return resolveIncludes(abs, "", visited)
}

func resolveIncludes(path, prefix string, visited map[string]bool) []Namespace {
	var namespaces []Namespace
	for _, inc := range readIncludes(path) {
		target := inc.resolve(filepath.Dir(path))
		if target == "" || !fileExists(target) {
			continue
		}
		name := inc.key
		if prefix != "" {
			name = prefix + ":" + inc.key
		}
		namespaces = append(namespaces, Namespace{Name: name, Path: target})

		if visited[target] {
			continue
		}
		visited[target] = true
		namespaces = append(namespaces, resolveIncludes(target, name, visited)...)
		delete(visited, target)
	}
	return namespaces
}

// legacyNamespaces scans the search directories for namespace-suffixed
// filenames (Taskfile-<ns>.yml and variants).
func (d *Discovery) legacyNamespaces() []Namespace {
	type candidate struct {
		ns   string
		rank int
		name string
		path string
	}

	var all []Namespace
	for _, dir := range d.SearchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		var found []candidate
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			m := taskfile.MatchName(entry.Name())
			if m.Kind != taskfile.KindNamespace {
				continue
			}
			found = append(found, candidate{
				ns:   m.Namespace,
				rank: filenameRank(entry.Name()),
				name: entry.Name(),
				path: filepath.Join(dir, entry.Name()),
			})
		}

		// Within one directory, prefer "-" over "_" and .yml over .yaml
		// when the same namespace has several spellings.
		sort.Slice(found, func(i, j int) bool {
			if found[i].ns != found[j].ns {
				return found[i].ns < found[j].ns
			}
			if found[i].rank != found[j].rank {
				return found[i].rank < found[j].rank
			}
			return found[i].name < found[j].name
		})
		for _, c := range found {
			all = append(all, Namespace{Name: c.ns, Path: c.path})
		}
	}
	return all
}

// filenameRank orders namespace filename spellings by preference:
// separator "-" before "_", extension .yml before .yaml.
func filenameRank(name string) int {
	rank := 0
	if strings.Contains(name, "_") {
		rank += 2
	}
	if strings.HasSuffix(name, ".yaml") {
		rank++
	}
	return rank
}

// include is one entry of an includes: mapping, in document order.
type include struct {
	key      string
	taskfile string
	dir      string
}

// resolve returns the absolute path of the included Taskfile. A dir: base is
// resolved against the including file's directory first.
func (inc include) resolve(baseDir string) string {
	base := baseDir
	if inc.dir != "" {
		if filepath.IsAbs(inc.dir) {
			base = inc.dir
		} else {
			base = filepath.Join(baseDir, inc.dir)
		}
	}
	if inc.taskfile == "" {
		return ""
	}
	if filepath.IsAbs(inc.taskfile) {
		return inc.taskfile
	}
	return filepath.Join(base, inc.taskfile)
}

// readIncludes extracts the includes: mapping from the Taskfile at path,
// preserving document order. Entries are either a plain string (the taskfile
// path) or a mapping with taskfile: and optional dir: keys. Unreadable or
// unparseable files contribute no includes.
func readIncludes(path string) []include {
	data, err := os.ReadFile(path) //nolint:gosec // taskfile path from discovery
	if err != nil {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}

	var includesNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "includes" {
			includesNode = root.Content[i+1]
			break
		}
	}
	if includesNode == nil || includesNode.Kind != yaml.MappingNode {
		return nil
	}

	var includes []include
	for i := 0; i+1 < len(includesNode.Content); i += 2 {
		key := includesNode.Content[i].Value
		val := includesNode.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			includes = append(includes, include{key: key, taskfile: val.Value})
		case yaml.MappingNode:
			inc := include{key: key}
			for j := 0; j+1 < len(val.Content); j += 2 {
				switch val.Content[j].Value {
				case "taskfile":
					inc.taskfile = val.Content[j+1].Value
				case "dir":
					inc.dir = val.Content[j+1].Value
				}
			}
			includes = append(includes, inc)
		}
	}
	return includes
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
