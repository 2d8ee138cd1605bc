package taskfile

import "regexp"

// Kind classifies a filename by the Taskfile naming convention.
type Kind int

const (
	// KindNone means the filename is not a Taskfile.
	KindNone Kind = iota
	// KindMain matches Taskfile.yml / taskfile.yaml variants.
	KindMain
	// KindNamespace matches Taskfile-<ns>.yml / Taskfile_<ns>.yaml variants.
	KindNamespace
)

// Match is the result of classifying a filename.
type Match struct {
	Kind      Kind
	Namespace string // captured namespace for KindNamespace, "" otherwise
}

var (
	mainNameRe      = regexp.MustCompile(`^(?i:taskfile)\.ya?ml$`)
	namespaceNameRe = regexp.MustCompile(`^(?i:taskfile)[-_](\w+)\.ya?ml$`)
)

// MatchName classifies a bare filename (no directory component) as a main
// Taskfile, a namespace Taskfile, or neither. It never fails; unrecognized
// names yield KindNone.
func MatchName(name string) Match {
	if mainNameRe.MatchString(name) {
		return Match{Kind: KindMain}
	}
	if m := namespaceNameRe.FindStringSubmatch(name); m != nil {
		return Match{Kind: KindNamespace, Namespace: m[1]}
	}
	return Match{Kind: KindNone}
}

// MainNames lists the main Taskfile filenames in preference order:
// uppercase prefix before lowercase, .yml before .yaml.
var MainNames = []string{
	"Taskfile.yml",
	"Taskfile.yaml",
	"taskfile.yml",
	"taskfile.yaml",
}

// NamespaceNames returns candidate filenames for a namespace Taskfile in
// preference order: the "-" separator before "_", .yml before .yaml.
func NamespaceNames(namespace string) []string {
	return []string{
		"Taskfile-" + namespace + ".yml",
		"Taskfile-" + namespace + ".yaml",
		"Taskfile_" + namespace + ".yml",
		"Taskfile_" + namespace + ".yaml",
	}
}
