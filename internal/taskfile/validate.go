package taskfile

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// WarnFunc receives one advisory warning message. Validation is purely
// advisory: it never stops parsing or rendering.
type WarnFunc func(msg string)

// Validate runs the lightweight structural schema check over raw Taskfile
// content. Every finding is reported through warn; the return value reports
// whether the file passed without warnings.
func Validate(data []byte, path string, warn WarnFunc) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		warn(fmt.Sprintf("%s is not parseable: %v; continuing...", path, err))
		return false
	}

	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		warn(fmt.Sprintf("Root must be a mapping, got %s", nodeTypeName(root)))
		return false
	}

	valid := validateVersion(root, warn)

	tasks := mappingValue(root, "tasks")
	if tasks == nil {
		warn("Missing 'tasks' section")
		return false
	}
	if tasks.Kind != yaml.MappingNode {
		warn(fmt.Sprintf("'tasks' must be a mapping, got %s", nodeTypeName(tasks)))
		return false
	}

	for i := 0; i+1 < len(tasks.Content); i += 2 {
		name := tasks.Content[i].Value
		if !validateTask(name, tasks.Content[i+1], warn) {
			valid = false
		}
	}
	return valid
}

// validateVersion checks for the exact string "3". A numeric version
// (3, 3.0) fails deliberately: YAML distinguishes 3 from '3' and the
// task runner requires the quoted form.
func validateVersion(root *yaml.Node, warn WarnFunc) bool {
	version := mappingValue(root, "version")
	if version == nil {
		warn("Missing 'version' field")
		return false
	}
	if version.Tag != "!!str" || version.Value != "3" {
		warn(fmt.Sprintf("Invalid version '%s', expected '3'", version.Value))
		return false
	}
	return true
}

func validateTask(name string, def *yaml.Node, warn WarnFunc) bool {
	def = resolveAlias(def)
	if def == nil || def.Kind != yaml.MappingNode {
		warn(fmt.Sprintf("Task '%s' must be a mapping", name))
		return false
	}

	valid := true
	if v := mappingValue(def, "desc"); v != nil && v.Tag != "!!str" {
		warn(fmt.Sprintf("Task '%s': 'desc' must be a string, got %s", name, nodeTypeName(v)))
		valid = false
	}
	if v := mappingValue(def, "internal"); v != nil && v.Tag != "!!bool" {
		warn(fmt.Sprintf("Task '%s': 'internal' must be a boolean, got %s", name, nodeTypeName(v)))
		valid = false
	}
	if v := mappingValue(def, "cmds"); v != nil && v.Kind != yaml.SequenceNode && v.Tag != "!!str" {
		warn(fmt.Sprintf("Task '%s': 'cmds' must be a list or string, got %s", name, nodeTypeName(v)))
		valid = false
	}
	if v := mappingValue(def, "deps"); v != nil && v.Kind != yaml.SequenceNode {
		warn(fmt.Sprintf("Task '%s': 'deps' must be a list, got %s", name, nodeTypeName(v)))
		valid = false
	}
	return valid
}

// documentRoot unwraps the document node yaml.v3 places at the top.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return resolveAlias(doc.Content[0])
	}
	return nil
}

// mappingValue returns the value node for key within a mapping node, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolveAlias(mapping.Content[i+1])
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

// nodeTypeName renders a node's type the way the warnings name them.
func nodeTypeName(n *yaml.Node) string {
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return "string"
		case "!!int":
			return "int"
		case "!!float":
			return "float"
		case "!!bool":
			return "bool"
		case "!!null":
			return "null"
		}
		return "scalar"
	default:
		return "unknown"
	}
}
