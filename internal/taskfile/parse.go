package taskfile

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/taskhelp/taskhelp/internal/clierr"
)

// DefaultGroupPattern matches group marker comments of the form
// "# === Group Name ===". The single capture group is the group name.
const DefaultGroupPattern = `\s*#\s*===\s*(.+?)\s*===`

var (
	taskLineRe = regexp.MustCompile(`^  ([A-Za-z0-9_:-]+):\s*$`)
	descLineRe = regexp.MustCompile(`^    desc:\s*(.+?)\s*$`)
	internalRe = regexp.MustCompile(`^    internal:\s*(\S+)`)
)

// reservedFields are per-task keys that must never be mistaken for a task
// name, even when a malformed file puts them at task-list indentation.
var reservedFields = map[string]bool{
	"desc":          true,
	"internal":      true,
	"cmds":          true,
	"deps":          true,
	"vars":          true,
	"env":           true,
	"dir":           true,
	"silent":        true,
	"sources":       true,
	"generates":     true,
	"status":        true,
	"preconditions": true,
}

// Parser extracts Records from Taskfile text line by line. It deliberately
// avoids a structural YAML parse: a generic loader would discard the comment
// lines that carry group markers, lose source ordering, and reject files the
// validator merely warns about.
type Parser struct {
	groupRe *regexp.Regexp
}

// NewParser creates a Parser with the given group marker pattern.
// The pattern must compile and contain exactly one capture group.
// An empty pattern selects DefaultGroupPattern.
func NewParser(groupPattern string) (*Parser, error) {
	if groupPattern == "" {
		groupPattern = DefaultGroupPattern
	}
	// Anchor at line start; the wrapping group is non-capturing so the
	// caller's capture group stays group 1.
	re, err := regexp.Compile(`^(?:` + groupPattern + `)`)
	if err != nil {
		return nil, clierr.Newf(clierr.InvalidGroupPattern,
			"invalid group pattern %q: %v", groupPattern, err).
			WithDetails(map[string]any{"pattern": groupPattern})
	}
	if re.NumSubexp() != 1 {
		return nil, clierr.Newf(clierr.InvalidGroupPattern,
			"group pattern %q must contain exactly one capture group, has %d",
			groupPattern, re.NumSubexp()).
			WithDetails(map[string]any{"pattern": groupPattern})
	}
	return &Parser{groupRe: re}, nil
}

// parserState tracks the open task while scanning lines.
type parserState struct {
	group     string // group for tasks opened from here on
	task      string
	taskGroup string // group captured when the open task's name line was seen
	desc      string
	internal  bool
	inTasks   bool
}

// flush appends a Record for the open task if it is public: it must have a
// non-empty description and no internal flag. Anything else is dropped
// silently.
func (s *parserState) flush(namespace string, records []Record) []Record {
	if s.task != "" && s.desc != "" && !s.internal {
		records = append(records, Record{
			Namespace:   namespace,
			Group:       s.taskGroup,
			Name:        s.task,
			Description: s.desc,
		})
	}
	s.task = ""
	s.desc = ""
	s.internal = false
	return records
}

// Parse extracts Records from Taskfile text, preserving source order.
func (p *Parser) Parse(r io.Reader, namespace string) ([]Record, error) {
	var records []Record
	state := parserState{group: DefaultGroup}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		records = p.processLine(scanner.Text(), namespace, &state, records)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning taskfile: %w", err)
	}

	// End of file saves the last open task.
	records = state.flush(namespace, records)
	return records, nil
}

func (p *Parser) processLine(line, namespace string, state *parserState, records []Record) []Record {
	if strings.TrimSpace(line) == "tasks:" {
		state.inTasks = true
		return records
	}
	if !state.inTasks {
		return records
	}

	// Group marker: updates the group for all following tasks. It does not
	// close the open task; only a task line or EOF does that.
	if m := p.groupRe.FindStringSubmatch(line); m != nil {
		state.group = strings.TrimSpace(m[1])
		return records
	}

	// Task name line: saves the previous task, opens a new one under the
	// group in effect at this line.
	if m := taskLineRe.FindStringSubmatch(line); m != nil && !reservedFields[m[1]] {
		records = state.flush(namespace, records)
		state.task = m[1]
		state.taskGroup = state.group
		return records
	}

	if state.task == "" {
		return records
	}

	// Description: last value wins when a task carries several desc lines.
	if m := descLineRe.FindStringSubmatch(line); m != nil {
		state.desc = stripQuotes(m[1])
		return records
	}

	// Internal flag: truthy values suppress the record at save time,
	// regardless of whether the flag precedes or follows desc.
	if m := internalRe.FindStringSubmatch(line); m != nil {
		state.internal = isTruthy(m[1])
		return records
	}

	return records
}

// stripQuotes removes one pair of matching surrounding quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// isTruthy interprets YAML-ish boolean spellings. Anything unrecognized
// counts as false.
func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}
