// Package tui implements an interactive browser for task records.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskhelp/taskhelp/internal/search"
	"github.com/taskhelp/taskhelp/internal/taskfile"
)

// chrome is the number of non-list lines: title, input, blank, status bar.
const chrome = 4

var (
	browserTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	selectedStyle     = lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true)
	nameStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	metaStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Browser is the top-level bubbletea model: a filter input over the full
// aggregate of task records.
type Browser struct {
	records  []taskfile.Record
	filtered []taskfile.Record
	input    textinput.Model
	cursor   int
	scroll   int
	width    int
	height   int
}

// NewBrowser creates a Browser over the given records.
func NewBrowser(records []taskfile.Record) *Browser {
	input := textinput.New()
	input.Placeholder = "filter tasks..."
	input.Prompt = "/ "
	input.Focus()

	return &Browser{
		records:  records,
		filtered: records,
		input:    input,
	}
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.clampScroll()
		return b, nil
	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b.updateInput(msg)
}

func (b *Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c", "esc"))):
		return b, tea.Quit
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "ctrl+p"))):
		b.moveCursor(-1)
		return b, nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "ctrl+n"))):
		b.moveCursor(1)
		return b, nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("pgup"))):
		b.moveCursor(-b.listHeight())
		return b, nil
	case key.Matches(msg, key.NewBinding(key.WithKeys("pgdown"))):
		b.moveCursor(b.listHeight())
		return b, nil
	}

	return b.updateInput(msg)
}

func (b *Browser) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	b.refilter()
	return b, cmd
}

// refilter recomputes the visible rows from the input query. Whitespace
// separates AND-combined substring patterns; an empty query shows all tasks.
func (b *Browser) refilter() {
	patterns := strings.Fields(b.input.Value())
	if len(patterns) == 0 {
		b.filtered = b.records
		b.clampCursor()
		return
	}

	results, err := search.Run(b.records, search.Filter{Patterns: patterns})
	if err != nil {
		// Patterns never fail to compile; keep the previous rows.
		return
	}
	b.filtered = make([]taskfile.Record, len(results))
	for i, res := range results {
		b.filtered[i] = res.Record
	}
	b.clampCursor()
}

// View implements tea.Model.
func (b *Browser) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	var sb strings.Builder
	sb.WriteString(browserTitleStyle.Render("Taskfile Browser"))
	sb.WriteString("\n")
	sb.WriteString(b.input.View())
	sb.WriteString("\n\n")

	height := b.listHeight()
	end := min(b.scroll+height, len(b.filtered))
	for i := b.scroll; i < end; i++ {
		sb.WriteString(b.renderRow(i))
		sb.WriteString("\n")
	}
	for i := end - b.scroll; i < height; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(statusStyle.Render(
		fmt.Sprintf("%d/%d tasks  ↑/↓ move  esc quit", len(b.filtered), len(b.records))))
	return sb.String()
}

func (b *Browser) renderRow(i int) string {
	rec := b.filtered[i]
	// Truncate the description before styling so the cut never lands
	// inside an ANSI escape sequence. Group width is display cells,
	// not bytes.
	avail := b.width - 24 - lipgloss.Width(rec.Group) - 8
	desc := truncate(rec.Description, avail)

	name := nameStyle.Render(fmt.Sprintf("%-24s", rec.FullName()))
	meta := metaStyle.Render("[" + rec.Group + "]")
	line := fmt.Sprintf("  %s %s %s", name, meta, desc)
	if i == b.cursor {
		return selectedStyle.Render(line)
	}
	return line
}

func (b *Browser) listHeight() int {
	h := b.height - chrome
	if h < 1 {
		return 1
	}
	return h
}

func (b *Browser) moveCursor(delta int) {
	b.cursor += delta
	b.clampCursor()
}

func (b *Browser) clampCursor() {
	if b.cursor >= len(b.filtered) {
		b.cursor = len(b.filtered) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	b.clampScroll()
}

func (b *Browser) clampScroll() {
	height := b.listHeight()
	if b.cursor < b.scroll {
		b.scroll = b.cursor
	}
	if b.cursor >= b.scroll+height {
		b.scroll = b.cursor - height + 1
	}
	if b.scroll < 0 {
		b.scroll = 0
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
