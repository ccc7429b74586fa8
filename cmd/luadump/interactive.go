package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/luadump/chunk"
	"github.com/wippyai/luadump/disasm"
)

const listWidth = 28

type protoEntry struct {
	proto *chunk.Prototype
	label string
	lines []string
}

type focusArea int

const (
	focusList focusArea = iota
	focusCode
	focusSearch
)

type interactiveModel struct {
	err      error
	chunk    *chunk.Chunk
	filename string
	opt      chunk.Options
	protos   []protoEntry
	code     viewport.Model
	search   textinput.Model
	query    string
	selected int
	width    int
	height   int
	focus    focusArea
}

type loadedMsg struct {
	err    error
	chunk  *chunk.Chunk
	protos []protoEntry
}

func newInteractiveModel(filename string, opt chunk.Options) *interactiveModel {
	w, h := terminalSize()
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "opcode or text"
	search.Width = 30

	m := &interactiveModel{
		filename: filename,
		opt:      opt,
		search:   search,
		width:    w,
		height:   h,
	}
	m.code = viewport.New(m.codeWidth(), m.codeHeight())
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadChunk
}

func (m *interactiveModel) loadChunk() tea.Msg {
	c, err := chunk.DecodeFile(m.filename, m.opt)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{chunk: c, protos: collectPrototypes(&c.Main)}
}

// collectPrototypes flattens the tree in listing order.
func collectPrototypes(root *chunk.Prototype) []protoEntry {
	var out []protoEntry
	disasm.Walk(root, func(path []int, p *chunk.Prototype) bool {
		out = append(out, protoEntry{
			proto: p,
			label: protoLabel(path, p),
			lines: disasm.RenderPrototype(p, len(path) == 0),
		})
		return true
	})
	return out
}

func protoLabel(path []int, p *chunk.Prototype) string {
	if len(path) == 0 {
		return "main"
	}
	idx := make([]string, len(path))
	for i, n := range path {
		idx[i] = strconv.Itoa(n)
	}
	return strings.Repeat(" ", len(path)) + "fn " + strings.Join(idx, ".") +
		" :" + strconv.FormatUint(uint64(p.LineDefined), 10)
}

func (m *interactiveModel) codeWidth() int {
	return max(m.width-listWidth-3, 20)
}

func (m *interactiveModel) codeHeight() int {
	return max(m.height-5, 3)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.code.Width = m.codeWidth()
		m.code.Height = m.codeHeight()
		m.refresh()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.chunk = msg.chunk
		m.protos = msg.protos
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab":
			if m.focus == focusList {
				m.focus = focusCode
			} else {
				m.focus = focusList
			}
			return m, nil

		case "/":
			m.focus = focusSearch
			m.search.SetValue(m.query)
			return m, m.search.Focus()

		case "n":
			m.nextMatch()
			return m, nil

		case "up", "k":
			if m.focus == focusList {
				m.selectProto(m.selected - 1)
				return m, nil
			}

		case "down", "j":
			if m.focus == focusList {
				m.selectProto(m.selected + 1)
				return m, nil
			}
		}
	}

	if m.focus == focusCode {
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query = strings.TrimSpace(m.search.Value())
		m.search.Blur()
		m.focus = focusCode
		m.refresh()
		m.nextMatch()
		return m, nil
	case "esc":
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *interactiveModel) selectProto(i int) {
	if i < 0 || i >= len(m.protos) || i == m.selected {
		return
	}
	m.selected = i
	m.refresh()
	m.code.GotoTop()
}

// refresh re-renders the selected prototype into the viewport.
func (m *interactiveModel) refresh() {
	if len(m.protos) == 0 {
		return
	}
	lines := m.protos[m.selected].lines
	styled := make([]string, len(lines))
	for i, l := range lines {
		styled[i] = codeLine(l, m.query)
	}
	m.code.SetContent(strings.Join(styled, "\n"))
}

// codeLine renders one listing line for the code pane. Lines matching query
// are highlighted whole; others are styled by column before tabs expand.
func codeLine(l, query string) string {
	if query != "" && strings.Contains(strings.ToLower(l), strings.ToLower(query)) {
		return matchStyle.Render(expandTabs(l))
	}
	return expandTabs(styleLine(l))
}

// nextMatch scrolls to the next line matching the query, wrapping around.
func (m *interactiveModel) nextMatch() {
	if m.query == "" || len(m.protos) == 0 {
		return
	}
	lines := m.protos[m.selected].lines
	q := strings.ToLower(m.query)
	start := m.code.YOffset + 1
	for k := 0; k < len(lines); k++ {
		i := (start + k) % len(lines)
		if strings.Contains(strings.ToLower(lines[i]), q) {
			m.code.SetYOffset(i)
			return
		}
	}
}

// expandTabs replaces tabs with spaces so lipgloss measures widths correctly.
// ANSI escape sequences are copied through without advancing the column.
func expandTabs(s string) string {
	var b strings.Builder
	col := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			if j < len(s) {
				j++
			}
			b.WriteString(s[i:j])
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == '\t' {
			n := 8 - col%8
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.chunk == nil {
		return "Loading chunk..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Lua Bytecode"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	n := m.chunk.Main.Count()
	fmt.Fprintf(&b, "  %d function%s", n, plural(n))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, e := range m.protos {
		label := e.label
		if len(label) > listWidth-2 {
			label = label[:listWidth-2]
		}
		if i == m.selected {
			list.WriteString(selectedStyle.Render("> " + label))
		} else {
			list.WriteString("  " + label)
		}
		list.WriteString("\n")
	}
	left := lipgloss.NewStyle().Width(listWidth).Height(m.codeHeight()).Render(list.String())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " │ ", m.code.View()))
	b.WriteString("\n")

	switch m.focus {
	case focusSearch:
		b.WriteString(m.search.View())
	case focusCode:
		b.WriteString(helpStyle.Render("↑/↓ scroll • / search • n next • tab functions • q quit"))
	default:
		b.WriteString(helpStyle.Render("↑/↓ select • tab code • / search • n next • q quit"))
	}
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func runInteractive(filename string, opt chunk.Options) error {
	p := tea.NewProgram(newInteractiveModel(filename, opt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
