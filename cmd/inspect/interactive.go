package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/dynvalue/decode"
	"github.com/wippyai/dynvalue/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// node is one row of the browsable tree.
type node struct {
	label    string // field name or positional index
	kind     string // shape kind
	leaf     string // rendering for leaf nodes
	children []*node
	depth    int
	expanded bool
}

type browseModel struct {
	err      error
	filename string
	root     *node
	filter   textinput.Model
	result   string
	cursor   int
	state    browseState
}

type browseState int

const (
	stateBrowse browseState = iota
	stateFilter
	stateDecoded
)

type loadedMsg struct {
	err  error
	root *node
}

func newBrowseModel(filename string) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	return &browseModel{filename: filename, filter: ti}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load
}

func (m *browseModel) load() tea.Msg {
	v, err := loadTree(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	root := buildNode("root", v.Shape, 0)
	root.expanded = true
	return loadedMsg{root: root}
}

func buildNode(label string, s value.Shape[struct{}], depth int) *node {
	n := &node{label: label, kind: value.Name[struct{}](s), depth: depth}
	switch sh := s.(type) {
	case value.Named[struct{}]:
		for _, f := range sh {
			n.children = append(n.children, buildNode(f.Name, f.Value.Shape, depth+1))
		}
	case value.Unnamed[struct{}]:
		for i, v := range sh {
			n.children = append(n.children, buildNode(fmt.Sprintf("[%d]", i), v.Shape, depth+1))
		}
	case value.VariantShape[struct{}]:
		n.kind = "variant " + sh.Name
		if named, ok := sh.Fields.(value.Named[struct{}]); ok {
			for _, f := range named {
				n.children = append(n.children, buildNode(f.Name, f.Value.Shape, depth+1))
			}
		} else {
			for i, v := range sh.Fields.Values() {
				n.children = append(n.children, buildNode(fmt.Sprintf("[%d]", i), v.Shape, depth+1))
			}
		}
	case value.BitSeq[struct{}]:
		n.leaf = sh.Bits.String()
	case value.Prim[struct{}]:
		n.leaf = value.PrimitiveString(sh.Value)
	}
	return n
}

// visible flattens the tree into the rows currently on screen.
func (m *browseModel) visible() []*node {
	var out []*node
	var walk func(*node)
	filter := strings.ToLower(m.filter.Value())
	walk = func(n *node) {
		if filter == "" || matches(n, filter) {
			out = append(out, n)
		}
		if n.expanded || filter != "" {
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	if m.root != nil {
		walk(m.root)
	}
	return out
}

func matches(n *node, filter string) bool {
	return strings.Contains(strings.ToLower(n.label), filter) ||
		strings.Contains(strings.ToLower(n.leaf), filter) ||
		strings.Contains(strings.ToLower(n.kind), filter)
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "enter", "esc":
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
				m.filter.Blur()
				m.state = stateBrowse
				m.cursor = 0
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}

		case "enter", " ":
			if m.state == stateDecoded {
				m.state = stateBrowse
				m.result = ""
				return m, nil
			}
			rows := m.visible()
			if m.cursor < len(rows) {
				rows[m.cursor].expanded = !rows[m.cursor].expanded
			}

		case "/":
			m.state = stateFilter
			m.filter.Focus()
			return m, textinput.Blink

		case "d":
			return m, m.decodeTree

		case "esc":
			if m.state == stateDecoded {
				m.state = stateBrowse
				m.result = ""
			}
			m.filter.SetValue("")
			m.cursor = 0
		}

	case loadedMsg:
		m.err = msg.err
		m.root = msg.root

	case decodedMsg:
		m.err = msg.err
		m.result = msg.result
		m.state = stateDecoded
	}

	return m, nil
}

type decodedMsg struct {
	err    error
	result string
}

func (m *browseModel) decodeTree() tea.Msg {
	v, err := loadTree(m.filename)
	if err != nil {
		return decodedMsg{err: err}
	}
	var out any
	if err := decode.Unmarshal(v, &out); err != nil {
		return decodedMsg{err: err}
	}
	return decodedMsg{result: fmt.Sprintf("%#v", out)}
}

func (m *browseModel) View() string {
	if m.err != nil && m.state != stateDecoded {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.root == nil {
		return "Loading tree..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Value Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.state == stateDecoded {
		b.WriteString("Decoded Go value:\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
		return b.String()
	}

	rows := m.visible()
	for i, n := range rows {
		line := strings.Repeat("  ", n.depth) + m.formatNode(n)
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			b.WriteString(selectedStyle.Render(cursor + line))
		} else {
			b.WriteString(cursor + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateFilter {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		if m.filter.Value() != "" {
			b.WriteString(helpStyle.Render("filter: "+m.filter.Value()) + "\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ move • enter expand • / filter • d decode • q quit"))
	}
	return b.String()
}

func (m *browseModel) formatNode(n *node) string {
	marker := "  "
	if len(n.children) > 0 {
		if n.expanded {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}
	line := marker + nameStyle.Render(n.label) + " " + kindStyle.Render(n.kind)
	if n.leaf != "" {
		line += " = " + n.leaf
	} else if len(n.children) > 0 && !n.expanded {
		line += fmt.Sprintf(" (%d)", len(n.children))
	}
	return line
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowseModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
