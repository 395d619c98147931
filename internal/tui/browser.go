// Package tui provides an interactive terminal browser for composite
// material trees.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kherring/matterlab/internal/matter"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	marker = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
)

// row is one visible line of the flattened tree.
type row struct {
	node  matter.Node
	depth int
	path  string
}

type model struct {
	name      string
	root      matter.Node
	rows      []row
	cursor    int
	collapsed map[string]bool
}

// NewBrowser creates a browser over the given object.
func NewBrowser(name string, root matter.Node) tea.Model {
	m := model{
		name:      name,
		root:      root,
		collapsed: make(map[string]bool),
	}
	m.rows = m.flatten()
	return m
}

// Run starts the browser and blocks until the user quits.
func Run(name string, root matter.Node) error {
	_, err := tea.NewProgram(NewBrowser(name, root), tea.WithAltScreen()).Run()
	return err
}

func (m model) flatten() []row {
	var rows []row
	var walk func(n matter.Node, depth int, path string)
	walk = func(n matter.Node, depth int, path string) {
		rows = append(rows, row{node: n, depth: depth, path: path})
		c, ok := n.(*matter.Composite)
		if !ok || m.collapsed[path] {
			return
		}
		for i, child := range c.Components() {
			walk(child, depth+1, fmt.Sprintf("%s/%d", path, i))
		}
	}
	walk(m.root, 0, "0")
	return rows
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter", " ":
		r := m.rows[m.cursor]
		if _, ok := r.node.(*matter.Composite); ok {
			m.collapsed[r.path] = !m.collapsed[r.path]
			m.rows = m.flatten()
			if m.cursor >= len(m.rows) {
				m.cursor = len(m.rows) - 1
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render(m.name) + dim.Render("  (enter: fold, q: quit)") + "\n\n")

	for i, r := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = marker.Render("> ")
		}
		indent := strings.Repeat("  ", r.depth)
		b.WriteString(prefix + indent + m.label(r) + "\n")
	}

	b.WriteString("\n" + m.detail(m.rows[m.cursor].node))
	return b.String()
}

func (m model) label(r row) string {
	if c, ok := r.node.(*matter.Composite); ok {
		state := "▾"
		if m.collapsed[r.path] {
			state = "▸"
		}
		return yellow.Render(fmt.Sprintf("%s composite  %d layers  %.3f kg", state, c.Len(), c.Mass()))
	}
	return green.Render(fmt.Sprintf("· %s  %.3f kg", leafName(r.node), r.node.Mass()))
}

func (m model) detail(n matter.Node) string {
	var b strings.Builder
	b.WriteString(dim.Render("selected") + "\n")
	b.WriteString(fmt.Sprintf("  mass     %s\n", white.Render(fmt.Sprintf("%.3f kg", n.Mass()))))
	b.WriteString(fmt.Sprintf("  density  %s\n", white.Render(fmt.Sprintf("%.1f kg/m3", n.Density()))))
	if t, ok := n.Temperature(); ok {
		b.WriteString(fmt.Sprintf("  temp     %s\n", white.Render(fmt.Sprintf("%.1f K", t))))
	} else {
		b.WriteString(fmt.Sprintf("  temp     %s\n", dim.Render("ambient")))
	}

	type share struct {
		name string
		p    float64
	}
	var shares []share
	for s, p := range n.Constituents() {
		shares = append(shares, share{s.Name, p})
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].p > shares[j].p })
	for _, sh := range shares {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", sh.name, white.Render(fmt.Sprintf("%5.1f%%", sh.p*100))))
	}
	return b.String()
}

func leafName(n matter.Node) string {
	best, bestP := "mixture", -1.0
	for s, p := range n.Constituents() {
		if p > bestP {
			best, bestP = s.Name, p
		}
	}
	return best
}
