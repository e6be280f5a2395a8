package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RamakrishnanGH/sqlopsstudio/treeview"
)

const fetchTimeout = 5 * time.Second

// Run opens the tree browser on an already-constructed view.
func Run(ctx context.Context, view *treeview.TreeView, title string) error {
	program := tea.NewProgram(
		NewModel(view, title),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

// entry is one materialized node in the browser, mirroring the items the
// bridge handed out by handle.
type entry struct {
	item     treeview.ComponentItem
	depth    int
	expanded bool
	loaded   bool
	children []*entry
}

// Model implements the Bubble Tea model for the tree inspector. All tree
// state flows through the view bridge: expanding a row issues a child fetch,
// space toggles go through the checked-changed path.
type Model struct {
	view  *treeview.TreeView
	title string

	roots  []*entry
	rows   []*entry
	cursor int

	feed   viewport.Model
	width  int
	height int
	ready  bool

	err error
}

// NewModel builds the browser model.
func NewModel(view *treeview.TreeView, title string) *Model {
	return &Model{view: view, title: title}
}

type childrenMsg struct {
	parent *entry
	items  []treeview.ComponentItem
	err    error
}

// Init fetches the roots.
func (m *Model) Init() tea.Cmd {
	return m.loadChildren(nil)
}

func (m *Model) loadChildren(parent *entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		var handle treeview.TreeItemHandle
		if parent != nil {
			handle = parent.item.Handle
		}
		items, err := m.view.GetChildren(ctx, handle)
		return childrenMsg{parent: parent, items: items, err: err}
	}
}

// Update handles input and fetch results.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.feed = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.feed.Width = msg.Width
			m.feed.Height = msg.Height - 2
		}
		m.refreshRows()
		return m, nil

	case childrenMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		children := make([]*entry, 0, len(msg.items))
		depth := 0
		if msg.parent != nil {
			depth = msg.parent.depth + 1
		}
		for _, item := range msg.items {
			children = append(children, &entry{item: item, depth: depth})
		}
		if msg.parent == nil {
			m.roots = children
		} else {
			msg.parent.children = children
			msg.parent.loaded = true
			msg.parent.expanded = true
		}
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.refreshRows()
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.refreshRows()
	case "enter", "right", "l":
		if current := m.current(); current != nil {
			if current.item.CollapsibleState == treeview.CollapsibleStateNone {
				break
			}
			if current.expanded {
				current.expanded = false
				m.refreshRows()
				break
			}
			if current.loaded {
				current.expanded = true
				m.refreshRows()
				break
			}
			return m, m.loadChildren(current)
		}
	case "left", "h":
		if current := m.current(); current != nil && current.expanded {
			current.expanded = false
			m.refreshRows()
		}
	case " ", "space":
		if current := m.current(); current != nil && current.item.Checkable {
			current.item.Checked = !current.item.Checked
			checked := current.item.Checked
			handle := current.item.Handle
			m.refreshRows()
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
				defer cancel()
				_ = m.view.OnNodeCheckedChanged(ctx, handle, checked)
				return nil
			}
		}
	}
	return m, nil
}

func (m *Model) current() *entry {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *Model) refreshRows() {
	m.rows = m.rows[:0]
	var walk func(entries []*entry)
	walk = func(entries []*entry) {
		for _, e := range entries {
			m.rows = append(m.rows, e)
			if e.expanded {
				walk(e.children)
			}
		}
	}
	walk(m.roots)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.ready {
		m.feed.SetContent(m.renderRows())
	}
}

func (m *Model) renderRows() string {
	var buf strings.Builder
	for i, e := range m.rows {
		line := m.renderRow(e, i == m.cursor)
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.String()
}

func (m *Model) renderRow(e *entry, selected bool) string {
	marker := "  "
	switch {
	case e.item.CollapsibleState == treeview.CollapsibleStateNone:
	case e.expanded:
		marker = "▾ "
	default:
		marker = "▸ "
	}
	check := ""
	if e.item.Checkable {
		if e.item.Checked {
			check = "[x] "
		} else {
			check = "[ ] "
		}
	}
	line := strings.Repeat("  ", e.depth) + marker + check + e.item.Label
	switch {
	case selected:
		return styleCursor.Render(line)
	case e.item.Checked:
		return styleChecked.Render(line)
	case e.item.CollapsibleState != treeview.CollapsibleStateNone:
		return styleDir.Render(line)
	default:
		return line
	}
}

// View renders the browser.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	status := fmt.Sprintf("%d nodes cached | enter expand | space check | q quit", m.view.CachedCount())
	if m.err != nil {
		status = styleError.Render(m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render(m.title),
		m.feed.View(),
		styleStatus.Render(status),
	)
}
