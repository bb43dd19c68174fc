// Package tui is the interactive list: browse, filter, add and delete items.
// It holds no state of its own beyond the widgets; every change goes straight
// through the item store and is persisted before the screen updates.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/nottodo/internal/itemstore"
	"github.com/idilsaglam/nottodo/internal/model"
	"github.com/idilsaglam/nottodo/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return i.CreatedAt }
func (i listItem) FilterValue() string { return i.Text }

// Single-line rows.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	prefix := strings.Repeat(" ", lipgloss.Width(t.Cursor))
	text := it.Text
	if index == m.Index() {
		prefix = t.Selected.Render(t.Cursor)
		text = t.Selected.Render(text)
	}
	fmt.Fprintf(w, "%s%s %s", prefix, t.Muted.Render(t.SymItem), text)
}

type keyMap struct {
	Add, Delete, Submit, Cancel, Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete: key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type Model struct {
	ctx   context.Context
	store *itemstore.Store
	log   *zap.Logger
	keys  keyMap

	list   list.Model
	input  textinput.Model
	adding bool

	notice string // one-line feedback under the list
	err    error  // last storage failure

	width, height int
}

func New(ctx context.Context, store *itemstore.Store, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	t := ui.Current()
	keys := newKeyMap()

	l := list.New(toListItems(store.Items()), itemDelegate{}, 0, 0)
	l.Title = ui.Heading
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.FilterInput.Prompt = "/ "
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Add, keys.Delete} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.Add, keys.Delete} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = ui.Placeholder
	ti.CharLimit = model.MaxTextLen

	return Model{
		ctx:    ctx,
		store:  store,
		log:    log,
		keys:   keys,
		list:   l,
		input:  ti,
		width:  80,
		height: 24,
	}
}

// Run starts the program on the alt screen and blocks until the user quits.
func Run(ctx context.Context, store *itemstore.Store, log *zap.Logger) error {
	p := tea.NewProgram(New(ctx, store, log), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.adding {
		return m.updateAdding(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(km, m.keys.Quit) && !(km.String() == "esc" && m.list.FilterState() == list.FilterApplied):
			return m, tea.Quit
		case key.Matches(km, m.keys.Add):
			if m.store.Full() {
				m.notice = itemstore.DeclineFull.String()
				return m, nil
			}
			m.adding = true
			m.notice = ""
			m.input.SetValue("")
			m.resize()
			cmd := m.input.Focus()
			return m, cmd
		case key.Matches(km, m.keys.Delete):
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Submit):
			text := m.input.Value()
			if d := m.store.Check(text); d != itemstore.Accepted {
				// submit is disabled while the input is invalid
				m.notice = d.String()
				return m, nil
			}
			it, added, err := m.store.Add(m.ctx, text)
			if err != nil {
				m.log.Error("add failed", zap.Error(err))
				m.err = err
				m.notice = "save failed: " + err.Error()
				return m, nil
			}
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			m.resize()
			if !added {
				return m, nil
			}
			m.notice = ""
			m.err = nil
			cmd := m.list.SetItems(toListItems(m.store.Items()))
			m.selectID(it.ID)
			return m, cmd
		case key.Matches(km, m.keys.Cancel):
			m.adding = false
			m.notice = ""
			m.input.Blur()
			m.input.SetValue("")
			m.resize()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	sel, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	removed, err := m.store.Delete(m.ctx, sel.ID)
	if err != nil {
		m.log.Error("delete failed", zap.Int64("id", sel.ID), zap.Error(err))
		m.err = err
		m.notice = "save failed: " + err.Error()
		return m, nil
	}
	m.err = nil
	m.notice = ""
	if removed {
		m.notice = "deleted " + sel.Text
	}
	cmd := m.list.SetItems(toListItems(m.store.Items()))
	return m, cmd
}

func (m *Model) selectID(id int64) {
	for i, it := range m.list.Items() {
		if li, ok := it.(listItem); ok && li.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// chrome is the rows taken by everything except the list.
func (m Model) chrome() int {
	rows := 5 // border, capacity, notice, footer
	if m.adding {
		rows += 4
	}
	return rows
}

func (m *Model) resize() {
	m.list.SetSize(max(m.width-4, 10), max(m.height-m.chrome(), 3))
}

func (m Model) View() string {
	t := ui.Current()

	var body string
	if m.store.Len() == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left,
			t.Title.Render(ui.Heading),
			"",
			t.Muted.Render(ui.EmptyTitle),
			t.Muted.Render(ui.EmptyHint),
			"",
			t.Help.Render("a add • q quit"),
		)
	} else {
		body = m.list.View()
	}

	lines := []string{body, t.Accent.Render(ui.CapacityBar(m.store.Len(), model.MaxItems))}
	if m.adding {
		box := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		lines = append(lines, box.Render("Add new item\n"+m.input.View()))
	}
	switch {
	case m.notice != "" && m.err != nil:
		lines = append(lines, t.Error.Render(m.notice))
	case m.notice != "":
		lines = append(lines, t.Warn.Render(m.notice))
	case m.store.Full():
		lines = append(lines, t.Muted.Render(itemstore.DeclineFull.String()))
	}
	lines = append(lines, t.Muted.Render(ui.Tagline))
	return ui.Panel(lines)
}

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{it})
	}
	return out
}
