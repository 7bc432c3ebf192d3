// Package tui is the terminal field browser: two autocomplete inputs over
// the field catalog on one tab, the standards and their compliance tables
// on the other. All selection logic lives in lookup.Session; this package
// only maps keys onto it and renders the state.
package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tabledata "github.com/agentstation/fieldscope/internal/cmd/table"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

const (
	maxColumnWidth = 48
	tableHeight    = 12
)

// ReloadedMsg tells the browser that a new engine was installed. The
// current selection is dropped.
type ReloadedMsg struct {
	Engine *lookup.Engine
	Origin string
}

// Model is the bubbletea model of the browser.
type Model struct {
	session *lookup.Session

	appInput   textinput.Model
	fieldInput textinput.Model
	focused    lookup.Input
	cursor     int

	standardCursor int

	results table.Model
	styles  Styles
	status  string

	width  int
	height int
}

// Compile-time interface check.
var _ tea.Model = Model{}

// New returns a browser over session.
func New(session *lookup.Session) Model {
	appInput := textinput.New()
	appInput.Prompt = "> "
	appInput.Placeholder = lookup.PlaceholderApplications
	appInput.CharLimit = 120
	appInput.Width = 48

	fieldInput := textinput.New()
	fieldInput.Prompt = "> "
	fieldInput.CharLimit = 120
	fieldInput.Width = 48

	m := Model{
		session:    session,
		appInput:   appInput,
		fieldInput: fieldInput,
		results: table.New(
			table.WithHeight(tableHeight),
			table.WithFocused(false),
		),
		styles: DefaultStyles(),
	}
	m.appInput.Focus()
	m.syncFromSession()
	return m
}

// Session returns the session the browser drives.
func (m Model) Session() *lookup.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case ReloadedMsg:
		m.session = lookup.NewSession(msg.Engine)
		m.status = fmt.Sprintf("Catalog reloaded from %s", msg.Origin)
		m.resetInputs()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			next := lookup.TabStandards
			if m.session.Tab() == lookup.TabStandards {
				next = lookup.TabSearch
			}
			m.session.SwitchTab(next)
			m.resetInputs()
			return m, nil
		}
		if m.session.Tab() == lookup.TabStandards {
			return m.updateStandards(msg)
		}
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	candidates := m.session.Candidates(m.focused)
	visible := m.session.DropdownVisible(m.focused)

	switch msg.String() {
	case "esc":
		if visible {
			m.session.Blur(m.focused)
			m.session.HidePending()
			return m, nil
		}
		return m, tea.Quit
	case "tab", "shift+tab":
		// Leaving an input with the keyboard has no pending click to wait for.
		m.session.Blur(m.focused)
		m.session.HidePending()
		if m.focused == lookup.InputApplication {
			m.focus(lookup.InputField)
		} else {
			m.focus(lookup.InputApplication)
		}
		m.session.Focus(m.focused)
		m.cursor = 0
		return m, nil
	case "up":
		if visible && m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if visible && m.cursor < len(candidates)-1 {
			m.cursor++
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	case "enter":
		if !visible || m.cursor >= len(candidates) {
			return m, nil
		}
		if _, ok := m.session.Choose(m.focused, candidates[m.cursor]); ok {
			m.cursor = 0
			m.syncFromSession()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == lookup.InputApplication {
		before := m.appInput.Value()
		m.appInput, cmd = m.appInput.Update(msg)
		if v := m.appInput.Value(); v != before {
			m.session.SetApplicationQuery(v)
			m.cursor = 0
		}
	} else {
		before := m.fieldInput.Value()
		m.fieldInput, cmd = m.fieldInput.Update(msg)
		if v := m.fieldInput.Value(); v != before {
			m.session.SetFieldQuery(v)
			m.cursor = 0
		}
	}
	return m, cmd
}

func (m Model) updateStandards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	standards := m.session.Engine().Standards()
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "up", "k":
		if m.standardCursor > 0 {
			m.standardCursor--
		}
	case "down", "j":
		if m.standardCursor < len(standards)-1 {
			m.standardCursor++
		}
	case "enter", " ":
		if m.standardCursor < len(standards) {
			m.session.SelectStandard(standards[m.standardCursor])
			m.syncFromSession()
		}
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) focus(in lookup.Input) {
	m.focused = in
	if in == lookup.InputApplication {
		m.fieldInput.Blur()
		m.appInput.Focus()
	} else {
		m.appInput.Blur()
		m.fieldInput.Focus()
	}
}

func (m *Model) resetInputs() {
	m.cursor = 0
	m.standardCursor = 0
	m.focus(lookup.InputApplication)
	m.syncFromSession()
}

// syncFromSession copies the session's inputs and result into the widgets.
func (m *Model) syncFromSession() {
	m.appInput.SetValue(m.session.ApplicationQuery())
	m.fieldInput.SetValue(m.session.FieldQuery())
	m.fieldInput.Placeholder = m.session.FieldPlaceholder()

	result := m.session.Result()
	var data tabledata.Data
	switch {
	case result.Compliance != nil:
		data = tabledata.ComplianceToTableData(*result.Compliance, true)
	case len(result.Records) > 0:
		data = tabledata.FieldsToTableData(result.Records)
	}
	m.setTable(data)
}

func (m *Model) setTable(data tabledata.Data) {
	widths := make([]int, len(data.Headers))
	for i, h := range data.Headers {
		widths[i] = lipgloss.Width(h)
	}
	rows := make([]table.Row, 0, len(data.Rows))
	for _, r := range data.Rows {
		for i, cell := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
		rows = append(rows, table.Row(r))
	}

	cols := make([]table.Column, len(data.Headers))
	for i, h := range data.Headers {
		cols[i] = table.Column{Title: h, Width: min(widths[i]+1, maxColumnWidth)}
	}

	// Rows go first so a narrower column set never indexes past them.
	m.results.SetRows(nil)
	m.results.SetColumns(cols)
	m.results.SetRows(rows)
	m.results.GotoTop()
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("fieldscope"))
	b.WriteString("\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	if m.session.Tab() == lookup.TabStandards {
		m.viewStandards(&b)
	} else {
		m.viewSearch(&b)
	}

	result := m.session.Result()
	if result.Message != "" {
		b.WriteString(m.styles.Message.Render(result.Message))
		b.WriteString("\n")
	}
	if !result.Empty() {
		b.WriteString(m.results.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help()))
	return b.String()
}

func (m Model) tabBar() string {
	search, standards := m.styles.InactiveTab, m.styles.InactiveTab
	if m.session.Tab() == lookup.TabStandards {
		standards = m.styles.ActiveTab
	} else {
		search = m.styles.ActiveTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		search.Render("Search"),
		standards.Render("Standards"),
	)
}

func (m Model) viewSearch(b *strings.Builder) {
	b.WriteString(m.styles.Label.Render("App/Modal"))
	b.WriteString(m.appInput.View())
	b.WriteString("\n")
	m.viewDropdown(b, lookup.InputApplication)

	b.WriteString(m.styles.Label.Render("Field"))
	b.WriteString(m.fieldInput.View())
	b.WriteString("\n")
	m.viewDropdown(b, lookup.InputField)
	b.WriteString("\n")
}

func (m Model) viewDropdown(b *strings.Builder, in lookup.Input) {
	if !m.session.DropdownVisible(in) {
		return
	}
	candidates := m.session.Candidates(in)
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		if in == m.focused && i == m.cursor {
			lines[i] = m.styles.Selected.Render("› " + c)
		} else {
			lines[i] = m.styles.Candidate.Render("  " + c)
		}
	}
	b.WriteString(m.styles.Dropdown.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
}

func (m Model) viewStandards(b *strings.Builder) {
	standards := m.session.Engine().Standards()
	if len(standards) == 0 {
		b.WriteString(m.styles.Message.Render("No standards loaded"))
		b.WriteString("\n\n")
		return
	}
	for i, s := range standards {
		switch {
		case i == m.standardCursor:
			b.WriteString(m.styles.Selected.Render("› " + s))
		default:
			b.WriteString(m.styles.Candidate.Render("  " + s))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if def, ok := m.session.Engine().Definition(m.session.Standard()); ok && def != "" {
		b.WriteString(m.styles.Definition.Render(def))
		b.WriteString("\n")
	}
}

func (m Model) help() string {
	if m.session.Tab() == lookup.TabStandards {
		return "↑/↓ choose • enter select • ctrl+t search • esc quit"
	}
	return "type to search • ↑/↓ choose • enter select • tab switch input • ctrl+t standards • esc quit"
}
