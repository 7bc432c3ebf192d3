package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

func newModel(t *testing.T) Model {
	t.Helper()
	return New(lookup.NewSession(dataset.Sample().Engine()))
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: k}
}

func TestInitialView(t *testing.T) {
	m := newModel(t)
	view := m.View()
	assert.Contains(t, view, "Search")
	assert.Contains(t, view, "Standards")
	assert.Contains(t, view, lookup.MessageSearchPrompt)
	assert.Equal(t, lookup.InputApplication, m.focused)
}

func TestTypingFiltersApplications(t *testing.T) {
	m := press(t, newModel(t), typeText("check"))

	s := m.Session()
	assert.Equal(t, "check", s.ApplicationQuery())
	assert.Equal(t, []string{"Check Out", "Check in"}, s.Candidates(lookup.InputApplication))
	assert.True(t, s.DropdownVisible(lookup.InputApplication))
	assert.Contains(t, m.View(), "Check Out")
}

func TestChooseApplicationThenField(t *testing.T) {
	m := press(t, newModel(t),
		typeText("check"),
		key(tea.KeyEnter),
	)

	s := m.Session()
	assert.Equal(t, "Check Out", s.SelectedApplication())
	assert.Equal(t, lookup.ModeApplication, s.Result().Mode)
	assert.Len(t, s.Result().Records, 2)
	assert.Equal(t, "Check Out", m.appInput.Value())
	assert.Equal(t, "Type to search fields in Check Out...", m.fieldInput.Placeholder)
	assert.Contains(t, m.View(), "Scan or enter patron barcode")

	m = press(t, m,
		key(tea.KeyTab),
		typeText("patron"),
		key(tea.KeyEnter),
	)
	s = m.Session()
	assert.Equal(t, lookup.InputField, m.focused)
	require.Equal(t, lookup.ModeField, s.Result().Mode)
	assert.Equal(t, "Scan or enter patron barcode", s.Result().Records[0].SearchField)
}

func TestCursorMovesWithinDropdown(t *testing.T) {
	m := press(t, newModel(t),
		typeText("check"),
		key(tea.KeyDown),
		key(tea.KeyDown),
		key(tea.KeyEnter),
	)
	assert.Equal(t, "Check in", m.Session().SelectedApplication())
}

func TestEnterWithHiddenDropdownDoesNothing(t *testing.T) {
	m := press(t, newModel(t), key(tea.KeyEnter))
	assert.Equal(t, lookup.ModeNone, m.Session().Result().Mode)

	m = press(t, m, typeText("zzz"), key(tea.KeyEnter))
	assert.False(t, m.Session().DropdownVisible(lookup.InputApplication))
	assert.Equal(t, lookup.ModeNone, m.Session().Result().Mode)
}

func TestEscHidesDropdownThenQuits(t *testing.T) {
	m := press(t, newModel(t), typeText("agree"))
	require.True(t, m.Session().DropdownVisible(lookup.InputApplication))

	next, cmd := m.Update(key(tea.KeyEsc))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.Session().DropdownVisible(lookup.InputApplication))

	_, cmd = m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStandardsTab(t *testing.T) {
	m := press(t, newModel(t), typeText("check"), key(tea.KeyEnter), key(tea.KeyCtrlT))

	s := m.Session()
	assert.Equal(t, lookup.TabStandards, s.Tab())
	assert.Empty(t, s.SelectedApplication(), "switching tabs resets the selection")
	assert.Contains(t, m.View(), lookup.MessageStandardPrompt)

	m = press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	s = m.Session()
	assert.Equal(t, "Searching is case insensitive", s.Standard())
	require.NotNil(t, s.Result().Compliance)
	assert.Len(t, s.Result().Compliance.Rows, 12)

	view := m.View()
	assert.Contains(t, view, "Searching should be case insensitive")
	assert.Contains(t, view, "Compliant")

	m = press(t, m, key(tea.KeyCtrlT))
	assert.Equal(t, lookup.TabSearch, m.Session().Tab())
	assert.Equal(t, 0, m.standardCursor)
}

func TestReloadResetsSession(t *testing.T) {
	m := press(t, newModel(t), typeText("check"), key(tea.KeyEnter))
	old := m.Session()

	m = press(t, m, ReloadedMsg{Engine: dataset.Sample().Engine(), Origin: "sample"})
	assert.NotSame(t, old, m.Session())
	assert.Empty(t, m.Session().SelectedApplication())
	assert.Empty(t, m.appInput.Value())
	assert.True(t, strings.Contains(m.View(), "Catalog reloaded from sample"))
}
