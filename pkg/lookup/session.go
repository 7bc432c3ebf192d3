package lookup

import (
	"fmt"
	"slices"
	"strings"
)

// Tab is the active panel of a session.
type Tab int

const (
	// TabSearch looks up fields and applications.
	TabSearch Tab = iota
	// TabStandards shows compliance tables.
	TabStandards
)

// String implements fmt.Stringer.
func (t Tab) String() string {
	if t == TabStandards {
		return "standards"
	}
	return "search"
}

// ParseTab parses "search" or "standards".
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "search", "fields", "field":
		return TabSearch, nil
	case "standards", "standard":
		return TabStandards, nil
	default:
		return TabSearch, fmt.Errorf("unknown tab %q", s)
	}
}

// Mode identifies which query produced the current result.
type Mode int

const (
	// ModeNone means nothing has been selected yet.
	ModeNone Mode = iota
	// ModeField shows a single field record.
	ModeField
	// ModeApplication shows every field of an application.
	ModeApplication
	// ModeStandard shows a compliance table.
	ModeStandard
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeField:
		return "field"
	case ModeApplication:
		return "application"
	case ModeStandard:
		return "standard"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Input identifies one of the two autocomplete inputs.
type Input int

const (
	// InputApplication is the application/modal search box.
	InputApplication Input = iota
	// InputField is the field search box.
	InputField
)

// Placeholder and empty-state messages shown by the widget.
const (
	MessageSearchPrompt     = "Search for a field or app/modal to view details"
	MessageStandardPrompt   = "Select a standard to view compliant fields"
	MessageNoField          = "No data found for selected field"
	MessageNoApplication    = "No data found for selected app/modal"
	MessageNoEvaluations    = "No evaluations found for selected standard"
	PlaceholderFields       = "Type to search fields..."
	placeholderFieldsInApp  = "Type to search fields in %s..."
	PlaceholderApplications = "Type to search apps/modals..."
)

// Result is the outcome of the most recent selection.
type Result struct {
	Mode       Mode             `json:"mode" yaml:"mode"`
	Query      string           `json:"query,omitempty" yaml:"query,omitempty"`
	Records    []FieldRecord    `json:"records,omitempty" yaml:"records,omitempty"`
	Compliance *ComplianceTable `json:"compliance,omitempty" yaml:"compliance,omitempty"`
	Message    string           `json:"message,omitempty" yaml:"message,omitempty"`
}

// Empty reports whether the result has nothing to display besides its message.
func (r Result) Empty() bool {
	return len(r.Records) == 0 && r.Compliance == nil
}

type dropdown struct {
	candidates  []string
	visible     bool
	pendingHide bool
}

// Session tracks one user's selection state over an Engine. A Session is
// not safe for concurrent use; give each user their own.
type Session struct {
	engine *Engine

	tab         Tab
	selectedApp string
	appQuery    string
	fieldQuery  string
	standard    string
	result      Result

	dropdowns [2]dropdown
}

// NewSession returns a session on the search tab with nothing selected.
func NewSession(engine *Engine) *Session {
	if engine == nil {
		engine = NewEngine(nil, nil)
	}
	s := &Session{engine: engine}
	s.reset(TabSearch)
	return s
}

// Engine returns the engine the session queries.
func (s *Session) Engine() *Engine {
	return s.engine
}

// Tab returns the active tab.
func (s *Session) Tab() Tab { return s.tab }

// SelectedApplication returns the selected application, or "" for none.
func (s *Session) SelectedApplication() string { return s.selectedApp }

// ApplicationQuery returns the text of the application input.
func (s *Session) ApplicationQuery() string { return s.appQuery }

// FieldQuery returns the text of the field input.
func (s *Session) FieldQuery() string { return s.fieldQuery }

// Standard returns the selected standard, or "".
func (s *Session) Standard() string { return s.standard }

// Result returns the current result.
func (s *Session) Result() Result { return s.result }

// FieldPlaceholder returns the hint shown in the empty field input.
func (s *Session) FieldPlaceholder() string {
	if s.selectedApp == "" {
		return PlaceholderFields
	}
	return fmt.Sprintf(placeholderFieldsInApp, s.selectedApp)
}

// Candidates returns the current candidate list of an input.
func (s *Session) Candidates(in Input) []string {
	return slices.Clone(s.dropdowns[in].candidates)
}

// DropdownVisible reports whether the candidate list of an input is shown.
func (s *Session) DropdownVisible(in Input) bool {
	return s.dropdowns[in].visible
}

// SetApplicationQuery updates the application input and refilters its candidates.
func (s *Session) SetApplicationQuery(q string) []string {
	s.appQuery = q
	return s.refilter(InputApplication)
}

// SetFieldQuery updates the field input and refilters its candidates,
// scoped to the selected application when there is one.
func (s *Session) SetFieldQuery(q string) []string {
	s.fieldQuery = q
	return s.refilter(InputField)
}

func (s *Session) refilter(in Input) []string {
	d := &s.dropdowns[in]
	var query string
	if in == InputApplication {
		query = s.appQuery
		d.candidates = s.engine.ApplicationCandidates(query)
	} else {
		query = s.fieldQuery
		d.candidates = s.engine.FieldCandidates(query, s.selectedApp)
	}
	d.visible = CandidatesVisible(query, d.candidates)
	d.pendingHide = false
	return slices.Clone(d.candidates)
}

// Focus reopens an input's candidate list when it already holds text and
// cancels any pending hide.
func (s *Session) Focus(in Input) {
	s.dropdowns[in].pendingHide = false
	query := s.fieldQuery
	if in == InputApplication {
		query = s.appQuery
	}
	if query != "" {
		s.refilter(in)
	}
}

// Blur records that an input lost focus. The candidate list stays visible,
// and selectable, until HidePending runs.
func (s *Session) Blur(in Input) {
	if s.dropdowns[in].visible {
		s.dropdowns[in].pendingHide = true
	}
}

// HidePending hides every candidate list whose input lost focus.
func (s *Session) HidePending() {
	for i := range s.dropdowns {
		if s.dropdowns[i].pendingHide {
			s.dropdowns[i].visible = false
			s.dropdowns[i].pendingHide = false
		}
	}
}

// Choose selects a visible candidate of an input, as a click on the list
// would. It reports false when the list is hidden or value is not listed.
func (s *Session) Choose(in Input, value string) (Result, bool) {
	d := s.dropdowns[in]
	if !d.visible || !slices.Contains(d.candidates, value) {
		return s.result, false
	}
	if in == InputApplication {
		return s.SelectApplication(value), true
	}
	return s.SelectField(value), true
}

// SelectApplication makes app the selected application. It narrows later
// field candidates to app's fields, clears the field input, and shows app's
// fields.
func (s *Session) SelectApplication(app string) Result {
	s.selectedApp = app
	s.appQuery = app
	s.fieldQuery = ""
	s.hide(InputApplication)
	s.dropdowns[InputField] = dropdown{}

	records := s.engine.FieldsForApplication(app)
	s.result = Result{Mode: ModeApplication, Query: app, Records: records}
	if len(records) == 0 {
		s.result.Message = MessageNoApplication
	}
	return s.result
}

// SelectField shows the record of the named field.
func (s *Session) SelectField(name string) Result {
	s.fieldQuery = name
	s.hide(InputField)

	s.result = Result{Mode: ModeField, Query: name}
	if rec, ok := s.engine.RecordForField(name); ok {
		s.result.Records = []FieldRecord{rec}
	} else {
		s.result.Message = MessageNoField
	}
	return s.result
}

// SelectStandard shows the compliance table of a standard. An empty name
// returns to the standards prompt.
func (s *Session) SelectStandard(name string) Result {
	s.standard = name
	if name == "" {
		s.result = Result{Mode: ModeNone, Message: MessageStandardPrompt}
		return s.result
	}

	table := s.engine.ComplianceTable(name)
	s.result = Result{Mode: ModeStandard, Query: name, Compliance: &table}
	if !table.Evaluated() {
		s.result.Message = MessageNoEvaluations
	}
	return s.result
}

// SwitchTab activates a tab and resets every input, the selected
// application and the result.
func (s *Session) SwitchTab(tab Tab) {
	s.reset(tab)
}

func (s *Session) reset(tab Tab) {
	s.tab = tab
	s.selectedApp = ""
	s.appQuery = ""
	s.fieldQuery = ""
	s.standard = ""
	s.dropdowns = [2]dropdown{}

	msg := MessageSearchPrompt
	if tab == TabStandards {
		msg = MessageStandardPrompt
	}
	s.result = Result{Mode: ModeNone, Message: msg}
}

func (s *Session) hide(in Input) {
	s.dropdowns[in].visible = false
	s.dropdowns[in].pendingHide = false
}
