package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Session commands accepted from the client.
const (
	CommandAppQuery       = "app_query"
	CommandFieldQuery     = "field_query"
	CommandSelectApp      = "select_app"
	CommandSelectField    = "select_field"
	CommandSelectStandard = "select_standard"
	CommandSwitchTab      = "switch_tab"
	CommandFocus          = "focus"
	CommandBlur           = "blur"
)

// Reply types sent to the client.
const (
	ReplyState = "state"
	ReplyError = "error"
)

// Command is one client request. Value holds the query text, the selected
// name, or the tab; Input names the box for focus and blur ("apps" or
// "fields").
type Command struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Input string `json:"input,omitempty"`
}

// Dropdown is the candidate list of one input.
type Dropdown struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
	Visible    bool     `json:"visible"`
}

// State is a snapshot of a session, sent after every command.
type State struct {
	Tab                 string        `json:"tab"`
	SelectedApplication string        `json:"selected_application"`
	Standard            string        `json:"standard"`
	FieldPlaceholder    string        `json:"field_placeholder"`
	Applications        Dropdown      `json:"applications"`
	Fields              Dropdown      `json:"fields"`
	Standards           []string      `json:"standards"`
	Result              lookup.Result `json:"result"`
}

// Reply is one frame sent to a session client.
type Reply struct {
	Type  string `json:"type"`
	State *State `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

// Snapshot captures the state of s.
func Snapshot(s *lookup.Session) State {
	return State{
		Tab:                 s.Tab().String(),
		SelectedApplication: s.SelectedApplication(),
		Standard:            s.Standard(),
		FieldPlaceholder:    s.FieldPlaceholder(),
		Applications: Dropdown{
			Query:      s.ApplicationQuery(),
			Candidates: s.Candidates(lookup.InputApplication),
			Visible:    s.DropdownVisible(lookup.InputApplication),
		},
		Fields: Dropdown{
			Query:      s.FieldQuery(),
			Candidates: s.Candidates(lookup.InputField),
			Visible:    s.DropdownVisible(lookup.InputField),
		},
		Standards: s.Engine().Standards(),
		Result:    s.Result(),
	}
}

// Apply runs one command against s.
func Apply(s *lookup.Session, cmd Command) error {
	switch cmd.Type {
	case CommandAppQuery:
		s.SetApplicationQuery(cmd.Value)
	case CommandFieldQuery:
		s.SetFieldQuery(cmd.Value)
	case CommandSelectApp:
		s.SelectApplication(cmd.Value)
	case CommandSelectField:
		s.SelectField(cmd.Value)
	case CommandSelectStandard:
		s.SelectStandard(cmd.Value)
	case CommandSwitchTab:
		tab, err := lookup.ParseTab(cmd.Value)
		if err != nil {
			return err
		}
		s.SwitchTab(tab)
	case CommandFocus, CommandBlur:
		in, err := parseInput(cmd.Input)
		if err != nil {
			return err
		}
		if cmd.Type == CommandFocus {
			s.Focus(in)
		} else {
			// A socket client has no click to wait for.
			s.Blur(in)
			s.HidePending()
		}
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}
	return nil
}

func parseInput(name string) (lookup.Input, error) {
	switch name {
	case "apps", "applications", "app":
		return lookup.InputApplication, nil
	case "fields", "field":
		return lookup.InputField, nil
	default:
		return lookup.InputApplication, fmt.Errorf("unknown input %q", name)
	}
}

// ServeSession drives one lookup session over conn until the client goes
// away. It blocks; call it from the handler goroutine.
func ServeSession(conn *websocket.Conn, session *lookup.Session, logger *zerolog.Logger) {
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := writeState(conn, session); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("Session read error")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			if writeReply(conn, Reply{Type: ReplyError, Error: "malformed command: " + err.Error()}) != nil {
				return
			}
			continue
		}
		if err := Apply(session, cmd); err != nil {
			if writeReply(conn, Reply{Type: ReplyError, Error: err.Error()}) != nil {
				return
			}
			continue
		}
		if err := writeState(conn, session); err != nil {
			return
		}
	}
}

func writeState(conn *websocket.Conn, s *lookup.Session) error {
	state := Snapshot(s)
	return writeReply(conn, Reply{Type: ReplyState, State: &state})
}

func writeReply(conn *websocket.Conn, r Reply) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(r)
}
