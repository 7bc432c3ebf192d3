package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope"
	"github.com/agentstation/fieldscope/cmd/application"
	ws "github.com/agentstation/fieldscope/internal/server/websocket"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

func newTestClient(t *testing.T) fieldscope.Client {
	t.Helper()
	logger := zerolog.Nop()
	c, err := fieldscope.New(fieldscope.WithSampleData(), fieldscope.WithLogger(&logger))
	if err != nil {
		t.Fatalf("fieldscope.New() failed: %v", err)
	}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return c
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	c := newTestClient(t)
	app := &application.Mock{
		ClientFunc: func(context.Context) (fieldscope.Client, error) { return c, nil },
	}

	srv, err := New(app, cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	srv.Start()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return srv, ts
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func get(t *testing.T, ts *httptest.Server, path string) (int, envelope) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode, env
}

func TestServerStartAndShutdown(t *testing.T) {
	srv, ts := newTestServer(t, DefaultConfig())

	code, env := get(t, ts, "/health")
	if code != http.StatusOK || env.Error != nil {
		t.Fatalf("health = %d %+v", code, env.Error)
	}
	code, _ = get(t, ts, "/api/v1/ready")
	if code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", code)
	}
	if srv.StartTime().IsZero() {
		t.Error("StartTime() is zero")
	}
}

func TestServerWithoutClient(t *testing.T) {
	srv, err := New(&application.Mock{}, Config{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = srv.Shutdown(context.Background()) }()

	if srv.config.PathPrefix != "/api/v1" {
		t.Errorf("PathPrefix = %q, want /api/v1", srv.config.PathPrefix)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}
}

func TestRoutes(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	tests := []struct {
		path string
		code int
		want any
	}{
		{"/api/v1/applications", 200, []string{
			"Add Donors Modal", "Add contacts modal", "Add interfaces modal",
			"Agreements", "Check Out", "Check in", "Circulation log",
		}},
		{"/api/v1/applications/" + url.PathEscape("Check Out") + "/fields", 200, []lookup.FieldRecord{
			{Application: "Check Out", SearchField: "Scan or enter item barcode"},
			{Application: "Check Out", SearchField: "Scan or enter patron barcode"},
		}},
		{"/api/v1/applications/Nope/fields", 404, nil},
		{"/api/v1/fields?app=" + url.QueryEscape("Circulation log"), 200, []string{"Description", "Item Barcode", "User Barcode"}},
		{"/api/v1/fields/" + url.PathEscape("Item Barcode"), 200, lookup.FieldRecord{Application: "Circulation log", SearchField: "Item Barcode"}},
		{"/api/v1/fields/" + url.PathEscape("item barcode"), 404, nil},
		{"/api/v1/standards/Nope", 404, nil},
		{"/api/v1/nothing-here", 404, nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, env := get(t, ts, tt.path)
			if code != tt.code {
				t.Fatalf("status = %d, want %d", code, tt.code)
			}
			if tt.code != 200 {
				if env.Error == nil || env.Error.Code != "NOT_FOUND" {
					t.Errorf("error = %+v, want NOT_FOUND", env.Error)
				}
				return
			}
			want, _ := json.Marshal(tt.want)
			if string(env.Data) != string(want) {
				t.Errorf("data = %s, want %s", env.Data, want)
			}
		})
	}
}

func TestStandardRoute(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	code, env := get(t, ts, "/api/v1/standards/"+url.PathEscape("Searching is case insensitive"))
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	var table lookup.ComplianceTable
	if err := json.Unmarshal(env.Data, &table); err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 12 {
		t.Fatalf("rows = %d, want 12", len(table.Rows))
	}
	if got := table.Counts(); got != (lookup.ComplianceCounts{Compliant: 3, NonCompliant: 1, Unknown: 8}) {
		t.Errorf("counts = %+v", got)
	}
}

func TestSuggestRoutes(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	var got struct {
		Candidates []string `json:"candidates"`
		Visible    bool     `json:"visible"`
	}

	_, env := get(t, ts, "/api/v1/suggest/fields?q=barcode&app="+url.QueryEscape("Circulation log"))
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if strings.Join(got.Candidates, ",") != "Item Barcode,User Barcode" || !got.Visible {
		t.Errorf("scoped suggestions = %+v", got)
	}

	_, env = get(t, ts, "/api/v1/suggest/applications?q=")
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Candidates) != 7 || got.Visible {
		t.Errorf("empty query suggestions = %+v", got)
	}
}

func TestCacheFlushedOnReload(t *testing.T) {
	srv, ts := newTestServer(t, DefaultConfig())

	get(t, ts, "/api/v1/applications")
	get(t, ts, "/api/v1/applications")
	if stats := srv.Cache().Stats(); stats.Items != 1 || stats.Hits != 1 {
		t.Fatalf("cache stats = %+v", stats)
	}

	c, _ := srv.app.Client(context.Background())
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if n := srv.Cache().Stats().Items; n != 0 {
		t.Errorf("cache items after reload = %d, want 0", n)
	}
}

func TestSessionWebSocket(t *testing.T) {
	_, ts := newTestServer(t, DefaultConfig())

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/session/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var reply ws.Reply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}

	if err := conn.WriteJSON(ws.Command{Type: ws.CommandAppQuery, Value: "check"}); err != nil {
		t.Fatal(err)
	}
	reply = ws.Reply{}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.State == nil || strings.Join(reply.State.Applications.Candidates, ",") != "Check Out,Check in" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestUpdatesFeedReceivesReload(t *testing.T) {
	srv, ts := newTestServer(t, DefaultConfig())

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/updates/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Now().Add(time.Second)
	for srv.hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	c, _ := srv.app.Client(context.Background())
	if err := c.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg ws.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == "catalog.reloaded" {
			return
		}
	}
}

func TestCORSEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSEnabled = true
	_, ts := newTestServer(t, cfg)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/fields", nil)
	req.Header.Set("Origin", "https://example.org")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin = %q", got)
	}
}
