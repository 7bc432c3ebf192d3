package apps

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/logging"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

func sampleApp(format string) *application.Mock {
	engine := dataset.Sample().Engine()
	return &application.Mock{
		EngineFunc:       func(context.Context) (*lookup.Engine, error) { return engine, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestAppCommand(t *testing.T) {
	out, err := run(t, NewAppCommand(sampleApp("json")), "Check Out")
	require.NoError(t, err)

	var recs []lookup.FieldRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	assert.Equal(t, []lookup.FieldRecord{
		{Application: "Check Out", SearchField: "Scan or enter item barcode"},
		{Application: "Check Out", SearchField: "Scan or enter patron barcode"},
	}, recs)
}

func TestAppCommandTitle(t *testing.T) {
	out, err := run(t, NewAppCommand(sampleApp("table")), "Agreements")
	require.NoError(t, err)
	assert.Contains(t, out, "Agreements\n")
	assert.Contains(t, out, "Agreements Lines Search")
}

func TestAppCommandExactMatch(t *testing.T) {
	_, err := run(t, NewAppCommand(sampleApp("json")), "check out")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestAppsCommand(t *testing.T) {
	out, err := run(t, NewAppsCommand(sampleApp("json")))
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{
		"Add Donors Modal", "Add contacts modal", "Add interfaces modal",
		"Agreements", "Check Out", "Check in", "Circulation log",
	}, names)
}

func TestAppsCommandSearch(t *testing.T) {
	out, err := run(t, NewAppsCommand(sampleApp("json")), "--search", "MODAL", "--limit", "2")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"Add Donors Modal", "Add contacts modal"}, names)
}

func TestAppCommandLogsApplication(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	app := sampleApp("json")
	app.LoggerFunc = func() *zerolog.Logger { return testLogger.Logger }

	_, err := run(t, NewAppCommand(app), "Circulation log")
	require.NoError(t, err)
	testLogger.AssertContains(t, `"application":"Circulation log"`)
	testLogger.AssertContains(t, `"fields":3`)
}
