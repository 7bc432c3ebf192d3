package fields

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/errors"
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

func TestFieldCommand(t *testing.T) {
	out, err := run(t, NewFieldCommand(sampleApp("json")), "Item Barcode")
	require.NoError(t, err)

	var rec lookup.FieldRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, lookup.FieldRecord{Application: "Circulation log", SearchField: "Item Barcode"}, rec)
}

func TestFieldCommandTable(t *testing.T) {
	out, err := run(t, NewFieldCommand(sampleApp("table")), "Agreements Search")
	require.NoError(t, err)
	assert.Contains(t, out, "Agreements Search")
	assert.Contains(t, out, "Yes")
}

func TestFieldCommandNotFound(t *testing.T) {
	_, err := run(t, NewFieldCommand(sampleApp("table")), "item barcode")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFieldCommandAll(t *testing.T) {
	out, err := run(t, NewFieldCommand(sampleApp("json")), "Description", "--all")
	require.NoError(t, err)

	var recs []lookup.FieldRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	assert.Len(t, recs, 1)
}

func TestFieldsCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "all sorted",
			args: []string{"--limit", "2"},
			want: []string{"Add Donors Modal: Code", "Add Donors Modal: Name"},
		},
		{
			name: "scoped to app in table order",
			args: []string{"--app", "Circulation log"},
			want: []string{"Description", "Item Barcode", "User Barcode"},
		},
		{
			name: "search",
			args: []string{"--search", "PATRON"},
			want: []string{"Scan or enter patron barcode"},
		},
		{
			name: "no match",
			args: []string{"--search", "zzz"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, NewFieldsCommand(sampleApp("json")), tt.args...)
			require.NoError(t, err)

			var got []string
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsCommandUnknownApp(t *testing.T) {
	_, err := run(t, NewFieldsCommand(sampleApp("json")), "--app", "Nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestFieldsCommandEmptyTable(t *testing.T) {
	out, err := run(t, NewFieldsCommand(sampleApp("table")), "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No fields found")
}
