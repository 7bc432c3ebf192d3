package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fieldscope/internal/cmd/output"
	"github.com/agentstation/fieldscope/internal/cmd/table"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

func sampleData() output.Data {
	return output.Data{
		Title:       "Allows wildcards",
		Description: "Wildcards should be allowed",
		Headers:     []string{"Search Field", "App/Modal", "Compliant"},
		Rows: [][]string{
			{"Name", "Donors", "✅"},
			{"Code", "Donors", "❌"},
		},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignLeft, table.AlignCenter},
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, sampleData()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Allows wildcards\n"))
	assert.Contains(t, out, "Wildcards should be allowed")
	assert.Contains(t, out, "Donors")
	assert.Contains(t, out, "✅")
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	d := output.Data{Headers: []string{"App/Modal"}, Empty: "No data found for selected app/modal"}
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, d))
	assert.Equal(t, "No data found for selected app/modal\n", buf.String())
}

func TestTableFormatterStructFallback(t *testing.T) {
	var buf bytes.Buffer
	stats := lookup.Stats{Records: 12, Fields: 12, Applications: 7, Standards: 2, Evaluations: 16}
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, stats))
	assert.Contains(t, buf.String(), "Applications")
	assert.Contains(t, buf.String(), "16")
}

func TestTableFormatterSkipsUnexportedFields(t *testing.T) {
	var buf bytes.Buffer
	ct := lookup.NewEngine(nil, nil).ComplianceTable("x")
	assert.NotPanics(t, func() {
		_ = output.NewFormatter(output.FormatTable).Format(&buf, ct)
	})
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	rec := lookup.FieldRecord{Application: "Donors", SearchField: "Name", AllowsWildcards: true}
	require.NoError(t, output.NewFormatter(output.FormatJSON).Format(&buf, rec))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Donors", got["application"])
	assert.Equal(t, true, got["allows_wildcards"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	rows := []lookup.ComplianceRow{{Field: "Name", Application: "Donors", Status: lookup.Compliant}}
	require.NoError(t, output.NewFormatter(output.FormatYAML).Format(&buf, rows))
	assert.Contains(t, buf.String(), "field: Name")
	assert.Contains(t, buf.String(), "status: compliant")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatMarkdown).Format(&buf, sampleData()))

	out := buf.String()
	assert.Contains(t, out, "## Allows wildcards")
	assert.Contains(t, out, "Wildcards should be allowed")
	assert.Contains(t, out, "Search Field")
	assert.Contains(t, out, "|")
	assert.Contains(t, out, "Donors")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Format
		wantErr bool
	}{
		{"", "", false},
		{"JSON", output.FormatJSON, false},
		{"md", output.FormatMarkdown, false},
		{"markdown", output.FormatMarkdown, false},
		{"wide", output.FormatWide, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestRender(t *testing.T) {
	raw := []lookup.FieldRecord{{Application: "Agreements", SearchField: "Agreement ID"}}
	tbl := output.FromTable(table.FieldsToTableData(raw))

	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, "json", tbl, raw))
	var decoded []lookup.FieldRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, raw, decoded)

	buf.Reset()
	require.NoError(t, output.Render(&buf, "", tbl, raw))
	assert.Contains(t, buf.String(), "Agreement ID")
	assert.Contains(t, buf.String(), "No")

	buf.Reset()
	require.NoError(t, output.Render(&buf, "md", tbl, raw))
	assert.Contains(t, buf.String(), "|")

	assert.Error(t, output.Render(&buf, "xml", tbl, raw))
}
