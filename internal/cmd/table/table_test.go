package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fieldscope/internal/cmd/table"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

func testEngine() *lookup.Engine {
	return lookup.NewEngine(
		[]lookup.FieldRecord{
			{Application: "Donors", SearchField: "Name", AllowsWildcards: true},
			{Application: "Donors", SearchField: "Code"},
			{Application: "Log", SearchField: "Description"},
		},
		[]lookup.StandardRecord{
			{Standard: "Wildcards", Definition: "Wildcards should be allowed", SearchField: "Name", Application: "Donors", Compliant: lookup.Compliant},
			{Standard: "Wildcards", Definition: "Wildcards should be allowed", SearchField: "Code", Application: "Donors", Compliant: lookup.NonCompliant},
		},
	)
}

func TestFieldsToTableData(t *testing.T) {
	data := table.FieldsToTableData(testEngine().FieldsForApplication("Donors"))
	assert.Equal(t, []string{"Search Field", "App/Modal", "Allows Wildcards"}, data.Headers)
	assert.Equal(t, [][]string{{"Name", "Donors", "Yes"}, {"Code", "Donors", "No"}}, data.Rows)
	assert.Len(t, data.ColumnAlignment, 3)
}

func TestComplianceToTableData(t *testing.T) {
	ct := testEngine().ComplianceTable("Wildcards")

	data := table.ComplianceToTableData(ct, false)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"Name", "Donors", "✅"}, data.Rows[0])
	assert.Equal(t, []string{"Code", "Donors", "❌"}, data.Rows[1])
	assert.Equal(t, []string{"Description", "Log", "❓"}, data.Rows[2])

	wide := table.ComplianceToTableData(ct, true)
	assert.Len(t, wide.Headers, 4)
	assert.Equal(t, "unknown", wide.Rows[2][3])
}

func TestStandardsToTableData(t *testing.T) {
	data := table.StandardsToTableData(testEngine())
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"Wildcards", "Wildcards should be allowed", "1", "1", "1"}, data.Rows[0])
}

func TestNamesToTableData(t *testing.T) {
	data := table.NamesToTableData("App/Modal", []string{"A", "B"})
	assert.Equal(t, []string{"App/Modal"}, data.Headers)
	assert.Equal(t, [][]string{{"A"}, {"B"}}, data.Rows)
}
