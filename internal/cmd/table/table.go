// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/agentstation/fieldscope/internal/cmd/emoji"
	"github.com/agentstation/fieldscope/pkg/constants"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// FieldsToTableData converts field records to table format.
func FieldsToTableData(records []lookup.FieldRecord) Data {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.SearchField, rec.Application, emoji.YesNo(rec.AllowsWildcards)})
	}
	return Data{
		Headers:         []string{constants.ColumnSearchField, constants.ColumnApplication, "Allows Wildcards"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter},
	}
}

// ComplianceToTableData converts a compliance table to table format. Wide
// output spells out the status next to its symbol.
func ComplianceToTableData(t lookup.ComplianceTable, wide bool) Data {
	headers := []string{constants.ColumnSearchField, constants.ColumnApplication, constants.ColumnCompliant}
	align := []Align{AlignLeft, AlignLeft, AlignCenter}
	if wide {
		headers = append(headers, "Status")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := []string{row.Field, row.Application, emoji.ForCompliance(row.Status)}
		if wide {
			cells = append(cells, row.Status.String())
		}
		rows = append(rows, cells)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// NamesToTableData renders a list of names under a single header.
func NamesToTableData(header string, names []string) Data {
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n})
	}
	return Data{Headers: []string{header}, Rows: rows}
}

// StandardsToTableData lists standards with their definition and tallies.
func StandardsToTableData(e *lookup.Engine) Data {
	names := e.Standards()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		def, _ := e.Definition(name)
		counts := e.ComplianceTable(name).Counts()
		rows = append(rows, []string{
			name,
			def,
			strconv.Itoa(counts.Compliant),
			strconv.Itoa(counts.NonCompliant),
			strconv.Itoa(counts.Unknown),
		})
	}
	return Data{
		Headers:         []string{constants.ColumnStandard, constants.ColumnDefinition, emoji.Compliant, emoji.NonCompliant, emoji.Unknown},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}
