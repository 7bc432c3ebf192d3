package lookup

// ComplianceTable joins the full field catalog against the evaluations of
// standard. Every field record yields exactly one row, in catalog order;
// fields the standard never evaluated are Unknown rather than NonCompliant.
// A standard with no evaluations still yields one Unknown row per field and
// an empty definition.
func (e *Engine) ComplianceTable(standard string) ComplianceTable {
	evals, evaluated := e.byStandard[standard]

	table := ComplianceTable{
		Standard:   standard,
		Definition: e.definitions[standard],
		Rows:       make([]ComplianceRow, 0, len(e.fields)),
		evaluated:  evaluated,
	}
	for _, rec := range e.fields {
		table.Rows = append(table.Rows, ComplianceRow{
			Field:       rec.SearchField,
			Application: rec.Application,
			Status:      evals[rec.Key()],
		})
	}
	return table
}

// StatusOf returns the compliance of one field of one application under standard.
func (e *Engine) StatusOf(standard, field, app string) Compliance {
	return e.byStandard[standard][Key{SearchField: field, Application: app}]
}
