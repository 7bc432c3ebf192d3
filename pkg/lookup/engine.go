package lookup

import (
	"slices"
	"sort"
)

// Engine answers queries over a loaded field catalog and standards catalog.
// It is immutable after NewEngine returns and safe for concurrent readers.
type Engine struct {
	fields    []FieldRecord
	standards []StandardRecord

	fieldNames       []string
	applicationNames []string
	standardNames    []string
	definitions      map[string]string
	byStandard       map[string]map[Key]Compliance
}

// NewEngine copies the two tables and derives the field, application and
// standard indices. Either table may be empty.
func NewEngine(fields []FieldRecord, standards []StandardRecord) *Engine {
	e := &Engine{
		fields:      slices.Clone(fields),
		standards:   slices.Clone(standards),
		definitions: make(map[string]string),
		byStandard:  make(map[string]map[Key]Compliance),
	}
	if e.fields == nil {
		e.fields = []FieldRecord{}
	}
	if e.standards == nil {
		e.standards = []StandardRecord{}
	}

	e.fieldNames = distinctSorted(e.fields, func(r FieldRecord) string { return r.SearchField })
	e.applicationNames = distinctSorted(e.fields, func(r FieldRecord) string { return r.Application })

	e.standardNames = []string{}
	for _, rec := range e.standards {
		if rec.Standard == "" {
			continue
		}
		evals, seen := e.byStandard[rec.Standard]
		if !seen {
			evals = make(map[Key]Compliance)
			e.byStandard[rec.Standard] = evals
			e.standardNames = append(e.standardNames, rec.Standard)
			e.definitions[rec.Standard] = rec.Definition
		}
		// Duplicate keys: last writer wins.
		evals[rec.Key()] = rec.Compliant
	}

	return e
}

func distinctSorted(records []FieldRecord, key func(FieldRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, rec := range records {
		k := key(rec)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Records returns every field record in table order.
func (e *Engine) Records() []FieldRecord {
	return slices.Clone(e.fields)
}

// Evaluations returns every standard record in table order.
func (e *Engine) Evaluations() []StandardRecord {
	return slices.Clone(e.standards)
}

// Fields returns the distinct search-field names, sorted.
func (e *Engine) Fields() []string {
	return slices.Clone(e.fieldNames)
}

// Applications returns the distinct application names, sorted.
func (e *Engine) Applications() []string {
	return slices.Clone(e.applicationNames)
}

// Standards returns the distinct standard names in the order first seen.
func (e *Engine) Standards() []string {
	return slices.Clone(e.standardNames)
}

// Definition returns the definition of a standard, taken from its first row.
func (e *Engine) Definition(standard string) (string, bool) {
	def, ok := e.definitions[standard]
	return def, ok
}

// HasApplication reports whether any field belongs to app.
func (e *Engine) HasApplication(app string) bool {
	_, found := slices.BinarySearch(e.applicationNames, app)
	return found
}

// HasStandard reports whether the standard has at least one evaluation.
func (e *Engine) HasStandard(standard string) bool {
	_, ok := e.byStandard[standard]
	return ok
}

// FieldsForApplication returns all records of app in table order.
// The result is empty, never nil, when app is unknown.
func (e *Engine) FieldsForApplication(app string) []FieldRecord {
	out := []FieldRecord{}
	for _, rec := range e.fields {
		if rec.Application == app {
			out = append(out, rec)
		}
	}
	return out
}

// FieldNamesForApplication returns the search-field names of app in table order.
func (e *Engine) FieldNamesForApplication(app string) []string {
	records := e.FieldsForApplication(app)
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.SearchField
	}
	return out
}

// RecordForField returns the first record whose search field equals name
// exactly. When several applications share a field name only the first, in
// table order, is returned; RecordsForField exposes the rest.
func (e *Engine) RecordForField(name string) (FieldRecord, bool) {
	for _, rec := range e.fields {
		if rec.SearchField == name {
			return rec, true
		}
	}
	return FieldRecord{}, false
}

// RecordsForField returns every record whose search field equals name, in table order.
func (e *Engine) RecordsForField(name string) []FieldRecord {
	out := []FieldRecord{}
	for _, rec := range e.fields {
		if rec.SearchField == name {
			out = append(out, rec)
		}
	}
	return out
}

// Stats summarizes the loaded tables.
func (e *Engine) Stats() Stats {
	return Stats{
		Records:      len(e.fields),
		Fields:       len(e.fieldNames),
		Applications: len(e.applicationNames),
		Standards:    len(e.standardNames),
		Evaluations:  len(e.standards),
	}
}
