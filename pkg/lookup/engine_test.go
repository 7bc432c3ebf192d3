package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fieldscope/pkg/lookup"
)

func TestEngineIndices(t *testing.T) {
	e := sampleEngine()

	t.Run("applications sorted and distinct", func(t *testing.T) {
		assert.Equal(t, []string{
			"Add Donors Modal",
			"Add contacts modal",
			"Add interfaces modal",
			"Agreements",
			"Check Out",
			"Check in",
			"Circulation log",
		}, e.Applications())
	})

	t.Run("fields sorted and distinct", func(t *testing.T) {
		fields := e.Fields()
		assert.Len(t, fields, 12)
		assert.IsNonDecreasing(t, fields)
		assert.Equal(t, "Add Donors Modal: Code", fields[0])
	})

	t.Run("standards in insertion order", func(t *testing.T) {
		assert.Equal(t, []string{"Allows wildcards", "Searching is case insensitive"}, e.Standards())
	})

	t.Run("accessors return copies", func(t *testing.T) {
		apps := e.Applications()
		apps[0] = "mutated"
		assert.Equal(t, "Add Donors Modal", e.Applications()[0])
	})

	t.Run("stats", func(t *testing.T) {
		assert.Equal(t, lookup.Stats{
			Records:      12,
			Fields:       12,
			Applications: 7,
			Standards:    2,
			Evaluations:  16,
		}, e.Stats())
	})
}

func TestEngineDefinitionFirstWins(t *testing.T) {
	e := lookup.NewEngine(nil, []lookup.StandardRecord{
		{Standard: "S", Definition: "first"},
		{Standard: "S", Definition: "second"},
	})
	def, ok := e.Definition("S")
	require.True(t, ok)
	assert.Equal(t, "first", def)

	_, ok = e.Definition("missing")
	assert.False(t, ok)
}

func TestFieldsForApplication(t *testing.T) {
	e := sampleEngine()

	t.Run("table order", func(t *testing.T) {
		got := e.FieldsForApplication("Circulation log")
		require.Len(t, got, 3)
		assert.Equal(t, "Description", got[0].SearchField)
		assert.Equal(t, "Item Barcode", got[1].SearchField)
		assert.Equal(t, "User Barcode", got[2].SearchField)
	})

	t.Run("exact match only", func(t *testing.T) {
		assert.Empty(t, e.FieldsForApplication("check out"))
		assert.Len(t, e.FieldsForApplication("Check Out"), 2)
	})

	t.Run("miss is empty not nil", func(t *testing.T) {
		got := e.FieldsForApplication("Nope")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("partitions the table", func(t *testing.T) {
		total := 0
		for _, app := range e.Applications() {
			for _, rec := range e.FieldsForApplication(app) {
				assert.Equal(t, app, rec.Application)
				total++
			}
		}
		assert.Equal(t, len(e.Records()), total)
	})
}

func TestRecordForField(t *testing.T) {
	e := sampleEngine()

	t.Run("donors name allows wildcards", func(t *testing.T) {
		rec, ok := e.RecordForField("Add Donors Modal: Name")
		require.True(t, ok)
		assert.True(t, rec.AllowsWildcards)
		assert.Equal(t, "Add Donors Modal", rec.Application)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, ok := e.RecordForField("add donors modal: name")
		assert.False(t, ok)
	})

	t.Run("none iff absent", func(t *testing.T) {
		for _, name := range e.Fields() {
			_, ok := e.RecordForField(name)
			assert.True(t, ok, name)
		}
		_, ok := e.RecordForField("Not a field")
		assert.False(t, ok)
	})

	t.Run("collision returns first", func(t *testing.T) {
		e := lookup.NewEngine([]lookup.FieldRecord{
			{Application: "B", SearchField: "Barcode", AllowsWildcards: false},
			{Application: "A", SearchField: "Barcode", AllowsWildcards: true},
		}, nil)
		rec, ok := e.RecordForField("Barcode")
		require.True(t, ok)
		assert.Equal(t, "B", rec.Application)

		all := e.RecordsForField("Barcode")
		require.Len(t, all, 2)
		assert.Equal(t, "A", all[1].Application)
		assert.Equal(t, []string{"Barcode"}, e.Fields())
	})
}

func TestEmptyEngine(t *testing.T) {
	e := lookup.NewEngine(nil, nil)

	assert.Empty(t, e.Fields())
	assert.Empty(t, e.Applications())
	assert.Empty(t, e.Standards())
	assert.Empty(t, e.FieldsForApplication("x"))
	_, ok := e.RecordForField("x")
	assert.False(t, ok)
	assert.Empty(t, e.ComplianceTable("x").Rows)
	assert.Empty(t, e.FieldCandidates("a", ""))
}

func TestBlankNamesNotIndexed(t *testing.T) {
	e := lookup.NewEngine(
		[]lookup.FieldRecord{{Application: "", SearchField: ""}, {Application: "A", SearchField: "f"}},
		[]lookup.StandardRecord{{Standard: ""}},
	)
	assert.Equal(t, []string{"A"}, e.Applications())
	assert.Equal(t, []string{"f"}, e.Fields())
	assert.Empty(t, e.Standards())
}

func TestQueriesIdempotent(t *testing.T) {
	e := sampleEngine()

	assert.Equal(t, e.FieldsForApplication("Agreements"), e.FieldsForApplication("Agreements"))
	assert.Equal(t, e.ComplianceTable("Allows wildcards"), e.ComplianceTable("Allows wildcards"))
	assert.Equal(t, e.FieldCandidates("barcode", ""), e.FieldCandidates("barcode", ""))
	r1, ok1 := e.RecordForField("Description")
	r2, ok2 := e.RecordForField("Description")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, r1, r2)
}

func TestEngineCopiesInput(t *testing.T) {
	fields := sampleFields()
	e := lookup.NewEngine(fields, nil)
	fields[0].SearchField = "changed"

	_, ok := e.RecordForField("Add contacts modal search")
	assert.True(t, ok)
}
