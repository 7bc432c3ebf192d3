// Package fieldscope is the entry point for the fieldscope lookup system.
// It loads the search-field and standards catalogs, builds a lookup engine
// over them, and hands out per-user sessions.
//
// The client keeps one immutable engine at a time. Reload and auto-reload
// build a complete replacement and swap it in; readers never see a
// partially built engine.
//
// Example usage:
//
//	fs, err := fieldscope.New(
//	    fieldscope.WithSearchData("https://example.org/search-data.csv"),
//	    fieldscope.WithStandardsData("https://example.org/standards-data.csv"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := fs.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, ok := fs.Engine().RecordForField("Item Barcode")
//	table := fs.Engine().ComplianceTable("Allows wildcards")
package fieldscope

import (
	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client manages the loaded catalogs with reloads and event hooks.
type Client interface {

	// Catalog provides access to the current engine
	Catalog

	// Loader loads and reloads the datasets
	Loader

	// AutoReloader provides access to periodic reload controls
	AutoReloader

	// Hooks provides access to event callback registration
	Hooks
}

// Catalog provides read access to the current engine.
type Catalog interface {
	// Engine returns the current engine. It is never nil.
	Engine() *lookup.Engine

	// Tables returns a copy of the loaded tables.
	Tables() *dataset.Tables

	// Origin reports where the current tables came from.
	Origin() dataset.Origin

	// NewSession returns a fresh session over the current engine.
	NewSession() *lookup.Session
}
