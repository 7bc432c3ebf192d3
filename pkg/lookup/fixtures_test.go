package lookup_test

import "github.com/agentstation/fieldscope/pkg/lookup"

func sampleFields() []lookup.FieldRecord {
	return []lookup.FieldRecord{
		{Application: "Add contacts modal", SearchField: "Add contacts modal search", AllowsWildcards: true},
		{Application: "Add Donors Modal", SearchField: "Add Donors Modal: Code", AllowsWildcards: false},
		{Application: "Add Donors Modal", SearchField: "Add Donors Modal: Name", AllowsWildcards: true},
		{Application: "Add interfaces modal", SearchField: "Add interfaces modal search", AllowsWildcards: true},
		{Application: "Agreements", SearchField: "Agreements Lines Search", AllowsWildcards: true},
		{Application: "Agreements", SearchField: "Agreements Search", AllowsWildcards: true},
		{Application: "Check in", SearchField: "Scan or enter barcode to check in item", AllowsWildcards: true},
		{Application: "Check Out", SearchField: "Scan or enter item barcode", AllowsWildcards: false},
		{Application: "Check Out", SearchField: "Scan or enter patron barcode", AllowsWildcards: false},
		{Application: "Circulation log", SearchField: "Description", AllowsWildcards: false},
		{Application: "Circulation log", SearchField: "Item Barcode", AllowsWildcards: false},
		{Application: "Circulation log", SearchField: "User Barcode", AllowsWildcards: false},
	}
}

func wildcardEval(field, app string, ok bool) lookup.StandardRecord {
	return lookup.StandardRecord{
		Standard:    "Allows wildcards",
		Definition:  "Wildcards should be allowed",
		SearchField: field,
		Application: app,
		Compliant:   lookup.ComplianceFromBool(ok),
	}
}

func caseEval(field, app string, ok bool) lookup.StandardRecord {
	return lookup.StandardRecord{
		Standard:    "Searching is case insensitive",
		Definition:  "Searching should be case insensitive",
		SearchField: field,
		Application: app,
		Compliant:   lookup.ComplianceFromBool(ok),
	}
}

func sampleStandards() []lookup.StandardRecord {
	return []lookup.StandardRecord{
		wildcardEval("Add contacts modal search", "Add contacts modal", true),
		wildcardEval("Add Donors Modal: Name", "Add Donors Modal", true),
		wildcardEval("Add interfaces modal search", "Add interfaces modal", true),
		wildcardEval("Agreements Lines Search", "Agreements", true),
		wildcardEval("Agreements Search", "Agreements", true),
		wildcardEval("Scan or enter barcode to check in item", "Check in", true),
		wildcardEval("Add Donors Modal: Code", "Add Donors Modal", false),
		wildcardEval("Scan or enter item barcode", "Check Out", false),
		wildcardEval("Scan or enter patron barcode", "Check Out", false),
		wildcardEval("Description", "Circulation log", false),
		wildcardEval("Item Barcode", "Circulation log", false),
		wildcardEval("User Barcode", "Circulation log", false),
		caseEval("Add contacts modal search", "Add contacts modal", true),
		caseEval("Add Donors Modal: Name", "Add Donors Modal", true),
		caseEval("Agreements Search", "Agreements", true),
		caseEval("Description", "Circulation log", false),
	}
}

func sampleEngine() *lookup.Engine {
	return lookup.NewEngine(sampleFields(), sampleStandards())
}
