// Package lookup holds the in-memory field and standards catalogs and answers
// point, join, and autocomplete queries over them.
//
// An Engine is built once from two typed tables and never mutated afterwards.
// Interactive selection state lives in a Session, one per user.
package lookup

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldRecord is one searchable field of one application.
type FieldRecord struct {
	Application     string `json:"application" yaml:"application"`
	SearchField     string `json:"search_field" yaml:"search_field"`
	AllowsWildcards bool   `json:"allows_wildcards" yaml:"allows_wildcards"`
}

// Key returns the compliance join key for the record.
func (r FieldRecord) Key() Key {
	return Key{SearchField: r.SearchField, Application: r.Application}
}

// StandardRecord is one evaluation of a standard against a field of an application.
type StandardRecord struct {
	Standard    string     `json:"standard" yaml:"standard"`
	Definition  string     `json:"definition" yaml:"definition"`
	SearchField string     `json:"search_field" yaml:"search_field"`
	Application string     `json:"application" yaml:"application"`
	Compliant   Compliance `json:"compliant" yaml:"compliant"`
}

// Key returns the compliance join key for the record.
func (r StandardRecord) Key() Key {
	return Key{SearchField: r.SearchField, Application: r.Application}
}

// Key correlates standard evaluations with field records.
type Key struct {
	SearchField string
	Application string
}

// Compliance is the outcome of evaluating a standard against a field.
// The zero value is Unknown: the field was not evaluated.
type Compliance int

const (
	// Unknown means no evaluation exists.
	Unknown Compliance = iota
	// Compliant means the field satisfies the standard.
	Compliant
	// NonCompliant means the field was evaluated and fails the standard.
	NonCompliant
)

// String implements fmt.Stringer.
func (c Compliance) String() string {
	switch c {
	case Compliant:
		return "compliant"
	case NonCompliant:
		return "non-compliant"
	default:
		return "unknown"
	}
}

// ComplianceFromBool maps an evaluated boolean onto Compliant or NonCompliant.
func ComplianceFromBool(ok bool) Compliance {
	if ok {
		return Compliant
	}
	return NonCompliant
}

// ParseCompliance accepts the names produced by String and the words true
// and false, ignoring case and surrounding space. Anything else is Unknown.
func ParseCompliance(s string) Compliance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "compliant":
		return Compliant
	case "false", "non-compliant", "noncompliant":
		return NonCompliant
	default:
		return Unknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Compliance) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compliance) UnmarshalText(text []byte) error {
	*c = ParseCompliance(string(text))
	return nil
}

// UnmarshalJSON accepts either a boolean or a string.
func (c *Compliance) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = ComplianceFromBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		if string(data) == "null" {
			*c = Unknown
			return nil
		}
		return fmt.Errorf("compliance must be a boolean or string: %w", err)
	}
	*c = ParseCompliance(s)
	return nil
}

// ComplianceRow is one line of a compliance table.
type ComplianceRow struct {
	Field       string     `json:"field" yaml:"field"`
	Application string     `json:"application" yaml:"application"`
	Status      Compliance `json:"status" yaml:"status"`
}

// ComplianceTable is the outer join of the field catalog against one standard.
type ComplianceTable struct {
	Standard   string          `json:"standard" yaml:"standard"`
	Definition string          `json:"definition" yaml:"definition"`
	Rows       []ComplianceRow `json:"rows" yaml:"rows"`

	evaluated bool
}

// Evaluated reports whether any evaluation exists for the standard.
func (t ComplianceTable) Evaluated() bool {
	return t.evaluated
}

// ComplianceCounts tallies rows by status.
type ComplianceCounts struct {
	Compliant    int `json:"compliant" yaml:"compliant"`
	NonCompliant int `json:"non_compliant" yaml:"non_compliant"`
	Unknown      int `json:"unknown" yaml:"unknown"`
}

// Counts tallies the table's rows by status.
func (t ComplianceTable) Counts() ComplianceCounts {
	var counts ComplianceCounts
	for _, row := range t.Rows {
		switch row.Status {
		case Compliant:
			counts.Compliant++
		case NonCompliant:
			counts.NonCompliant++
		default:
			counts.Unknown++
		}
	}
	return counts
}

// Stats summarizes the loaded catalogs.
type Stats struct {
	Records      int `json:"records" yaml:"records"`
	Fields       int `json:"fields" yaml:"fields"`
	Applications int `json:"applications" yaml:"applications"`
	Standards    int `json:"standards" yaml:"standards"`
	Evaluations  int `json:"evaluations" yaml:"evaluations"`
}
