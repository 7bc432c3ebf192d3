package dataset

import (
	"strings"

	"github.com/agentstation/fieldscope/pkg/lookup"
)

// ParseBool reads a spreadsheet boolean cell. TRUE, true, yes, y and 1 are
// true; everything else, including an empty cell, is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}

// ParseCompliance reads the Compliant cell of the standards table. Only
// TRUE/true and FALSE/false are evaluations; a blank cell or any other
// value, including yes, no, 1 and 0, is Unknown.
func ParseCompliance(s string) lookup.Compliance {
	switch strings.TrimSpace(s) {
	case "TRUE", "true":
		return lookup.Compliant
	case "FALSE", "false":
		return lookup.NonCompliant
	default:
		return lookup.Unknown
	}
}
