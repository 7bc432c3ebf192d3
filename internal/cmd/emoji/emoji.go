// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

import "github.com/agentstation/fieldscope/pkg/lookup"

// Symbol constants for CLI output.
const (
	// Success represents successful completion of an operation.
	Success = "✓"

	// Error represents failures.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	Warning = "!"

	// Compliance symbols, as shown in compliance tables.

	// Compliant marks a field that satisfies a standard.
	Compliant = "✅"

	// NonCompliant marks a field that was evaluated and fails a standard.
	NonCompliant = "❌"

	// Unknown marks a field the standard never evaluated.
	Unknown = "❓"
)

// ForCompliance returns the symbol of a compliance status.
func ForCompliance(c lookup.Compliance) string {
	switch c {
	case lookup.Compliant:
		return Compliant
	case lookup.NonCompliant:
		return NonCompliant
	default:
		return Unknown
	}
}

// YesNo renders a boolean the way result cards do.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
