// Package standards provides the standards listing and compliance report commands.
package standards

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/internal/cmd/completion"
	"github.com/agentstation/fieldscope/internal/cmd/globals"
	"github.com/agentstation/fieldscope/internal/cmd/output"
	"github.com/agentstation/fieldscope/internal/cmd/table"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Summary is the structured form of one line of the standards list.
type Summary struct {
	Name       string                  `json:"name" yaml:"name"`
	Definition string                  `json:"definition" yaml:"definition"`
	Counts     lookup.ComplianceCounts `json:"counts" yaml:"counts"`
}

// NewStandardsCommand creates the standards list command.
func NewStandardsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "standards",
		Short:   "List standards with their compliance tallies",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.Engine(cmd.Context())
			if err != nil {
				return err
			}

			names := engine.Standards()
			summaries := make([]Summary, 0, len(names))
			for _, name := range names {
				def, _ := engine.Definition(name)
				summaries = append(summaries, Summary{
					Name:       name,
					Definition: def,
					Counts:     engine.ComplianceTable(name).Counts(),
				})
			}

			if !globals.Parse(cmd).Quiet {
				app.Logger().Info().Msgf("Found %d standards", len(summaries))
			}

			tbl := output.FromTable(table.StandardsToTableData(engine))
			tbl.Empty = "No standards found"
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), tbl, summaries)
		},
	}
}

// NewStandardCommand creates the standard compliance report command.
func NewStandardCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "standard <name>",
		Short: "Show which fields comply with a standard",
		Long: `Standard joins every known search field against the evaluations of one
standard. Fields the standard never evaluated are reported as unknown.

Symbols: ✅ compliant, ❌ non-compliant, ❓ not evaluated.`,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.Standards(app),
		Example: `  fieldscope standard "Allows wildcards"
  fieldscope standard "Allows wildcards" -o wide
  fieldscope standard "Searching is case insensitive" -o markdown > report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.Engine(cmd.Context())
			if err != nil {
				return err
			}

			name := args[0]
			if !engine.HasStandard(name) {
				return &errors.NotFoundError{Resource: "standard", ID: name}
			}
			report := engine.ComplianceTable(name)

			format := app.OutputFormat()
			tbl := output.FromTable(table.ComplianceToTableData(report, format == string(output.FormatWide)))
			tbl.Title = report.Standard
			tbl.Description = report.Definition
			tbl.Empty = lookup.MessageNoEvaluations
			return output.Render(cmd.OutOrStdout(), format, tbl, report)
		},
	}
}
