// Package suggest provides the autocomplete candidate command.
package suggest

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/internal/cmd/completion"
	"github.com/agentstation/fieldscope/internal/cmd/output"
	"github.com/agentstation/fieldscope/internal/cmd/table"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// NewCommand creates the suggest command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <apps|fields|standards> [query]",
		Short: "Show autocomplete candidates for a partial name",
		Long: fmt.Sprintf(`Suggest returns the names containing query, ignoring case, in the order
the search boxes list them. At most %d candidates are returned.`, lookup.MaxCandidates),
		GroupID:   "core",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []cobra.Completion{"apps", "fields", "standards"},
		Example: `  fieldscope suggest apps check
  fieldscope suggest fields barcode
  fieldscope suggest fields barcode --app "Circulation log"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.Engine(cmd.Context())
			if err != nil {
				return err
			}

			var query string
			if len(args) == 2 {
				query = args[1]
			}
			scope, _ := cmd.Flags().GetString("app")

			var (
				header     string
				candidates []string
			)
			switch args[0] {
			case "apps", "app", "applications":
				header, candidates = "App/Modal", engine.ApplicationCandidates(query)
			case "fields", "field":
				if scope != "" && !engine.HasApplication(scope) {
					return &errors.NotFoundError{Resource: "app/modal", ID: scope}
				}
				header, candidates = "Search Field", engine.FieldCandidates(query, scope)
			case "standards", "standard":
				header, candidates = "Standard", engine.StandardCandidates(query)
			default:
				return errors.NewValidationError("resource", args[0], "must be one of: apps, fields, standards")
			}

			tbl := output.FromTable(table.NamesToTableData(header, candidates))
			tbl.Empty = "No matches"
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), tbl, candidates)
		},
	}

	cmd.Flags().StringP("app", "a", "", "Narrow field candidates to one app/modal")
	_ = cmd.RegisterFlagCompletionFunc("app", completion.ApplicationFlag(app))

	return cmd
}
