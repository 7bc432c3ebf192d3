// Package fields provides the field lookup and listing commands.
package fields

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

// NewFieldCommand creates the field command.
func NewFieldCommand(app application.Application) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "field <name>",
		Short: "Show which app/modal a search field belongs to",
		Long: `Field looks up a search field by its exact name and shows the app/modal
it belongs to and whether it accepts wildcards.

When several apps/modals share a field name only the first is shown;
use --all to list every one of them.`,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.Fields(app),
		Example: `  fieldscope field "Item Barcode"
  fieldscope field Description --all
  fieldscope field "Agreements Search" -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.Engine(cmd.Context())
			if err != nil {
				return err
			}

			name := args[0]
			var records []lookup.FieldRecord
			if all {
				records = engine.RecordsForField(name)
			} else if rec, ok := engine.RecordForField(name); ok {
				records = []lookup.FieldRecord{rec}
			}
			if len(records) == 0 {
				return &errors.NotFoundError{Resource: "field", ID: name}
			}

			var raw any = records
			if !all {
				raw = records[0]
			}
			tbl := output.FromTable(table.FieldsToTableData(records))
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), tbl, raw)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every app/modal with a field of this name")

	return cmd
}

// NewFieldsCommand creates the fields list command.
func NewFieldsCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Short:   "List search fields",
		GroupID: "core",
		Args:    cobra.NoArgs,
		Example: `  fieldscope fields
  fieldscope fields --app "Circulation log"
  fieldscope fields --search barcode --limit 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.Engine(cmd.Context())
			if err != nil {
				return err
			}

			flags := globals.ParseResources(cmd)
			var names []string
			if flags.Application != "" {
				if !engine.HasApplication(flags.Application) {
					return &errors.NotFoundError{Resource: "app/modal", ID: flags.Application}
				}
				names = engine.FieldNamesForApplication(flags.Application)
			} else {
				names = engine.Fields()
			}
			names = flags.Apply(names, lookup.FilterAll)

			if !globals.Parse(cmd).Quiet {
				app.Logger().Info().Msgf("Found %d fields", len(names))
			}

			tbl := output.FromTable(table.NamesToTableData("Search Field", names))
			tbl.Empty = "No fields found"
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), tbl, names)
		},
	}

	globals.AddResourceFlags(cmd)
	_ = cmd.RegisterFlagCompletionFunc("app", completion.ApplicationFlag(app))

	return cmd
}
