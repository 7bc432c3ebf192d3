// Package apps provides the app/modal lookup and listing commands.
package apps

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/internal/cmd/completion"
	"github.com/agentstation/fieldscope/internal/cmd/globals"
	"github.com/agentstation/fieldscope/internal/cmd/output"
	"github.com/agentstation/fieldscope/internal/cmd/table"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/logging"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// NewAppCommand creates the app command.
func NewAppCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:               "app <name>",
		Aliases:           []string{"modal"},
		Short:             "Show every search field of an app/modal",
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.Applications(app),
		Example: `  fieldscope app "Circulation log"
  fieldscope app Agreements -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.Engine(cmd.Context())
			if err != nil {
				return err
			}

			name := args[0]
			ctx := logging.WithApplication(logging.WithLogger(cmd.Context(), app.Logger()), name)
			records := engine.FieldsForApplication(name)
			if len(records) == 0 {
				return &errors.NotFoundError{Resource: "app/modal", ID: name}
			}
			logging.FromContext(ctx).Debug().Int("fields", len(records)).Msg("Resolved app/modal fields")

			tbl := output.FromTable(table.FieldsToTableData(records))
			tbl.Title = name
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), tbl, records)
		},
	}
}

// NewAppsCommand creates the apps list command.
func NewAppsCommand(app application.Application) *cobra.Command {
	flags := &globals.ResourceFlags{}

	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"modals"},
		Short:   "List apps/modals",
		GroupID: "core",
		Args:    cobra.NoArgs,
		Example: `  fieldscope apps
  fieldscope apps --search check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.Engine(cmd.Context())
			if err != nil {
				return err
			}

			names := flags.Apply(engine.Applications(), lookup.FilterAll)

			if !globals.Parse(cmd).Quiet {
				app.Logger().Info().Msgf("Found %d apps/modals", len(names))
			}

			tbl := output.FromTable(table.NamesToTableData("App/Modal", names))
			tbl.Empty = "No apps/modals found"
			return output.Render(cmd.OutOrStdout(), app.OutputFormat(), tbl, names)
		},
	}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "Case-insensitive substring to filter by")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "Limit number of results")

	return cmd
}
