package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/cmd/fieldscope/cmd/apps"
	"github.com/agentstation/fieldscope/cmd/fieldscope/cmd/browse"
	"github.com/agentstation/fieldscope/cmd/fieldscope/cmd/fields"
	"github.com/agentstation/fieldscope/cmd/fieldscope/cmd/serve"
	"github.com/agentstation/fieldscope/cmd/fieldscope/cmd/standards"
	"github.com/agentstation/fieldscope/cmd/fieldscope/cmd/suggest"
	"github.com/agentstation/fieldscope/cmd/fieldscope/cmd/version"
)

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(fields.NewFieldCommand(a))
	rootCmd.AddCommand(fields.NewFieldsCommand(a))
	rootCmd.AddCommand(apps.NewAppCommand(a))
	rootCmd.AddCommand(apps.NewAppsCommand(a))
	rootCmd.AddCommand(standards.NewStandardCommand(a))
	rootCmd.AddCommand(standards.NewStandardsCommand(a))
	rootCmd.AddCommand(suggest.NewCommand(a))
	rootCmd.AddCommand(browse.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(serve.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
