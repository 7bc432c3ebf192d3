// Package completion provides dynamic shell completion backed by the
// autocomplete filters of the lookup engine.
package completion

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Func is the signature cobra expects for ValidArgsFunction.
type Func func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective)

// Fields completes the first argument with field names. When the command
// has an "app" flag set, candidates are that application's fields.
func Fields(app application.Application) Func {
	return first(app, func(e *lookup.Engine, cmd *cobra.Command, q string) []string {
		scope, _ := cmd.Flags().GetString("app")
		return e.FieldCandidates(q, scope)
	})
}

// Applications completes the first argument with application names.
func Applications(app application.Application) Func {
	return first(app, func(e *lookup.Engine, _ *cobra.Command, q string) []string {
		return e.ApplicationCandidates(q)
	})
}

// Standards completes the first argument with standard names.
func Standards(app application.Application) Func {
	return first(app, func(e *lookup.Engine, _ *cobra.Command, q string) []string {
		return e.StandardCandidates(q)
	})
}

// ApplicationFlag completes the value of an --app flag, whatever
// arguments precede it.
func ApplicationFlag(app application.Application) Func {
	return func(cmd *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return Applications(app)(cmd, nil, toComplete)
	}
}

func first(app application.Application, candidates func(*lookup.Engine, *cobra.Command, string) []string) Func {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		engine, err := app.Engine(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return candidates(engine, cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}
