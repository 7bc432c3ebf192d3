// Package browse provides the interactive terminal browser command.
package browse

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/internal/tui"
	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// NewCommand creates the browse command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ui"},
		Short:   "Browse fields and standards interactively",
		Long: `Browse opens a terminal UI with two tabs.

Search: type into the App/Modal box to list matching apps/modals, choose
one to see its fields and to narrow the Field box to them. Choose a field
to see its record.

Standards: choose a standard to see every field's compliance with it.

When auto-reload is enabled the browser resets itself whenever new data
arrives.`,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f, ok := cmd.OutOrStdout().(interface{ Fd() uintptr }); !ok || !isatty.IsTerminal(f.Fd()) {
				return errors.NewValidationError("output", "non-terminal", "browse needs an interactive terminal; use the field, app and standard commands instead")
			}

			session, subscribe, err := newSession(cmd.Context(), app)
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.New(session),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			subscribe(func(msg tui.ReloadedMsg) { p.Send(msg) })

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running browser: %w", err)
			}
			return nil
		},
	}
	return cmd
}

// newSession opens a session over the app's current engine. The returned
// subscribe function forwards later reloads; it is a no-op when the app
// has no reloadable client.
func newSession(ctx context.Context, app application.Application) (*lookup.Session, func(func(tui.ReloadedMsg)), error) {
	c, err := app.Client(ctx)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		engine, err := app.Engine(ctx)
		if err != nil {
			return nil, nil, err
		}
		return lookup.NewSession(engine), func(func(tui.ReloadedMsg)) {}, nil
	}

	subscribe := func(send func(tui.ReloadedMsg)) {
		c.OnReload(func(_, engine *lookup.Engine, origin dataset.Origin) {
			send(tui.ReloadedMsg{Engine: engine, Origin: string(origin)})
		})
	}
	return c.NewSession(), subscribe, nil
}
