// Package application provides the application interface for fieldscope commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            engine, err := app.Engine(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use engine
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    EngineFunc: func(context.Context) (*lookup.Engine, error) {
//	        return testEngine, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Application provides the application interface that commands need.
// The App struct from cmd/fieldscope/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the loaded fieldscope client, loading the datasets on
	// first use.
	Client(ctx context.Context) (fieldscope.Client, error)

	// Engine returns the current lookup engine of the default client.
	Engine(ctx context.Context) (*lookup.Engine, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, markdown, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
