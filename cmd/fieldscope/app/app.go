// Package app provides the application context and dependency management
// for the fieldscope CLI. It centralizes configuration, logging, and the
// lazily loaded catalog client shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// App represents the fieldscope application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client fieldscope.Client
	loaded bool
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that
// can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Client returns the catalog client, creating and loading it on first use.
// This is thread-safe and ensures the datasets are fetched only once.
func (a *App) Client(ctx context.Context) (fieldscope.Client, error) {
	a.mu.RLock()
	if a.client != nil && a.loaded {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil && a.loaded {
		return a.client, nil
	}

	if a.client == nil {
		c, err := fieldscope.New(a.buildClientOptions()...)
		if err != nil {
			return nil, errors.NewConfigError("client", "failed to create client", err)
		}
		a.client = c
	}

	if err := a.client.Load(ctx); err != nil {
		return nil, err
	}
	a.loaded = true
	return a.client, nil
}

// Engine returns the current lookup engine.
func (a *App) Engine(ctx context.Context) (*lookup.Engine, error) {
	c, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Engine(), nil
}

// Shutdown performs graceful shutdown of the application.
// It stops auto-reload if it is running.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()

	if c != nil {
		if err := c.AutoReloadOff(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop auto-reload during shutdown")
		}
	}
	return nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []fieldscope.Option {
	opts := []fieldscope.Option{
		fieldscope.WithLogger(a.logger),
		fieldscope.WithSearchData(a.config.SearchData),
		fieldscope.WithStandardsData(a.config.StandardsData),
	}

	if a.config.UseSample {
		opts = append(opts, fieldscope.WithSampleData())
	}
	if !a.config.FallbackEnabled {
		opts = append(opts, fieldscope.WithFallbackDisabled())
	}
	if a.config.HTTPTimeout > 0 {
		opts = append(opts, fieldscope.WithHTTPTimeout(a.config.HTTPTimeout))
	}
	if a.config.AutoReload {
		opts = append(opts, fieldscope.WithAutoReload(true))
		if a.config.ReloadInterval > 0 {
			opts = append(opts, fieldscope.WithAutoReloadInterval(a.config.ReloadInterval))
		}
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing). The client
// is loaded on first use like the default one.
func WithClient(c fieldscope.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
