package fieldscope

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope/pkg/constants"
	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/logging"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Loader loads the datasets and swaps in new engines.
type Loader interface {
	// Load fetches both datasets and builds the engine. Unless fallback is
	// disabled, a failed fetch installs the built-in sample and Load
	// succeeds.
	Load(ctx context.Context) error

	// Reload fetches both datasets again and replaces the engine only when
	// both succeed. The current engine stays in place on failure.
	Reload(ctx context.Context) error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	mu     sync.RWMutex
	engine *lookup.Engine
	tables *dataset.Tables
	origin dataset.Origin

	// auto reload state
	reloadMu     sync.Mutex
	reloadTicker *time.Ticker
	reloadCancel context.CancelFunc
	reloadDone   chan struct{}

	hooks *hooks
}

// New creates a Client. It starts with an empty engine; call Load before
// querying.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)
	if o.httpTimeout < 0 {
		return nil, errors.NewValidationError("httpTimeout", o.httpTimeout, "must not be negative")
	}

	c := &client{
		options: o,
		engine:  lookup.NewEngine(nil, nil),
		tables:  &dataset.Tables{},
		hooks:   newHooks(),
	}

	if o.autoReload {
		if err := c.AutoReloadOn(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *client) logger() *zerolog.Logger {
	if c.options.logger != nil {
		return c.options.logger
	}
	return logging.Default()
}

// Engine returns the current engine.
func (c *client) Engine() *lookup.Engine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine
}

// Tables returns a copy of the loaded tables.
func (c *client) Tables() *dataset.Tables {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables.Clone()
}

// Origin reports where the current tables came from.
func (c *client) Origin() dataset.Origin {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origin
}

// NewSession returns a session bound to the current engine. Sessions keep
// their engine across reloads.
func (c *client) NewSession() *lookup.Session {
	return lookup.NewSession(c.Engine())
}

// Load fetches the datasets and installs a new engine.
func (c *client) Load(ctx context.Context) error {
	ctx = logging.WithLogger(ctx, c.logger())
	ctx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	defer cancel()

	search, standards := c.options.sources()

	var (
		tables *dataset.Tables
		origin dataset.Origin
	)
	switch {
	case c.options.fallback:
		tables, origin = dataset.LoadWithFallback(ctx, search, standards)
	default:
		var err error
		if tables, err = dataset.Load(ctx, search, standards); err != nil {
			return err
		}
		origin = dataset.OriginSources
	}
	if c.options.useSample {
		origin = dataset.OriginSample
	}

	c.install(tables, origin)
	return nil
}

// Reload fetches the datasets again. Fallback never applies here: a failed
// reload keeps the engine that is already installed.
func (c *client) Reload(ctx context.Context) error {
	ctx = logging.WithLogger(ctx, c.logger())
	ctx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	defer cancel()

	search, standards := c.options.sources()
	tables, err := dataset.Load(ctx, search, standards)
	if err != nil {
		c.logger().Warn().Err(err).Msg("Reload failed, keeping current data")
		return err
	}

	origin := dataset.OriginSources
	if c.options.useSample {
		origin = dataset.OriginSample
	}
	c.install(tables, origin)
	return nil
}

func (c *client) install(tables *dataset.Tables, origin dataset.Origin) {
	engine := tables.Engine()

	c.mu.Lock()
	old := c.engine
	initial := c.origin == ""
	c.engine = engine
	c.tables = tables
	c.origin = origin
	c.mu.Unlock()

	stats := engine.Stats()
	c.logger().Info().
		Str("origin", string(origin)).
		Int("fields", stats.Fields).
		Int("applications", stats.Applications).
		Int("standards", stats.Standards).
		Msg("Catalog loaded")

	c.hooks.triggerReload(old, engine, origin, initial)
}
