package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/internal/server/cache"
	"github.com/agentstation/fieldscope/internal/server/events"
	"github.com/agentstation/fieldscope/internal/server/sse"
	ws "github.com/agentstation/fieldscope/internal/server/websocket"
	"github.com/agentstation/fieldscope/pkg/dataset"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app         application.Application
	cache       *cache.Cache
	broker      *events.Broker
	hub         *ws.Hub
	broadcaster *sse.Broadcaster
	upgrader    websocket.Upgrader
	logger      *zerolog.Logger
	config      Config
	ctx         context.Context
	cancel      context.CancelFunc
	startTime   time.Time
}

// New creates a server. It loads the catalog through app and subscribes
// to its reload hooks.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api/v1"
	}

	hub := ws.NewHub(logger)
	broadcaster := sse.NewBroadcaster(logger)
	broker := events.NewBroker(logger)
	broker.Subscribe(hub)
	broker.Subscribe(broadcaster)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:         app,
		cache:       cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:      broker,
		hub:         hub,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}

	if err := s.connectHooks(); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// connectHooks flushes the cache and publishes events whenever the
// catalog reloads.
func (s *Server) connectHooks() error {
	c, err := s.app.Client(s.ctx)
	if err != nil {
		return err
	}
	if c == nil {
		s.logger.Debug().Msg("No client available, reload events disabled")
		return nil
	}

	c.OnReload(func(_, engine *lookup.Engine, origin dataset.Origin) {
		s.cache.Clear()
		s.broker.Publish(events.CatalogReloaded, map[string]any{
			"origin": origin,
			"stats":  engine.Stats(),
		})
	})

	c.OnStandardChanged(func(standard string, before, after lookup.ComplianceCounts) {
		s.broker.Publish(events.StandardChanged, map[string]any{
			"standard": standard,
			"before":   before,
			"after":    after,
		})
		s.logger.Debug().Str("standard", standard).Msg("Standard changed event published")
	})

	return nil
}

// Start starts the broker, hub and broadcaster.
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.hub.Run(s.ctx)
	go s.broadcaster.Run(s.ctx)
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services.
func (s *Server) Shutdown(_ context.Context) error {
	s.cancel()
	s.logger.Info().Msg("Background services stopped")
	return nil
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns when the server was created.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
