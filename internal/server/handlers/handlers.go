// Package handlers implements the fieldscope API endpoints.
package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/internal/server/cache"
	"github.com/agentstation/fieldscope/internal/server/events"
	"github.com/agentstation/fieldscope/internal/server/response"
	"github.com/agentstation/fieldscope/internal/server/sse"
	ws "github.com/agentstation/fieldscope/internal/server/websocket"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// Handlers holds the dependencies shared by every endpoint.
type Handlers struct {
	app         application.Application
	cache       *cache.Cache
	broker      *events.Broker
	hub         *ws.Hub
	broadcaster *sse.Broadcaster
	upgrader    websocket.Upgrader
	logger      *zerolog.Logger
	startTime   time.Time
}

// New creates the handler set.
func New(
	app application.Application,
	cache *cache.Cache,
	broker *events.Broker,
	hub *ws.Hub,
	broadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		app:         app,
		cache:       cache,
		broker:      broker,
		hub:         hub,
		broadcaster: broadcaster,
		upgrader:    upgrader,
		logger:      logger,
		startTime:   time.Now(),
	}
}

// engine returns the current engine, writing a 503 when it is unavailable.
func (h *Handlers) engine(w http.ResponseWriter, r *http.Request) (*lookup.Engine, bool) {
	e, err := h.app.Engine(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Catalog unavailable")
		response.ServiceUnavailable(w, "Catalog not available")
		return nil, false
	}
	return e, true
}

// cached serves a memoized result. compute returns the payload or an error
// to report; errors are not cached.
func (h *Handlers) cached(w http.ResponseWriter, r *http.Request, key string, compute func(*lookup.Engine) (any, error)) {
	if v, ok := h.cache.Get(key); ok {
		response.OK(w, v)
		return
	}

	e, ok := h.engine(w, r)
	if !ok {
		return
	}
	data, err := compute(e)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.cache.Set(key, data)
	response.OK(w, data)
}
