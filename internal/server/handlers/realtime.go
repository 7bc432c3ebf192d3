package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agentstation/fieldscope/internal/server/events"
	ws "github.com/agentstation/fieldscope/internal/server/websocket"
	"github.com/agentstation/fieldscope/pkg/logging"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

// HandleUpdatesWebSocket handles GET /api/v1/updates/ws: a feed of
// catalog events.
func (h *Handlers) HandleUpdatesWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	id := fmt.Sprintf("%s-%d", r.RemoteAddr, time.Now().UnixNano())
	h.hub.Serve(id, conn)
	h.broker.Publish(events.ClientConnected, map[string]string{"client_id": id})
}

// HandleUpdatesSSE handles GET /api/v1/updates/stream.
func (h *Handlers) HandleUpdatesSSE(w http.ResponseWriter, r *http.Request) {
	h.broadcaster.ServeHTTP(w, r)
}

// HandleSession handles GET /api/v1/session/ws. Each connection gets its
// own lookup session over the engine current at connect time.
func (h *Handlers) HandleSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.engine(w, r)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	ws.ServeSession(conn, lookup.NewSession(e), logging.FromContext(r.Context()))
}
