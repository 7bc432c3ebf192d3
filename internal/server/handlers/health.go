package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/fieldscope/internal/server/response"
)

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "fieldscope-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/v1/ready: the catalog is loaded and which
// source it came from.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	c, err := h.app.Client(r.Context())
	if err != nil || c == nil {
		response.ServiceUnavailable(w, "Catalog not available")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"origin": c.Origin(),
		"stats":  c.Engine().Stats(),
	})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	e, ok := h.engine(w, r)
	if !ok {
		return
	}

	published, dropped := h.broker.Stats()
	response.OK(w, map[string]any{
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"catalog":        e.Stats(),
		"cache":          h.cache.Stats(),
		"events": map[string]int64{
			"published": published,
			"dropped":   dropped,
		},
		"realtime": map[string]int{
			"websocket_clients": h.hub.ClientCount(),
			"sse_clients":       h.broadcaster.ClientCount(),
		},
	})
}
