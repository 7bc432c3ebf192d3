package server

import (
	"net/http"

	"github.com/agentstation/fieldscope/internal/server/handlers"
	"github.com/agentstation/fieldscope/internal/server/middleware"
	"github.com/agentstation/fieldscope/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.app,
		s.cache,
		s.broker,
		s.hub,
		s.broadcaster,
		s.upgrader,
		s.logger,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	p := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/ready", h.HandleReady)
	mux.HandleFunc("GET "+p+"/stats", h.HandleStats)

	// Catalog
	mux.HandleFunc("GET "+p+"/applications", h.HandleListApplications)
	mux.HandleFunc("GET "+p+"/applications/{app}/fields", h.HandleApplicationFields)
	mux.HandleFunc("GET "+p+"/fields", h.HandleListFields)
	mux.HandleFunc("GET "+p+"/fields/{name}", h.HandleGetField)
	mux.HandleFunc("GET "+p+"/standards", h.HandleListStandards)
	mux.HandleFunc("GET "+p+"/standards/{name}", h.HandleGetStandard)

	// Autocomplete
	mux.HandleFunc("GET "+p+"/suggest/applications", h.HandleSuggestApplications)
	mux.HandleFunc("GET "+p+"/suggest/fields", h.HandleSuggestFields)
	mux.HandleFunc("GET "+p+"/suggest/standards", h.HandleSuggestStandards)

	// Real time
	mux.HandleFunc("GET "+p+"/session/ws", h.HandleSession)
	mux.HandleFunc("GET "+p+"/updates/ws", h.HandleUpdatesWebSocket)
	mux.HandleFunc("GET "+p+"/updates/stream", h.HandleUpdatesSSE)

	// Everything else under the prefix answers in the envelope.
	mux.HandleFunc(p+"/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "No such endpoint", r.URL.Path)
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}

	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		corsConfig.AllowedOrigins = s.config.CORSOrigins
		chain = append(chain, middleware.CORS(corsConfig))
	}

	return middleware.Chain(chain...)(handler)
}
