// Package server provides the HTTP API of fieldscope.
//
// The layering is CLI → App → Server → Router → Handlers:
//
//   - Server: lifecycle, catalog hooks and background services
//   - Config: listen address, prefix, CORS and cache settings
//   - Router: route registration and the middleware chain
//   - Handlers: one file per resource
//
// Usage:
//
//	srv, err := server.New(app, server.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.Start()
//	http.ListenAndServe(":8080", srv.Handler())
package server

//go:generate gomarkdoc --output README.md .
