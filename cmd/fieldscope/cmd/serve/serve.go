// Package serve provides the HTTP API server command.
package serve

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/fieldscope/cmd/application"
	"github.com/agentstation/fieldscope/internal/cmd/emoji"
	"github.com/agentstation/fieldscope/internal/server"
	"github.com/agentstation/fieldscope/pkg/constants"
	"github.com/agentstation/fieldscope/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookup API over HTTP",
		Long: `Start a REST API server over the loaded catalogs.

Endpoints (under the path prefix, /api/v1 by default):
  - /applications, /applications/{app}/fields
  - /fields, /fields/{name}
  - /standards, /standards/{name}
  - /suggest/applications, /suggest/fields, /suggest/standards
  - /session/ws       interactive lookup session over WebSocket
  - /updates/ws       catalog reload events over WebSocket
  - /updates/stream   catalog reload events as Server-Sent Events
  - /health, /ready, /stats

Responses are cached until the catalog reloads. Ctrl+C drains open
connections and stops the server.`,
		GroupID: "management",
		Example: `  fieldscope serve
  fieldscope serve --port 3000 --cors
  fieldscope serve --cors-origins "https://example.com" --auto-reload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			autoReload, _ := cmd.Flags().GetBool("auto-reload")
			return run(cmd.Context(), app, cfg, autoReload, cmd.OutOrStdout())
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Response cache lifetime")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("auto-reload", false, "Refetch the datasets periodically while serving")

	return cmd
}

func configFromFlags(cmd *cobra.Command) (server.Config, error) {
	cfg := server.DefaultConfig()
	cfg.Port, _ = cmd.Flags().GetInt("port")
	cfg.Host, _ = cmd.Flags().GetString("host")
	cfg.PathPrefix, _ = cmd.Flags().GetString("prefix")
	cfg.CORSEnabled, _ = cmd.Flags().GetBool("cors")
	cfg.CORSOrigins, _ = cmd.Flags().GetStringSlice("cors-origins")
	cfg.CacheTTL, _ = cmd.Flags().GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = cmd.Flags().GetDuration("read-timeout")
	cfg.WriteTimeout, _ = cmd.Flags().GetDuration("write-timeout")
	cfg.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")

	// Origins imply CORS.
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}

	// Environment overrides apply only when the flag was left alone.
	if envPort := os.Getenv("FIELDSCOPE_HTTP_PORT"); envPort != "" && !cmd.Flags().Changed("port") {
		p, err := parsePort(envPort)
		if err != nil {
			return cfg, err
		}
		cfg.Port = p
	}
	if envHost := os.Getenv("FIELDSCOPE_HTTP_HOST"); envHost != "" && !cmd.Flags().Changed("host") {
		cfg.Host = envHost
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, errors.NewValidationError("port", cfg.Port, "must be between 0 and 65535")
	}
	return cfg, nil
}

// parsePort parses a port string.
func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 0 || port > 65535 {
		return 0, errors.NewValidationError("port", s, "must be a number between 0 and 65535")
	}
	return port, nil
}

func run(ctx context.Context, app application.Application, cfg server.Config, autoReload bool, out io.Writer) error {
	logger := app.Logger()

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	srv.Start()
	defer func() { _ = srv.Shutdown(context.Background()) }()

	if autoReload {
		c, err := app.Client(ctx)
		if err != nil {
			return err
		}
		if c != nil {
			if err := c.AutoReloadOn(); err != nil {
				return err
			}
			defer func() { _ = c.AutoReloadOff() }()
		}
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return errors.NewIOError("listen", cfg.Addr(), err)
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	logger.Info().
		Str("addr", ln.Addr().String()).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auto_reload", autoReload).
		Msg("Starting API server")

	_, _ = fmt.Fprintf(out, "🚀 Serving fieldscope API on http://%s%s\n", ln.Addr(), cfg.PathPrefix)
	_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

	return serveUntilDone(ctx, httpServer, ln, logger, out)
}

// serveUntilDone serves on ln until ctx is cancelled, then drains
// connections for up to constants.ShutdownTimeout.
func serveUntilDone(ctx context.Context, httpServer *http.Server, ln net.Listener, logger *zerolog.Logger, out io.Writer) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Dur("drain", time.Since(start)).Msg("Server stopped gracefully")
	_, _ = fmt.Fprintf(out, "%s Server stopped\n", emoji.Success)
	return nil
}
