package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	httpAdapter "github.com/aretw0/envchecker/internal/adapters/http"
	"github.com/aretw0/envchecker/internal/logging"
	"github.com/aretw0/envchecker/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions contains all the configuration for the serve command.
type ServeOptions struct {
	Port       string
	ConfigPath string
	Debug      bool
	// LogLevel is one of debug, info, warn or error. Debug overrides it.
	LogLevel  string
	LogFormat logging.Format
	// Ready, when set, receives the bound address once the listener is up.
	Ready func(addr string)
}

// RunServe starts the HTTP API and blocks until ctx is cancelled or the server fails.
// A missing schema file only disables GET /v1/check.
func RunServe(ctx context.Context, opts ServeOptions) error {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, level, opts.LogFormat)

	var cfg *schema.Config
	if opts.ConfigPath != "" {
		loaded, err := schema.Load(opts.ConfigPath)
		switch {
		case errors.Is(err, schema.ErrConfigNotFound):
			logger.Warn("Schema not found, /v1/check disabled", "path", opts.ConfigPath)
		case err != nil:
			return err
		default:
			if err := loaded.Resolve(nil); err != nil {
				return fmt.Errorf("%s: %w", opts.ConfigPath, err)
			}
			cfg = loaded
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := httpAdapter.NewHandler(
		httpAdapter.WithConfig(cfg),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithPrometheus(reg),
	)

	ln, err := net.Listen("tcp", ":"+opts.Port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting envchecker server", "addr", ln.Addr().String(), "schema", cfg != nil)
		if opts.Ready != nil {
			opts.Ready(ln.Addr().String())
		}
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
