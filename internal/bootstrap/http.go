package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blogforge/blogforge/config"
	httpx "github.com/blogforge/blogforge/internal/http"
	"github.com/blogforge/blogforge/internal/observability/statsd"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	DB       *sql.DB
	Logger   *slog.Logger
}

// BuildHTTPServer assembles the router, middleware chain, and server.
func BuildHTTPServer(cfg *HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:     cfg.Services.Auth,
		Users:    cfg.Services.Users,
		Blogs:    cfg.Services.Blogs,
		Contacts: cfg.Services.Contacts,
		DB:       cfg.DB,
		Cookie: httpx.CookieConfig{
			Domain:      appCfg.HTTP.CookieDomain,
			ForceSecure: appCfg.Auth.ForceSecureCookies,
		},
		Logger: logger,
	})

	// Keeps the Sink interface nil when no client was built, so the Metrics
	// middleware can skip wrapping entirely.
	var sink statsd.Sink
	if cfg.Services.MetricsSink != nil {
		sink = cfg.Services.MetricsSink
	}

	// Order: Recover -> Logging -> Metrics -> CORS -> Router
	h := httpx.CORS(appCfg.HTTP.FrontendOrigin)(router)
	h = httpx.Metrics(sink)(h)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  appCfg.HTTP.ReadTimeout,
		WriteTimeout: appCfg.HTTP.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
}

// Run serves HTTP until the context is cancelled or a signal arrives, then
// shuts the server down gracefully.
func Run(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := BuildHTTPServer(cfg)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Config.HTTP.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		if cfg.Services.MetricsSink != nil {
			if err := cfg.Services.MetricsSink.Close(); err != nil {
				logger.Warn("close statsd client failed", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}
