package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/PratikDhanave/ai-eco-analytics/internal/config"
	"github.com/PratikDhanave/ai-eco-analytics/internal/genai"
	"github.com/PratikDhanave/ai-eco-analytics/internal/httpserver"
	"github.com/PratikDhanave/ai-eco-analytics/internal/logger"
	"github.com/PratikDhanave/ai-eco-analytics/internal/store"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the 'serve' command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the HTTP API.

Configuration comes from the environment, optionally layered over a TOML file
named by CONFIG_PATH. The event store uses Postgres or SQLite when configured and
reachable, and the in-memory buffer otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe boots the service: config → logger → event store → components → HTTP
// server, and shuts down gracefully on SIGINT/SIGTERM.
func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init(cfg.Env)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.Open(ctx, openBackend(ctx, cfg), store.WithTimeout(cfg.DurableTimeout))
	defer st.Close()

	gen := genai.NewGeminiClient(genai.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
	})
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, mentor and vision routes will fail")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpserver.NewRouter(cfg, httpserver.NewComponents(cfg, st, gen)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", "addr", cfg.HTTPAddr, "store", st.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// openBackend builds the configured durable backend. Construction failures are
// logged and yield nil, which selects the in-memory store.
func openBackend(ctx context.Context, cfg config.Config) store.Backend {
	log := logger.FromContext(ctx)

	switch cfg.EventBackend {
	case config.BackendPostgres:
		pg, err := store.NewPostgresBackend(ctx, cfg.DBURL)
		if err != nil {
			log.Warn("postgres backend unavailable", "error", err)
			return nil
		}
		sctx, cancel := context.WithTimeout(ctx, cfg.DurableTimeout)
		defer cancel()
		if err := pg.EnsureSchema(sctx); err != nil {
			log.Warn("postgres schema setup failed", "error", err)
			_ = pg.Close()
			return nil
		}
		return pg

	case config.BackendSQLite:
		lite, err := store.NewSQLiteBackend(ctx, cfg.SQLitePath)
		if err != nil {
			log.Warn("sqlite backend unavailable", "path", cfg.SQLitePath, "error", err)
			return nil
		}
		return lite

	default:
		return nil
	}
}
