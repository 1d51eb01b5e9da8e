package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/VxVxN/trendingcompanies/internal/application"
	"github.com/VxVxN/trendingcompanies/internal/config"
	"github.com/VxVxN/trendingcompanies/internal/handlers"
	"github.com/VxVxN/trendingcompanies/internal/view"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := application.NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// newRouter carries no request timeout: a mount waits for its single fetch
// (bounded only by RENDER_WAIT) so failures always render the error page.
func newRouter(controller *handlers.Controller) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", controller.IndexHandler)
	r.Get("/companies.json", controller.GetCompanies)
	r.Get("/healthz", controller.Healthz)

	return r
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app, err := application.Init(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	controller := handlers.NewController(app.Client, renderer, logger, cfg.RenderWait)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: newRouter(controller),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port, "api", app.Client.URL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
