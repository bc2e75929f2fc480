package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/ajkula/livetext/adapter/inbound/rest"
	"github.com/ajkula/livetext/adapter/outbound/filesource"
	"github.com/ajkula/livetext/adapter/outbound/logging"
	"github.com/ajkula/livetext/adapter/outbound/storage/memory"
	"github.com/ajkula/livetext/config"
	"github.com/ajkula/livetext/domain/port/inbound"
	"github.com/ajkula/livetext/domain/port/outbound"
	"github.com/ajkula/livetext/domain/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Watch the configured files and serve them over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewSlogAdapter(cfg)
	defer logger.Shutdown()

	logger.Info("Starting livetext",
		"version", version,
		"interval", cfg.Watch.Interval.String(),
		"paused", cfg.Watch.Paused)

	manager := service.NewResourceManagerService(
		filesource.NewOSSource(),
		logger,
		service.WatchOptions{Interval: cfg.Watch.Interval, StartPaused: cfg.Watch.Paused},
	)
	defer manager.Shutdown()

	registry := memory.NewResourceRegistry()
	registerConfiguredFiles(cmd.Context(), cfg, manager, registry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.HTTP.Enabled {
		logger.Info("HTTP server disabled, watching until interrupted")
		<-ctx.Done()
		logger.Info("Shutting down")
		return nil
	}

	router := mux.NewRouter()
	rest.NewHandler(manager, registry, cfg, logger).SetupRoutes(router)

	// Middleware for debugging requests
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("Request", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	})

	httpAddr := fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         httpAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", httpAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal, shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}

// registerConfiguredFiles opens every watch.files entry; failures are logged
// and skipped so one bad path does not prevent startup.
func registerConfiguredFiles(
	ctx context.Context,
	cfg *config.Config,
	manager inbound.ResourceManager,
	registry outbound.ResourceRegistry,
	logger outbound.Logger,
) int {
	if ctx == nil {
		ctx = context.Background()
	}

	registered := 0
	for _, path := range cfg.Watch.Files {
		res, err := manager.Open(path)
		if err != nil {
			logger.Error("Failed to register configured file", "path", path, "error", err)
			continue
		}

		id, err := registry.Add(ctx, res)
		if err != nil {
			logger.Error("Failed to store configured file", "path", path, "error", err)
			continue
		}

		logger.Info("Watching configured file", "id", id, "path", path)
		registered++
	}
	return registered
}
