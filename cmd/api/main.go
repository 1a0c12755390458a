package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadqual_backend/internal/config"
	"leadqual_backend/internal/events"
	apphttp "leadqual_backend/internal/http"
	"leadqual_backend/internal/http/router"
	"leadqual_backend/internal/leads"
	"leadqual_backend/internal/notification"
	"leadqual_backend/platform/logger"
	"leadqual_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	leadsModule := leads.NewModule(cfg, eventBus, val, log)

	notificationModule := notification.NewModule(log)
	notificationModule.RegisterHandlers(eventBus)
	defer notificationModule.SSE().Close()

	// Push every appended or merged activity event to connected dashboards.
	leadsModule.Feed().SetNotifier(notificationModule.ActivityNotifier())

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			notificationModule,
		},
	}

	engine := router.New(cfg, log, app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
