package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"pmportal/internal/api"
	"pmportal/internal/config"
	"pmportal/internal/directory"
	"pmportal/internal/document"
	"pmportal/internal/logger"
	"pmportal/internal/mission"
	"pmportal/internal/session"
	"pmportal/internal/storage"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	cfg := config.New()
	log := logger.New(cfg)

	store, err := storage.NewFromEnv(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up storage: %w", err)
	}

	// Stores, in dependency order: everything else consults the session.
	sessions := session.NewStore(ctx, log, store, session.Config{
		LoadDelay: cfg.Store.LoadDelay,
	})
	dir := directory.NewStore(ctx, log, store)
	documents := document.NewStore(ctx, log, store, sessions)
	missions := mission.NewStore(ctx, log, store, sessions)

	app := fiber.New(fiber.Config{
		AppName:      "pmportal",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	handler := api.NewHandler(log, cfg, sessions, dir, documents, missions)
	handler.RegisterRoutes(app)

	addr := cfg.Server.Host + ":" + cfg.Server.Port

	errChan := make(chan error, 1)
	go func() {
		if err := app.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()
	log.Info("server listening", "addr", addr, "environment", cfg.Server.Environment)

	select {
	case sig := <-sigChan:
		log.Info("shutting down", "signal", sig.String())
		return app.ShutdownWithTimeout(10 * time.Second)
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	}
}
