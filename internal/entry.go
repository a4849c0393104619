// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/starford/laguz/internal/api"
	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/conversation"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/journalservice"
	"github.com/starford/laguz/internal/llm"
	"github.com/starford/laguz/internal/scheduler"
	"github.com/starford/laguz/internal/settings"
	"github.com/starford/laguz/internal/sse"
	"github.com/starford/laguz/internal/storage"
	"github.com/starford/laguz/internal/style"
)

// NewLogger builds the structured JSON logger used by every surface and
// installs it as the slog default.
func NewLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// BuildService assembles the journal service from persisted settings.
// The returned cleanup func closes the index database and must be
// called when the service is no longer needed.
func BuildService(st *settings.Store, logger *slog.Logger) (*journalservice.Service, func() error, error) {
	return buildService(st, logger, nil)
}

func buildService(st *settings.Store, logger *slog.Logger, broker *sse.Broker) (*journalservice.Service, func() error, error) {
	snap := st.Snapshot()

	if snap.VaultPath == "" {
		return nil, nil, fmt.Errorf("internal: %w", apperr.ErrVaultNotConfigured)
	}
	if err := os.MkdirAll(snap.VaultPath, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create vault dir: %w", err)
	}

	store, err := storage.NewFS(snap.VaultPath)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(snap.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	backend := llm.NewClient(snap.OllamaHost, snap.OllamaModel)
	engine := conversation.NewEngine(backend, logger)
	merger := journal.NewMerger(store, logger)
	profiler := style.NewProfiler(store, logger)

	svc := journalservice.NewService(store, db, engine, merger, profiler, st, broker, logger)
	return svc, db.Close, nil
}

// Run starts the HTTP server, file watcher, and reminder scheduler with
// the given options. It blocks until the context is cancelled or a
// shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.settings == nil {
		return fmt.Errorf("settings store is required")
	}

	st := app.settings
	snap := st.Snapshot()

	logger := NewLogger(snap.LogLevel)

	logger.Info("Configuration loaded",
		slog.String("http_address", snap.HTTP.Address()),
		slog.String("vault_path", snap.VaultPath),
		slog.String("sqlite_path", snap.SQLitePath),
		slog.String("ollama_host", snap.OllamaHost),
		slog.String("ollama_model", snap.OllamaModel),
		slog.String("log_level", snap.LogLevel.String()))

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	svc, closeDB, err := buildService(st, logger, broker)
	if err != nil {
		return err
	}
	defer closeDB()

	// Reminder scheduler. A live conversation is never interrupted; the
	// reminder only nudges idle clients.
	sched := scheduler.New(func() {
		if svc.ConversationActive() {
			logger.Info("reminder skipped, conversation in progress")
			return
		}
		logger.Info("journal reminder fired")
		broker.Publish(sse.Event{Type: "reminder", Data: map[string]string{
			"message": "Time to journal! How was your day?",
		}})
	}, logger)
	if err := sched.Start(snap.NotificationTime); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	// Settings updates take effect without a restart where possible.
	onSettingsChanged := func(s settings.Settings) {
		if err := sched.Reschedule(s.NotificationTime); err != nil {
			logger.Error("reschedule failed", slog.String("error", err.Error()))
		}
	}

	apiRouter := api.NewRouter(svc, st, snap.Auth.AuthEnabled(), snap.Auth.Token,
		http.HandlerFunc(broker.ServeHTTP), onSettingsChanged)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    snap.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", snap.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with SSE callback. The watcher keeps the index
	// in step with edits the user makes directly in their vault.
	g.Go(func() error {
		if err := index.Watch(gCtx, svc.DB(), svc.Store(), logger, func(kind, path string) {
			svc.InvalidateStyleCache()
			broker.PublishVaultEvent(kind, path)
		}); err != nil {
			logger.Warn("watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", snap.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
