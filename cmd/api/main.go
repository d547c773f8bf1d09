package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/flaminghawk1207/mindmirror/backend/internal/config"
	"github.com/flaminghawk1207/mindmirror/backend/internal/handler"
	"github.com/flaminghawk1207/mindmirror/backend/internal/logging"
	"github.com/flaminghawk1207/mindmirror/backend/internal/model/suggestion"
	"github.com/flaminghawk1207/mindmirror/backend/internal/service/ai"
	"github.com/flaminghawk1207/mindmirror/backend/internal/service/journal"
	"github.com/flaminghawk1207/mindmirror/backend/internal/service/mood"
	"github.com/flaminghawk1207/mindmirror/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		logrus.WithError(err).Fatal("MindMirror backend stopped")
	}
}

// run owns every resource opened at startup, so returning closes them.
func run(ctx context.Context) error {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	if envErr != nil {
		logger.WithError(envErr).Debug("no .env file loaded, using process environment only")
	}

	repo, err := openStore(cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.WithError(err).Warn("failed to close store")
		}
	}()

	suggestions, err := loadSuggestions(cfg.Store.SuggestionsFile, logger)
	if err != nil {
		return fmt.Errorf("load suggestions: %w", err)
	}

	aiService, err := ai.NewService(ctx, cfg.AI, logging.Component(logger, "ai"))
	if err != nil {
		return fmt.Errorf("initialize AI service: %w", err)
	}
	if aiService.Configured() {
		logger.WithField("provider", aiService.Provider()).Info("AI service initialized")
	} else {
		logger.WithField("provider", aiService.Provider()).Warn("model credential not configured, /api/chat will return 500")
	}

	router := handler.NewRouter(handler.Services{
		AI:              aiService,
		Moods:           mood.NewService(repo),
		Journal:         journal.NewService(repo),
		Suggestions:     suggestion.NewMemoryStore(suggestions),
		RecordChatMoods: cfg.Store.RecordChatMoods,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
	}, logger)

	return startServer(ctx, cfg.Server, router, logger)
}

func openStore(cfg config.StoreConfig, logger *logrus.Logger) (store.Repository, error) {
	if cfg.Path == "" {
		logger.Info("using in-memory journal and mood store")
		return store.NewMemory(), nil
	}

	repo, err := store.NewSQLite(cfg.Path)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", cfg.Path).Info("using sqlite journal and mood store")
	return repo, nil
}

func loadSuggestions(path string, logger *logrus.Logger) ([]suggestion.Set, error) {
	if path == "" {
		return suggestion.Seed(), nil
	}

	sets, err := suggestion.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", path).WithField("sets", len(sets)).Info("loaded suggestion catalogue")
	return sets, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *logrus.Logger) error {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Infof("MindMirror backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("MindMirror backend shut down")
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
