package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"noticeboard/internal/config"
	"noticeboard/internal/database"
	"noticeboard/internal/logger"
	"noticeboard/internal/metrics"
	"noticeboard/internal/repository"
	"noticeboard/internal/service"
	"noticeboard/internal/storage"
	"noticeboard/internal/tasks"
)

// App holds everything the API process needs.
type App struct {
	Cfg      *config.Config
	Log      *logrus.Logger
	DB       *database.DB
	Store    *repository.Store
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Services *service.Service
	Sweep    *tasks.HashtagSweep
}

// Connect opens the database and wraps it in a transactional store.
func Connect(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*database.DB, *repository.Store, error) {
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, repository.NewStore(db.DB), nil
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Log)

	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY is not set")
	}

	db, store, err := Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("init minio: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	services := service.NewService(store, cfg, minioClient, m, log)

	return &App{
		Cfg:      cfg,
		Log:      log,
		DB:       db,
		Store:    store,
		Registry: registry,
		Metrics:  m,
		Services: services,
		Sweep:    tasks.NewHashtagSweep(services.Hashtag, m, log),
	}, nil
}

func (a *App) Close() {
	a.Sweep.Stop()
	if err := a.DB.CloseDB(); err != nil {
		a.Log.WithError(err).Warn("close database")
	}
}

// Serve runs srv until SIGINT or SIGTERM, then drains in-flight requests.
func Serve(srv *http.Server, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
