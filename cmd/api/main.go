package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/adapters/blobstore/fs"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/eventbroker/nats"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/handlers/http/chi"
	adminv1 "github.com/haris936hk/EchoNote-sub002/internal/adapters/handlers/http/chi/v1/admin"
	meetingv1 "github.com/haris936hk/EchoNote-sub002/internal/adapters/handlers/http/chi/v1/meeting"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/repository/postgres"
	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/cleanup"
	meetingservice "github.com/haris936hk/EchoNote-sub002/internal/core/service/meeting"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/notify"
	"github.com/haris936hk/EchoNote-sub002/internal/schedule"

	_ "github.com/lib/pq"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	store, err := fs.NewStore(cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to init blob store", "error", err)
		os.Exit(1)
	}

	//event broker
	broker, err := nats.NewBroker(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init NATS", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := broker.Close(); err != nil {
			logger.Error("failed to close NATS", "error", err)
		}
	}()

	//repositories and services
	meetingRepo := postgres.NewSqlMeetingRepository(db)
	notifier := notify.NewNotifyService(broker, cfg.NATS.NotifySubject, logger)
	meetingService := meetingservice.NewMeetingService(
		meetingRepo, store, notifier, broker, cfg.Upload, cfg.NATS.UploadSubject, logger)
	cleanupService := cleanup.NewCleanupService(store, meetingRepo, cfg.Storage.TempMaxAge, logger)

	//http
	meetingHandler := meetingv1.NewMeetingHandlerV1(meetingService, logger)
	adminHandler := adminv1.NewAdminHandlerV1(store, cleanupService, logger)

	router := chi.NewRouter(logger, meetingHandler, adminHandler, cfg.Env.Env, cfg.Upload.MaxSizeBytes)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//scheduled tasks
	sweepJob := schedule.NewJob("storage-sweep", cfg.Storage.CleanupEvery, func(ctx context.Context) error {
		return cleanupService.Sweep(ctx, time.Now())
	}, logger)
	sweepJob.Start(ctx)

	probeJob := schedule.NewJob("db-probe", cfg.Database.ProbeEvery, func(ctx context.Context) error {
		return db.PingContext(ctx)
	}, logger)
	probeJob.Start(ctx)

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	sweepJob.Stop()
	probeJob.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}
