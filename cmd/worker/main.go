package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	archiveminio "github.com/haris936hk/EchoNote-sub002/internal/adapters/archive/minio"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/blobstore/fs"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/engine/exec"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/eventbroker/nats"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/repository/postgres"
	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
	meetingservice "github.com/haris936hk/EchoNote-sub002/internal/core/service/meeting"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/notify"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/pipeline"

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
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	store, err := fs.NewStore(cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to init blob store", "error", err)
		os.Exit(1)
	}

	broker, err := nats.NewBroker(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS broker initialized")

	var archiver port.AudioArchiver
	if cfg.Archive.Enabled {
		adapter, archiveErr := archiveminio.NewAdapter(ctx, cfg.Archive, logger)
		if archiveErr != nil {
			logger.Error("failed to init audio archiver", "error", archiveErr)
			os.Exit(1)
		}
		archiver = adapter
		logger.Info("audio archiver initialized", "bucket", cfg.Archive.BucketName)
	}

	meetingRepo := postgres.NewSqlMeetingRepository(db)
	notifier := notify.NewNotifyService(broker, cfg.NATS.NotifySubject, logger)
	meetingService := meetingservice.NewMeetingService(
		meetingRepo, store, notifier, broker, cfg.Upload, cfg.NATS.UploadSubject, logger)

	engine := exec.NewEngine(cfg.Engine, store.ProcessedDir(), logger)
	pipelineService := pipeline.NewPipelineService(
		meetingService, engine, store, archiver, cfg.Engine.StageTimeout, logger)

	if err := broker.Subscribe(ctx, pipelineService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS subscription active")

	<-ctx.Done()
	logger.Info("gracefully shutting down worker")

	// Close drains the subscription; in-flight messages are redelivered.
	if err := broker.Close(); err != nil {
		logger.Error("failed to close NATS during shutdown", "error", err)
	}

	logger.Info("worker shutdown complete")
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
