package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/artifact"
	"github.com/Becker23/projeto-cd-ia/internal/config"
	"github.com/Becker23/projeto-cd-ia/internal/predictor"
	"github.com/Becker23/projeto-cd-ia/internal/quiz"
	"github.com/Becker23/projeto-cd-ia/internal/repository"
	"github.com/Becker23/projeto-cd-ia/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// The artifact bundle is loaded exactly once; an incomplete or
	// mismatched bundle prevents the server from starting at all.
	store := artifact.NewStore(logger)
	bundle, err := store.Load(cfg.Artifacts.Dir)
	if err != nil {
		logger.Fatal("Failed to load artifact bundle; run the training job first", zap.Error(err))
	}

	p := predictor.New(bundle)

	engine, err := quiz.NewEngine(
		bundle.Dataset,
		cfg.Quiz.ExcerptWords,
		time.Duration(cfg.Quiz.SessionTTLMinutes)*time.Minute,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to build quiz engine", zap.Error(err))
	}

	db, err := repository.NewSQLiteDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open dataset database", zap.Error(err))
	}
	defer db.Close()
	if err := repository.MigrateDB(db, cfg.Database.MigrationsDir, logger); err != nil {
		logger.Fatal("Failed to migrate dataset database", zap.Error(err))
	}

	srv := server.NewServer(p, engine, db, logger)

	go func() {
		if err := srv.Run(cfg.Server.Port); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Detector is running",
		zap.String("port", cfg.Server.Port),
		zap.String("run_id", bundle.RunID),
		zap.Float64("model_accuracy", bundle.Metrics.Accuracy),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
