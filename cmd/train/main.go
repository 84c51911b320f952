package main

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/artifact"
	"github.com/Becker23/projeto-cd-ia/internal/classifier"
	"github.com/Becker23/projeto-cd-ia/internal/config"
	"github.com/Becker23/projeto-cd-ia/internal/corpus"
	"github.com/Becker23/projeto-cd-ia/internal/feature"
	"github.com/Becker23/projeto-cd-ia/internal/repository"
	"github.com/Becker23/projeto-cd-ia/internal/trainer"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting training run...")

	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Corpus assembly. Skips are logged, never fatal.
	builder := corpus.NewBuilder(logger)
	ds, report, err := builder.Build(cfg.Corpus.Dir)
	if err != nil {
		logger.Fatal("Failed to build corpus", zap.Error(err))
	}
	if report.Total() > 0 {
		logger.Warn("Some corpus samples were skipped",
			zap.Int("missing_pair", report.MissingPair),
			zap.Int("unreadable", report.Unreadable),
			zap.Int("empty_after_clean", report.EmptyAfterClean),
		)
	}

	featParams := feature.DefaultParams()
	if cfg.Training.MaxFeatures > 0 {
		featParams.MaxFeatures = cfg.Training.MaxFeatures
	}
	clfParams := classifier.DefaultParams()
	if cfg.Training.Epochs > 0 {
		clfParams.Epochs = cfg.Training.Epochs
	}
	if cfg.Training.C > 0 {
		clfParams.C = cfg.Training.C
	}

	result, err := trainer.New(logger).Train(ds, trainer.Config{
		SplitRatio: cfg.Training.SplitRatio,
		Seed:       cfg.Training.Seed,
		Feature:    featParams,
		Classifier: clfParams,
	})
	if err != nil {
		if errors.Is(err, trainer.ErrDegenerateDataset) {
			logger.Fatal("Corpus is too small to train on; no model was persisted", zap.Error(err))
		}
		logger.Fatal("Training failed", zap.Error(err))
	}

	bundle := artifact.NewBundle(result.Space, result.Model, result.Metrics, ds)
	store := artifact.NewStore(logger)
	if err := store.Save(bundle, cfg.Artifacts.Dir); err != nil {
		logger.Fatal("Failed to save artifact bundle", zap.Error(err))
	}

	// Persist dataset rows for auditing and the serving-time stats API.
	db, err := repository.NewSQLiteDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open dataset database", zap.Error(err))
	}
	defer db.Close()
	if err := repository.MigrateDB(db, cfg.Database.MigrationsDir, logger); err != nil {
		logger.Fatal("Failed to migrate dataset database", zap.Error(err))
	}
	if err := repository.NewDatasetRepository(db, logger).SaveRun(bundle.RunID, ds.Samples); err != nil {
		logger.Fatal("Failed to persist dataset run", zap.Error(err))
	}

	cm := result.Metrics.ConfusionMatrix
	logger.Info("Training run complete",
		zap.String("run_id", bundle.RunID),
		zap.Float64("accuracy", result.Metrics.Accuracy),
		zap.Int("n_train", result.Metrics.NTrain),
		zap.Int("n_test", result.Metrics.NTest),
		zap.Int("tp", cm.TP), zap.Int("fp", cm.FP),
		zap.Int("tn", cm.TN), zap.Int("fn", cm.FN),
		zap.String("artifacts", cfg.Artifacts.Dir),
	)
}
