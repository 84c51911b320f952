package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/models"
)

// DatasetStats summarizes the most recent training run's dataset rows.
type DatasetStats struct {
	RunID  string `json:"run_id" db:"run_id"`
	Total  int    `json:"total"`
	Humans int    `json:"humans"`
	AIs    int    `json:"ais"`
	Topics int    `json:"topics"`
}

// DatasetRepository persists the cleaned dataset rows of each training
// run for auditability.
type DatasetRepository interface {
	SaveRun(runID string, samples []models.TextSample) error
	Stats() (*DatasetStats, error)
}

type datasetRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewDatasetRepository creates a new dataset repository.
func NewDatasetRepository(db *sqlx.DB, logger *zap.Logger) DatasetRepository {
	return &datasetRepository{db: db, logger: logger}
}

// SaveRun inserts every usable sample of one training run in a single
// transaction.
func (r *datasetRepository) SaveRun(runID string, samples []models.TextSample) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin dataset transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO dataset_samples (run_id, topic_key, label, cleaned_text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	for _, s := range samples {
		if _, err := tx.Exec(query, runID, s.TopicKey, string(s.Label), s.CleanedText, now); err != nil {
			return fmt.Errorf("failed to insert dataset sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset run: %w", err)
	}

	r.logger.Info("Dataset run persisted",
		zap.String("run_id", runID),
		zap.Int("samples", len(samples)),
	)
	return nil
}

// Stats returns row counts for the most recently persisted run.
func (r *datasetRepository) Stats() (*DatasetStats, error) {
	stats := &DatasetStats{}

	err := r.db.Get(&stats.RunID, `
		SELECT run_id FROM dataset_samples
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest dataset run: %w", err)
	}

	row := r.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN label = 'human' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN label = 'ai' THEN 1 ELSE 0 END), 0),
		       COUNT(DISTINCT topic_key)
		FROM dataset_samples
		WHERE run_id = ?
	`, stats.RunID)
	if err := row.Scan(&stats.Total, &stats.Humans, &stats.AIs, &stats.Topics); err != nil {
		return nil, fmt.Errorf("failed to count dataset samples: %w", err)
	}

	return stats, nil
}
