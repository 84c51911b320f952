// Package artifact persists and loads the versioned output of one
// training run: feature space, linear model, metrics and the cleaned
// dataset snapshot. The members are written and loaded as a matched set;
// mixing members across runs is detected and rejected.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/classifier"
	"github.com/Becker23/projeto-cd-ia/internal/corpus"
	"github.com/Becker23/projeto-cd-ia/internal/feature"
	"github.com/Becker23/projeto-cd-ia/internal/models"
)

// FormatVersion is bumped whenever the serialized schema changes in an
// incompatible way; loaders reject bundles with a different version.
const FormatVersion = 1

const (
	manifestFile = "manifest.json"
	spaceFile    = "feature_space.json"
	modelFile    = "model.json"
	metricsFile  = "metrics.json"
	datasetFile  = "dataset.csv"
)

var (
	// ErrBundleIncomplete marks a bundle with a missing required member.
	ErrBundleIncomplete = errors.New("artifact: bundle member missing")
	// ErrBundleVersion marks a bundle written with an incompatible format.
	ErrBundleVersion = errors.New("artifact: unsupported bundle format version")
	// ErrBundleMismatch marks members that were not produced by the same
	// training run.
	ErrBundleMismatch = errors.New("artifact: bundle members from different training runs")
)

// Bundle is the matched set produced by one training run.
type Bundle struct {
	RunID     string
	CreatedAt time.Time
	Space     *feature.FeatureSpace
	Model     *classifier.LinearModel
	Metrics   *models.Metrics
	Dataset   *models.Dataset
}

// NewBundle stamps a fresh run identity onto the training outputs.
func NewBundle(space *feature.FeatureSpace, model *classifier.LinearModel, metrics *models.Metrics, ds *models.Dataset) *Bundle {
	return &Bundle{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Space:     space,
		Model:     model,
		Metrics:   metrics,
		Dataset:   ds,
	}
}

type manifest struct {
	FormatVersion int       `json:"format_version"`
	RunID         string    `json:"run_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type spaceDoc struct {
	RunID string               `json:"run_id"`
	Space feature.FeatureSpace `json:"feature_space"`
}

type modelDoc struct {
	RunID string                 `json:"run_id"`
	Model classifier.LinearModel `json:"model"`
}

type metricsDoc struct {
	RunID   string         `json:"run_id"`
	Metrics models.Metrics `json:"metrics"`
}

// Store reads and writes artifact bundles on the local filesystem.
type Store struct {
	logger *zap.Logger
}

// NewStore creates a Store.
func NewStore(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// Save writes the bundle to dir. The write is staged in a temporary
// sibling directory and swapped in with a rename, so a concurrent loader
// observes either the previous bundle or the complete new one, never a
// partial state.
func (s *Store) Save(bundle *Bundle, dir string) error {
	tmp := dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return fmt.Errorf("artifact: failed to clear staging dir: %w", err)
	}
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return fmt.Errorf("artifact: failed to create staging dir: %w", err)
	}

	steps := []struct {
		file string
		doc  any
	}{
		{manifestFile, manifest{FormatVersion: FormatVersion, RunID: bundle.RunID, CreatedAt: bundle.CreatedAt}},
		{spaceFile, spaceDoc{RunID: bundle.RunID, Space: *bundle.Space}},
		{modelFile, modelDoc{RunID: bundle.RunID, Model: *bundle.Model}},
		{metricsFile, metricsDoc{RunID: bundle.RunID, Metrics: *bundle.Metrics}},
	}
	for _, step := range steps {
		if err := writeJSON(filepath.Join(tmp, step.file), step.doc); err != nil {
			return err
		}
	}
	if err := corpus.WriteSnapshot(bundle.Dataset, filepath.Join(tmp, datasetFile)); err != nil {
		return err
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("artifact: failed to remove previous bundle: %w", err)
	}
	if err := os.Rename(tmp, dir); err != nil {
		return fmt.Errorf("artifact: failed to publish bundle: %w", err)
	}

	s.logger.Info("Artifact bundle saved",
		zap.String("dir", dir),
		zap.String("run_id", bundle.RunID),
	)
	return nil
}

// Load reads a bundle from dir, verifying the format version, the
// presence of every member and that all members carry the manifest's run
// id. A model whose dimensionality disagrees with the vocabulary is
// rejected as a mismatched pairing.
func (s *Store) Load(dir string) (*Bundle, error) {
	var man manifest
	if err := readJSON(filepath.Join(dir, manifestFile), &man); err != nil {
		return nil, err
	}
	if man.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBundleVersion, man.FormatVersion, FormatVersion)
	}

	var space spaceDoc
	if err := readJSON(filepath.Join(dir, spaceFile), &space); err != nil {
		return nil, err
	}
	var model modelDoc
	if err := readJSON(filepath.Join(dir, modelFile), &model); err != nil {
		return nil, err
	}
	var metrics metricsDoc
	if err := readJSON(filepath.Join(dir, metricsFile), &metrics); err != nil {
		return nil, err
	}

	for _, runID := range []string{space.RunID, model.RunID, metrics.RunID} {
		if runID != man.RunID {
			return nil, fmt.Errorf("%w: manifest %s vs member %s", ErrBundleMismatch, man.RunID, runID)
		}
	}
	if model.Model.Dim() != space.Space.Dim() {
		return nil, fmt.Errorf("%w: model dim %d vs vocabulary dim %d",
			ErrBundleMismatch, model.Model.Dim(), space.Space.Dim())
	}

	ds, err := corpus.ReadSnapshot(filepath.Join(dir, datasetFile))
	if err != nil {
		if os.IsNotExist(errors.Unwrap(err)) {
			return nil, fmt.Errorf("%w: %s", ErrBundleIncomplete, datasetFile)
		}
		return nil, err
	}

	s.logger.Info("Artifact bundle loaded",
		zap.String("dir", dir),
		zap.String("run_id", man.RunID),
		zap.Int("vocabulary", space.Space.Dim()),
		zap.Float64("accuracy", metrics.Metrics.Accuracy),
	)
	return &Bundle{
		RunID:     man.RunID,
		CreatedAt: man.CreatedAt,
		Space:     &space.Space,
		Model:     &model.Model,
		Metrics:   &metrics.Metrics,
		Dataset:   ds,
	}, nil
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("artifact: failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("artifact: failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, doc any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBundleIncomplete, filepath.Base(path))
		}
		return fmt.Errorf("artifact: failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("artifact: failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
