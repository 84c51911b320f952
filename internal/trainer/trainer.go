// Package trainer runs the offline fit-and-evaluate step: stratified
// dataset split, feature space fitting on the training partition only,
// classifier training and confusion-matrix evaluation.
package trainer

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/classifier"
	"github.com/Becker23/projeto-cd-ia/internal/feature"
	"github.com/Becker23/projeto-cd-ia/internal/models"
)

// minPerClass is the minimum viable sample count per class; anything
// below cannot produce both a train and a test representative.
const minPerClass = 2

// ErrDegenerateDataset marks a dataset too small or too imbalanced to
// train on. No model is persisted when it is returned.
var ErrDegenerateDataset = errors.New("trainer: dataset has fewer than 2 samples in some class")

// Config collects the training knobs.
type Config struct {
	// SplitRatio is the train fraction of the stratified split.
	SplitRatio float64
	// Seed drives both the split shuffle and the classifier SGD.
	Seed int64
	// Feature and Classifier default to DefaultParams when zero.
	Feature    feature.Params
	Classifier classifier.Params
}

// Result bundles everything one training run produces.
type Result struct {
	Model   *classifier.LinearModel
	Space   *feature.FeatureSpace
	Metrics *models.Metrics
}

// Trainer fits and evaluates a detector on a cleaned dataset.
type Trainer struct {
	logger *zap.Logger
}

// New creates a Trainer.
func New(logger *zap.Logger) *Trainer {
	return &Trainer{logger: logger}
}

// Train splits ds, fits the feature space and classifier on the train
// partition and evaluates on the test partition. Given the same dataset,
// ratio and seed the returned metrics are identical across runs.
func (t *Trainer) Train(ds *models.Dataset, cfg Config) (*Result, error) {
	if cfg.SplitRatio <= 0 || cfg.SplitRatio >= 1 {
		return nil, fmt.Errorf("trainer: split ratio %v outside (0,1)", cfg.SplitRatio)
	}
	counts := ds.CountByLabel()
	if counts[models.LabelHuman] < minPerClass || counts[models.LabelAI] < minPerClass {
		return nil, fmt.Errorf("%w: human=%d ai=%d", ErrDegenerateDataset,
			counts[models.LabelHuman], counts[models.LabelAI])
	}

	trainIdx, testIdx := stratifiedSplit(ds, cfg.SplitRatio, cfg.Seed)

	trainTexts := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainTexts[i] = ds.Samples[idx].CleanedText
	}

	featParams := cfg.Feature
	if featParams == (feature.Params{}) {
		featParams = feature.DefaultParams()
	}
	// The vocabulary is fitted on the training partition only; the test
	// partition never leaks into the feature space.
	space := feature.Fit(trainTexts, featParams)

	clfParams := cfg.Classifier
	if clfParams == (classifier.Params{}) {
		clfParams = classifier.DefaultParams()
	}
	clfParams.Seed = cfg.Seed

	trainVecs := make([]feature.Vector, len(trainIdx))
	trainLabels := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainVecs[i] = space.Transform(ds.Samples[idx].CleanedText)
		trainLabels[i] = ds.Samples[idx].Label.Sign()
	}

	model, err := classifier.Train(trainVecs, trainLabels, space.Dim(), clfParams)
	if err != nil {
		return nil, fmt.Errorf("trainer: fit failed: %w", err)
	}

	metrics := evaluate(model, space, ds, testIdx)
	metrics.NTrain = len(trainIdx)
	metrics.NTest = len(testIdx)

	t.logger.Info("Training run finished",
		zap.Int("n_train", metrics.NTrain),
		zap.Int("n_test", metrics.NTest),
		zap.Int("vocabulary", space.Dim()),
		zap.Float64("accuracy", metrics.Accuracy),
	)
	return &Result{Model: model, Space: space, Metrics: metrics}, nil
}

// stratifiedSplit partitions sample indices preserving class balance.
// Each class contributes ratio of its members (rounded, but always at
// least one) to the train side; the remainder goes to the test side.
func stratifiedSplit(ds *models.Dataset, ratio float64, seed int64) (train, test []int) {
	byLabel := make(map[models.Label][]int, 2)
	for i, s := range ds.Samples {
		byLabel[s.Label] = append(byLabel[s.Label], i)
	}

	labels := make([]models.Label, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	rng := rand.New(rand.NewSource(seed))
	for _, label := range labels {
		idx := byLabel[label]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTrain := int(ratio * float64(len(idx)))
		if nTrain < 1 {
			nTrain = 1
		}
		if nTrain >= len(idx) {
			nTrain = len(idx) - 1
		}
		train = append(train, idx[:nTrain]...)
		test = append(test, idx[nTrain:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}

// evaluate computes accuracy and the 2x2 confusion matrix on the test
// partition, with "ai" as the positive class.
func evaluate(model *classifier.LinearModel, space *feature.FeatureSpace, ds *models.Dataset, testIdx []int) *models.Metrics {
	var cm models.ConfusionMatrix
	correct := 0
	for _, idx := range testIdx {
		sample := ds.Samples[idx]
		margin := model.Margin(space.Transform(sample.CleanedText))
		predictedAI := margin >= 0
		actualAI := sample.Label == models.LabelAI
		switch {
		case predictedAI && actualAI:
			cm.TP++
		case predictedAI && !actualAI:
			cm.FP++
		case !predictedAI && !actualAI:
			cm.TN++
		default:
			cm.FN++
		}
		if predictedAI == actualAI {
			correct++
		}
	}

	accuracy := 0.0
	if len(testIdx) > 0 {
		accuracy = float64(correct) / float64(len(testIdx))
	}
	return &models.Metrics{
		Accuracy:        accuracy,
		Labels:          []string{string(models.LabelHuman), string(models.LabelAI)},
		ConfusionMatrix: cm,
	}
}
