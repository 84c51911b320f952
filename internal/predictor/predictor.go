// Package predictor evaluates the loaded artifact bundle against
// incoming text. The bundle is immutable shared state; Predict is safe
// for concurrent use without locking.
package predictor

import (
	"errors"
	"math"
	"time"

	"github.com/Becker23/projeto-cd-ia/internal/artifact"
	"github.com/Becker23/projeto-cd-ia/internal/models"
	"github.com/Becker23/projeto-cd-ia/internal/textnorm"
)

// ErrEmptyText is returned for input that is empty, whitespace-only or
// cleans down to nothing. An empty input never yields a label.
var ErrEmptyText = errors.New("predictor: text is empty after normalization")

// Prediction is the classification outcome for one input.
type Prediction struct {
	Label models.Label
	// Confidence is a logistic squash of the absolute margin,
	// 1/(1+exp(-|margin|)), a bounded relative separation proxy in
	// [0.5, 1). It is not a calibrated probability.
	Confidence float64
	// Margin is the raw signed decision value; positive means "ai".
	Margin float64
}

// Predictor classifies text against one training run's artifacts.
type Predictor struct {
	bundle *artifact.Bundle
}

// New wraps a loaded bundle. The bundle must not be mutated afterwards.
func New(bundle *artifact.Bundle) *Predictor {
	return &Predictor{bundle: bundle}
}

// Predict normalizes text, transforms it through the bundle's feature
// space and maps the classifier margin to a label. The sign convention
// matches training: margin >= 0 reads "ai", margin < 0 reads "human".
func (p *Predictor) Predict(text string) (Prediction, error) {
	cleaned := textnorm.Normalize(text)
	if cleaned == "" {
		return Prediction{}, ErrEmptyText
	}

	margin := p.bundle.Model.Margin(p.bundle.Space.Transform(cleaned))
	label := models.LabelHuman
	if margin >= 0 {
		label = models.LabelAI
	}
	return Prediction{
		Label:      label,
		Confidence: 1.0 / (1.0 + math.Exp(-math.Abs(margin))),
		Margin:     margin,
	}, nil
}

// Metrics exposes the bundle's evaluation document for the serving API.
func (p *Predictor) Metrics() *models.Metrics { return p.bundle.Metrics }

// RunID identifies the training run the predictor is serving.
func (p *Predictor) RunID() string { return p.bundle.RunID }

// CreatedAt reports when the served bundle was trained.
func (p *Predictor) CreatedAt() time.Time { return p.bundle.CreatedAt }
