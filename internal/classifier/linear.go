// Package classifier implements the linear maximum-margin model behind
// the detector. Training minimizes the L2-regularized hinge loss with
// Pegasos-style stochastic subgradient steps; the result is a signed
// margin per input whose sign selects the class.
package classifier

import (
	"errors"
	"math/rand"

	"github.com/Becker23/projeto-cd-ia/internal/feature"
)

// Params control the SGD fit.
type Params struct {
	// C is the inverse regularization strength, as in the usual SVM
	// formulation; lambda = 1 / (C * n).
	C float64 `json:"c"`
	// Epochs is the number of passes over the training set.
	Epochs int `json:"epochs"`
	// Seed makes the per-epoch sample order reproducible.
	Seed int64 `json:"seed"`
}

// DefaultParams fit a lightly regularized model, C=1.0 in the usual
// SVM parameterization.
func DefaultParams() Params {
	return Params{C: 1.0, Epochs: 60, Seed: 42}
}

// LinearModel is the fitted decision function w·x + b. It is meaningless
// without the FeatureSpace it was trained against; the artifact store
// enforces the pairing.
type LinearModel struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// ErrNoTrainingData is returned when Train receives an empty set.
var ErrNoTrainingData = errors.New("classifier: no training vectors")

// Train fits a linear model on the given vectors. labels carry the class
// encoding +1 (ai) / -1 (human). dim is the feature space dimensionality;
// vectors may be sparse but never index beyond dim.
func Train(vectors []feature.Vector, labels []float64, dim int, params Params) (*LinearModel, error) {
	n := len(vectors)
	if n == 0 || n != len(labels) {
		return nil, ErrNoTrainingData
	}

	lambda := 1.0 / (params.C * float64(n))
	rng := rand.New(rand.NewSource(params.Seed))

	w := make([]float64, dim)
	var b float64
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	t := 0
	for epoch := 0; epoch < params.Epochs; epoch++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			t++
			eta := 1.0 / (lambda * float64(t))
			shrink := 1.0 - eta*lambda
			for j := range w {
				w[j] *= shrink
			}
			if labels[i]*(vectors[i].Dot(w)+b) < 1 {
				for j, v := range vectors[i] {
					w[j] += eta * labels[i] * v
				}
				// The bias is not regularized; a damped step keeps it
				// from dominating early iterations.
				b += biasStep * labels[i]
			}
		}
	}

	return &LinearModel{Weights: w, Bias: b}, nil
}

// biasStep is the fixed learning rate of the intercept.
const biasStep = 0.01

// Margin evaluates the signed decision value for one vector. Positive
// margins indicate the "ai" class, negative the "human" class.
func (m *LinearModel) Margin(v feature.Vector) float64 {
	return v.Dot(m.Weights) + m.Bias
}

// Dim returns the weight vector length.
func (m *LinearModel) Dim() int { return len(m.Weights) }
