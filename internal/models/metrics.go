package models

// ConfusionMatrix holds the 2x2 evaluation counts with "ai" as the
// positive class.
type ConfusionMatrix struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

// Sum returns the total number of evaluated samples.
func (m ConfusionMatrix) Sum() int {
	return m.TP + m.FP + m.TN + m.FN
}

// Metrics is the evaluation document emitted by one training run.
type Metrics struct {
	Accuracy        float64         `json:"accuracy"`
	Labels          []string        `json:"labels"`
	ConfusionMatrix ConfusionMatrix `json:"confusion_matrix"`
	NTrain          int             `json:"n_train"`
	NTest           int             `json:"n_test"`
}
