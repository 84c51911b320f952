package models

// Label is the binary text-origin class.
type Label string

const (
	LabelHuman Label = "human"
	LabelAI    Label = "ai"
)

// Valid reports whether l is one of the two known classes.
func (l Label) Valid() bool {
	return l == LabelHuman || l == LabelAI
}

// Sign returns the numeric class encoding used by the classifier:
// +1 for "ai", -1 for "human". The convention is fixed project-wide;
// the predictor relies on it when mapping a margin back to a label.
func (l Label) Sign() float64 {
	if l == LabelAI {
		return 1
	}
	return -1
}

// TextSample is one labeled text belonging to a topic pair.
type TextSample struct {
	TopicKey    string `json:"topic_key" db:"topic_key"`
	Label       Label  `json:"label" db:"label"`
	RawText     string `json:"-" db:"raw_text"`
	CleanedText string `json:"cleaned_text" db:"cleaned_text"`
}

// Dataset is an ordered sequence of samples. The order is fixed at build
// time (topics in lexical order, human before ai within a pair) so that
// seeded splits are reproducible.
type Dataset struct {
	Samples []TextSample `json:"samples"`
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Samples) }

// CountByLabel returns how many samples carry each label.
func (d *Dataset) CountByLabel() map[Label]int {
	counts := make(map[Label]int, 2)
	for _, s := range d.Samples {
		counts[s.Label]++
	}
	return counts
}
