package corpus

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Becker23/projeto-cd-ia/internal/models"
)

// snapshotHeader is the fixed column contract of the dataset snapshot.
var snapshotHeader = []string{"topic_key", "label", "cleaned_text"}

// WriteSnapshot serializes the cleaned dataset to a CSV file for
// auditability. The snapshot is informational; the predictor never
// re-parses it.
func WriteSnapshot(ds *models.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset snapshot: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(snapshotHeader); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	for _, s := range ds.Samples {
		if err := w.Write([]string{s.TopicKey, string(s.Label), s.CleanedText}); err != nil {
			return fmt.Errorf("failed to write snapshot row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return f.Close()
}

// ReadSnapshot loads a dataset snapshot written by WriteSnapshot. The
// artifact store uses it to carry the cleaned dataset inside a bundle.
func ReadSnapshot(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset snapshot: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset snapshot %s has no header row", path)
	}
	if len(records[0]) != len(snapshotHeader) {
		return nil, fmt.Errorf("dataset snapshot %s has unexpected columns %v", path, records[0])
	}

	ds := &models.Dataset{}
	for _, rec := range records[1:] {
		label := models.Label(rec[1])
		if !label.Valid() {
			return nil, fmt.Errorf("dataset snapshot %s has unknown label %q", path, rec[1])
		}
		ds.Samples = append(ds.Samples, models.TextSample{
			TopicKey:    rec[0],
			Label:       label,
			CleanedText: rec[2],
		})
	}
	return ds, nil
}
