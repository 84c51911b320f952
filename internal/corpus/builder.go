// Package corpus assembles the paired human/AI training dataset from a
// directory of text files following the {topic}__original.txt /
// {topic}__ia.txt naming convention.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/models"
	"github.com/Becker23/projeto-cd-ia/internal/textnorm"
)

const (
	humanSuffix = "__original.txt"
	aiSuffix    = "__ia.txt"
)

// SkipReport counts the samples the builder dropped and why. Skips are
// never fatal to the build; they are surfaced for the batch-job logs.
type SkipReport struct {
	MissingPair     int `json:"missing_pair"`
	Unreadable      int `json:"unreadable"`
	EmptyAfterClean int `json:"empty_after_clean"`
}

// Total returns the overall number of skipped samples.
func (r SkipReport) Total() int {
	return r.MissingPair + r.Unreadable + r.EmptyAfterClean
}

// Builder scans a corpus directory and produces a cleaned Dataset.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a corpus builder.
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build scans dir for topic pairs, normalizes both sides and returns the
// dataset in a stable order: topics lexically sorted, human sample before
// ai sample within each topic. Topics missing one side, unreadable files
// and texts that are empty after cleaning are counted in the SkipReport
// and excluded.
func (b *Builder) Build(dir string) (*models.Dataset, *SkipReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read corpus directory %s: %w", dir, err)
	}

	humanFiles := make(map[string]string)
	aiFiles := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, humanSuffix):
			topic := strings.TrimSuffix(name, humanSuffix)
			humanFiles[topic] = filepath.Join(dir, name)
		case strings.HasSuffix(name, aiSuffix):
			topic := strings.TrimSuffix(name, aiSuffix)
			aiFiles[topic] = filepath.Join(dir, name)
		}
	}

	report := &SkipReport{}
	topics := make([]string, 0, len(humanFiles))
	for topic := range humanFiles {
		if _, ok := aiFiles[topic]; ok {
			topics = append(topics, topic)
		} else {
			report.MissingPair++
			b.logger.Warn("Topic has no ai counterpart, skipping", zap.String("topic", topic))
		}
	}
	for topic := range aiFiles {
		if _, ok := humanFiles[topic]; !ok {
			report.MissingPair++
			b.logger.Warn("Topic has no human counterpart, skipping", zap.String("topic", topic))
		}
	}
	sort.Strings(topics)

	// Pairing is checked against the raw corpus; unreadable or
	// empty-after-cleaning sides are filtered per sample afterwards.
	ds := &models.Dataset{}
	for _, topic := range topics {
		if human, ok := b.readSample(topic, models.LabelHuman, humanFiles[topic], report); ok {
			ds.Samples = append(ds.Samples, human)
		}
		if ai, ok := b.readSample(topic, models.LabelAI, aiFiles[topic], report); ok {
			ds.Samples = append(ds.Samples, ai)
		}
	}

	b.logger.Info("Corpus built",
		zap.Int("topics", len(topics)),
		zap.Int("samples", ds.Len()),
		zap.Int("skipped_missing_pair", report.MissingPair),
		zap.Int("skipped_unreadable", report.Unreadable),
		zap.Int("skipped_empty", report.EmptyAfterClean),
	)
	return ds, report, nil
}

// readSample loads and normalizes one side of a pair. It returns false
// when the file is unreadable or cleans down to nothing, bumping the
// matching skip counter.
func (b *Builder) readSample(topic string, label models.Label, path string, report *SkipReport) (models.TextSample, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		report.Unreadable++
		b.logger.Warn("Failed to read corpus file, skipping", zap.String("path", path), zap.Error(err))
		return models.TextSample{}, false
	}

	cleaned := textnorm.Normalize(string(raw))
	if cleaned == "" {
		report.EmptyAfterClean++
		b.logger.Warn("Corpus file is empty after cleaning, skipping", zap.String("path", path))
		return models.TextSample{}, false
	}

	return models.TextSample{
		TopicKey:    topic,
		Label:       label,
		RawText:     string(raw),
		CleanedText: cleaned,
	}, true
}
