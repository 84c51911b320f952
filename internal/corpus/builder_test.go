package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBuildPairedTopics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gravity__original.txt", "Gravity is the force that attracts bodies toward one another.")
	writeFile(t, dir, "gravity__ia.txt", "Gravity represents a fundamental interaction governing attraction.")
	writeFile(t, dir, "history__original.txt", "History studies past events through written records.")
	writeFile(t, dir, "history__ia.txt", "History encompasses the systematic study of recorded events.")

	ds, report, err := NewBuilder(zap.NewNop()).Build(dir)
	require.NoError(t, err)
	require.Equal(t, 0, report.Total())

	// 2 paired topics -> exactly 4 samples.
	require.Equal(t, 4, ds.Len())
	counts := ds.CountByLabel()
	assert.Equal(t, 2, counts[models.LabelHuman])
	assert.Equal(t, 2, counts[models.LabelAI])

	// Topics in lexical order, human before ai within each pair.
	assert.Equal(t, "gravity", ds.Samples[0].TopicKey)
	assert.Equal(t, models.LabelHuman, ds.Samples[0].Label)
	assert.Equal(t, "gravity", ds.Samples[1].TopicKey)
	assert.Equal(t, models.LabelAI, ds.Samples[1].Label)
	assert.Equal(t, "history", ds.Samples[2].TopicKey)
	assert.Equal(t, "history", ds.Samples[3].TopicKey)

	// Texts were normalized.
	assert.Equal(t, "gravity is the force that attracts bodies toward one another.", ds.Samples[0].CleanedText)
}

func TestBuildSkipsUnpairedTopics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gravity__original.txt", "human side")
	writeFile(t, dir, "gravity__ia.txt", "ai side")
	writeFile(t, dir, "lonely__original.txt", "no ai counterpart")
	writeFile(t, dir, "orphan__ia.txt", "no human counterpart")

	ds, report, err := NewBuilder(zap.NewNop()).Build(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, report.MissingPair)
	assert.Equal(t, 0, report.Unreadable)
}

func TestBuildSkipsEmptyAfterCleaning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gravity__original.txt", "real human text here")
	writeFile(t, dir, "gravity__ia.txt", " \n\t ")

	ds, report, err := NewBuilder(zap.NewNop()).Build(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, 1, report.EmptyAfterClean)
	assert.Equal(t, models.LabelHuman, ds.Samples[0].Label)
}

func TestBuildIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gravity__original.txt", "human text")
	writeFile(t, dir, "gravity__ia.txt", "ai text")
	writeFile(t, dir, "notes.md", "not part of the corpus")

	ds, report, err := NewBuilder(zap.NewNop()).Build(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 0, report.Total())
}

func TestBuildMissingDirectory(t *testing.T) {
	_, _, err := NewBuilder(zap.NewNop()).Build(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ds := &models.Dataset{Samples: []models.TextSample{
		{TopicKey: "gravity", Label: models.LabelHuman, CleanedText: "bodies attract, always"},
		{TopicKey: "gravity", Label: models.LabelAI, CleanedText: "a fundamental interaction"},
	}}

	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, WriteSnapshot(ds, path))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, ds.Samples[0].TopicKey, got.Samples[0].TopicKey)
	require.Equal(t, ds.Samples[0].Label, got.Samples[0].Label)
	require.Equal(t, ds.Samples[0].CleanedText, got.Samples[0].CleanedText)
	require.Equal(t, ds.Samples[1], got.Samples[1])
}

func TestReadSnapshotRejectsUnknownLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte("topic_key,label,cleaned_text\nx,alien,text\n"), 0o644))
	_, err := ReadSnapshot(path)
	require.Error(t, err)
}
