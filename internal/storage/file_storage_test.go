package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/storage"
)

func TestFileStorage(t *testing.T) {
	tmpDir := t.TempDir()

	fs, err := storage.NewFileStorage(filepath.Join(tmpDir, "results"))
	require.NoError(t, err)
	defer fs.Close()

	report := batch.NewReport()
	report.Documents = append(report.Documents, batch.ResultItem{ID: "a", Score: 0.5, Text: batch.PlainText("nice")})

	path, err := fs.Save("run 1/result.json", report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "results", "result.json"), path)

	loaded, err := fs.Load("result.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"documents": [{"id": "a", "score": 0.5, "text": "nice"}], "errors": []}`, string(loaded))
}

func TestSaveAddsExtension(t *testing.T) {
	tmpDir := t.TempDir()
	fs, err := storage.NewFileStorage(tmpDir)
	require.NoError(t, err)

	path, err := fs.Save("topics?run", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, "topics_run.json", filepath.Base(path))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadKeepsExistingExtension(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "batch.txt"), []byte(`{"documents": []}`), 0644))

	fs, err := storage.NewFileStorage(tmpDir)
	require.NoError(t, err)

	data, err := fs.Load("batch.txt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"documents": []}`, string(data))
}

func TestGetNonExistent(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Load("missing")
	assert.Error(t, err)
}
