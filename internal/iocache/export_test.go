package iocache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteHistoryExport(t *testing.T) {
	t.Run("missing output file", func(t *testing.T) {
		err := ExecuteHistoryExport(&MockHistoryStore{}, "")
		assert.Error(t, err)
	})

	t.Run("nil store", func(t *testing.T) {
		err := ExecuteHistoryExport(nil, "out")
		assert.Error(t, err)
	})

	t.Run("status failure", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("boom"))

		err := ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "out"))
		assert.ErrorContains(t, err, "boom")
		store.AssertExpectations(t)
	})

	t.Run("no runs", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "out"))
		assert.ErrorContains(t, err, "no run history")
	})

	t.Run("writes both files", func(t *testing.T) {
		store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		runID, err := store.BeginRun(2023, time.Now(), map[string]any{"year": 2023})
		require.NoError(t, err)
		require.NoError(t, store.RecordWeeks(runID, sampleWeeks()))
		require.NoError(t, store.EndRun(runID, time.Now(), 14, 2))

		prefix := filepath.Join(t.TempDir(), "history")
		require.NoError(t, ExecuteHistoryExport(store, prefix))

		for _, suffix := range []string{".runs.parquet", ".weekly_summaries.parquet"} {
			info, err := os.Stat(prefix + suffix)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		}
	})
}
