package outwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWithFile(t *testing.T) {
	t.Run("writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := w.Write([]byte("hello"))
			return err
		}, "Wrote test")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("propagates writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		boom := errors.New("boom")
		err := writeWithFile(path, func(io.Writer) error { return boom }, "Wrote test")
		assert.ErrorIs(t, err, boom)
	})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	assert.Error(t, writeJSON(&buf, make(chan int)))
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())

	boom := errors.New("boom")
	err = writeCSVWithHeader(&buf, []string{"a"}, func(*csv.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "150", fmtIntensity(150))
	assert.Equal(t, "150.5", fmtIntensity(150.5))
	assert.Equal(t, "150.3", fmtIntensity(150.26))
	assert.Equal(t, "42.0%", fmtPercent(42))
}

func TestWriteFooter(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(schema.TextOut, "")
	cfg.Workers = 4
	cfg.CacheBackend = schema.SQLiteBackend
	require.NoError(t, writeFooter(&buf, cfg, "Fetch", 1500*time.Millisecond))
	assert.Equal(t, "Fetch completed in 1.5s with 4 workers. Cache backend: sqlite\n", buf.String())
}

func TestLevelLabel(t *testing.T) {
	cfg := testConfig(schema.TextOut, "")
	cfg.UseColors = false
	assert.Equal(t, "Very High", levelLabel(schema.VeryHighLevel, cfg))
}
