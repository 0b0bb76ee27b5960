package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]LogLevel{"debug": DEBUG, "INFO": INFO, " Warn ": WARN, "error": ERROR} {
		got, err := ParseLevel(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestFileLoggerWritesStructuredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")
	l, err := NewLoggerWithFile(INFO, &FileOptions{Path: path, MaxSizeMB: 1})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("Trade executed", map[string]interface{}{"sequence_id": 42, "pair": "BTCZAR"})
	l.Error("boom")
	require.NoError(t, l.Sync())

	lines := readLines(t, path)
	require.Len(t, lines, 2)

	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "Trade executed", lines[0]["msg"])
	assert.Equal(t, float64(42), lines[0]["sequence_id"])
	assert.Equal(t, "BTCZAR", lines[0]["pair"])
	assert.Contains(t, lines[0], "ts")
	assert.Contains(t, lines[0], "pid")
	assert.Contains(t, lines[0], "caller")

	assert.Equal(t, "ERROR", lines[1]["level"])
}

func TestSetMinLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")
	l, err := NewLoggerWithFile(ERROR, &FileOptions{Path: path})
	require.NoError(t, err)

	assert.False(t, l.Enabled(WARN))
	l.Warn("dropped")

	l.SetMinLevel(DEBUG)
	assert.True(t, l.Enabled(DEBUG))
	l.Debug("kept")
	require.NoError(t, l.Sync())

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
}

func TestConfigureReplacesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.log")
	require.NoError(t, Configure(WARN, &FileOptions{Path: path}))
	t.Cleanup(func() { _ = Configure(INFO, nil) })

	Info("not written")
	Warn("written", map[string]interface{}{"k": "v"})
	require.NoError(t, Sync())

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "v", lines[0]["k"])
}
