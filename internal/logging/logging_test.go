package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLevel, level)

	level, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}

func TestNew_JSONFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{Level: "info"})
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "archive").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "archive", entry["component"])
	assert.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(&buf, Options{Level: "info", Console: true})
	require.NoError(t, err)
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNew_AlsoWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbt.log")
	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{Level: "warn", File: path})
	require.NoError(t, err)
	logger.Warn().Msg("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestNew_FileOpenError(t *testing.T) {
	orig := openFile
	openFile = func(string) (io.WriteCloser, error) { return nil, errors.New("denied") }
	t.Cleanup(func() { openFile = orig })

	_, closer, err := New(io.Discard, Options{File: "/x.log"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file /x.log")
	assert.NoError(t, closer.Close())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New(io.Discard, Options{Level: "nope"})
	require.Error(t, err)
	assert.NotNil(t, closer)
}
