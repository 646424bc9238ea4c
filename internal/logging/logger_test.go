package logging

import (
	"os"
	"path/filepath"
	"testing"

	"medivault/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	logger, closer, err := New(config.LoggingConfig{}, config.AppConfig{Name: "medivault"})
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewLevelParsing(t *testing.T) {
	logger, _, err := New(config.LoggingConfig{Level: "debug"}, config.AppConfig{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	// Garbage level falls back to info.
	logger, _, err = New(config.LoggingConfig{Level: "loud"}, config.AppConfig{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := New(config.LoggingConfig{Output: "file", FilePath: path}, config.AppConfig{Name: "medivault"})
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()

	logger.Info().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"app":"medivault"`)
}

func TestNewFileOutputWithoutPath(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "file"}, config.AppConfig{})
	assert.Error(t, err)
}

func TestComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	base, closer, err := New(config.LoggingConfig{Output: "file", FilePath: path}, config.AppConfig{})
	require.NoError(t, err)
	defer closer.Close()

	child := Component(base, "worker")
	child.Info().Msg("tick")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"worker"`)
}
