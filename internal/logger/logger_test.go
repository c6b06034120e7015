package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/iyhunko/product-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LogFormatJSON, false)

	log.Info("test message", slog.String("key", "value"), slog.Int("number", 42))

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output should be valid JSON: %s", buf.String())

	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, float64(42), logEntry["number"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Contains(t, logEntry, "time")
}

func TestNew_Level(t *testing.T) {
	t.Run("debug records dropped by default", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, config.LogFormatJSON, false)

		log.Debug("hidden")

		assert.Empty(t, buf.String())
	})

	t.Run("debug records kept in debug mode", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, config.LogFormatJSON, true)

		log.Debug("visible")

		assert.Contains(t, buf.String(), "visible")
	})
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.LogFormatText, false)

	log.Info("product created", slog.String("product_id", "abc"))

	output := buf.String()
	assert.Contains(t, output, "product created")
	assert.Contains(t, output, "product_id=abc")
	assert.False(t, json.Valid(buf.Bytes()), "text output should not be JSON")
}

// TestInitJSONLogger_OutputFormat verifies that InitJSONLogger sets up
// JSON formatted output for slog.
func TestInitJSONLogger_OutputFormat(t *testing.T) {
	oldStdout := os.Stdout
	oldDefault := slog.Default()
	defer slog.SetDefault(oldDefault)

	r, w, err := os.Pipe()
	require.NoError(t, err, "failed to create pipe")

	os.Stdout = w
	InitJSONLogger()

	slog.Info("test initialization", slog.String("service", "test"), slog.Int("port", 8080))

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err, "failed to read from pipe")

	var logEntry map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "failed to parse log output as JSON: %s", buf.String())

	assert.Equal(t, "test initialization", logEntry["msg"])
	assert.Equal(t, "test", logEntry["service"])
	assert.Equal(t, float64(8080), logEntry["port"])
	assert.Equal(t, "INFO", logEntry["level"])
}
