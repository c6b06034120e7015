package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/iyhunko/product-service/internal/config"
	"github.com/lmittmann/tint"
)

// New builds the structured logger handed to services, middleware and workers.
// JSON output is the default; "text" switches to a tint handler for local development.
func New(w io.Writer, format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if format == config.LogFormatText {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
			NoColor:    w != os.Stdout,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// InitJSONLogger configures and sets the default slog logger to use JSON format.
// Only code without an injected logger (config loading, process bootstrap) relies on the default.
func InitJSONLogger() *slog.Logger {
	log := New(os.Stdout, config.LogFormatJSON, false)
	slog.SetDefault(log)
	return log
}
