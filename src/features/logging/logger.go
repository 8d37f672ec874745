package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/contre95/songshelf/src/features/config"
)

// SetupLogger builds the application logger writing to stderr.
func SetupLogger(cfg *config.Manager) *slog.Logger {
	return NewLogger(cfg.Get().Logger, os.Stderr)
}

// SetupFileLogger builds a logger that appends to path. The terminal UI owns
// the screen, so its logs go to a file instead.
func SetupFileLogger(cfg *config.Manager, path string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(cfg.Get().Logger, f), f, nil
}

// NewLogger creates a slog logger backed by a charmbracelet handler.
// A disabled logger discards everything.
func NewLogger(opts config.Logger, w io.Writer) *slog.Logger {
	if !opts.Enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var formatter log.Formatter
	switch opts.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		formatter = log.TextFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "Songshelf",
		Formatter:       formatter,
		Level:           parseLevel(opts.Level),
	})

	logger := slog.New(handler)
	logger.Info("Logger initialized", "time", time.Now().Format(time.RFC3339))
	return logger
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
