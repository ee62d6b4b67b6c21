package logger

import (
	"io"
	"log/slog"
	"os"

	"pmportal/internal/config"
)

// New builds the application logger: JSON in production, text in
// development, and sets it as the slog default.
func New(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.Server.Environment == config.EnvironmentProduction {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	logger := slog.New(handler).With(
		"service", "pmportal",
		"environment", cfg.Server.Environment,
	)

	slog.SetDefault(logger)
	return logger
}

// WithUser tags a logger with the acting principal.
func WithUser(l *slog.Logger, userID string, role string) *slog.Logger {
	return l.With("user_id", userID, "role", role)
}

// Silence redirects logs to w at error level only. Tests pass io.Discard.
func Silence(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}
