package logger

import (
	"log/slog"
	"os"
)

// New returns a text slog logger writing to stdout. Debug output is gated
// behind STRIPELOG_DEBUG so operators can turn it on without a redeploy.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("STRIPELOG_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
