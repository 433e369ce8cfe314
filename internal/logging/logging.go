package logging

import (
	"log/slog"
	"os"
)

// jsonEnvVar switches log output to JSON, for runs driven by CI pipelines
// that collect stderr.
const jsonEnvVar = "DIRSPECTRE_LOG_JSON"

func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if os.Getenv(jsonEnvVar) != "" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
