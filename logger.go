package lshgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with index-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogTrain logs a full training run.
func (l *Logger) LogTrain(tables, batchSize int, err error) {
	if err != nil {
		l.Error("training failed",
			"tables", tables,
			"batch_size", batchSize,
			"error", err,
		)
	} else {
		l.Info("training completed",
			"tables", tables,
			"batch_size", batchSize,
		)
	}
}

// LogHash logs a bulk insert of a dataset.
func (l *Logger) LogHash(count int) {
	l.Info("dataset hashed",
		"count", count,
	)
}

// LogSnapshot logs a save or load of the index.
func (l *Logger) LogSnapshot(op, filename string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"filename", filename,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"op", op,
			"filename", filename,
		)
	}
}
