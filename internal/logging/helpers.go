package logging

import "log/slog"

// Nil-safe wrappers so callers can log without guarding an optional logger.

func Info(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, args...)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, args...)
}

// Error appends err as an "error" attribute when non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	logger.Error(msg, args...)
}
