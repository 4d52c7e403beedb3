package logger

import (
	"log/slog"
	"time"
)

// LogQuest logs a quest engine operation
func LogQuest(msg string, playerID int64, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "quest"),
		slog.Int64("player_id", playerID),
	}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogFarm logs a farm engine operation
func LogFarm(msg string, playerID int64, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "farm"),
		slog.Int64("player_id", playerID),
	}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogQuery logs database operations
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs,
			slog.String("query", query),
			slog.Any("error", err),
		)...)
	} else {
		slog.Info("Query executed", append(attrs,
			slog.String("query", query),
		)...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
