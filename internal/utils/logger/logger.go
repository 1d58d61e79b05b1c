package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"smartmoney/internal/config"
)

type options struct {
	level *slog.Level
}

type Option func(*options)

// WithLevel переопределяет уровень окружения ("debug", "info", "warn", "error").
// Пустая или неизвестная строка игнорируется.
func WithLevel(level string) Option {
	return func(o *options) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
			o.level = &l
		}
	}
}

// New создает логгер для окружения: local - цветной вывод, dev - JSON с
// отладкой, prod - JSON с уровнем info.
func New(env string, opts ...Option) *slog.Logger {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch env {
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(o, slog.LevelDebug)}))
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(o, slog.LevelInfo)}))
	default:
		return newPretty(os.Stderr, levelOr(o, slog.LevelDebug))
	}
}

func setupPrettySlog() *slog.Logger {
	return newPretty(os.Stderr, slog.LevelDebug)
}

func levelOr(o options, def slog.Level) slog.Level {
	if o.level != nil {
		return *o.level
	}
	return def
}
