package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"attendterm/internal/domain/ports"
)

// SlogLogger реализует интерфейс ports.Logger поверх log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// Options параметры создания логгера
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text или json
	Output io.Writer
}

// New создает логгер с заданными параметрами.
func New(opts Options) ports.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

// Nop возвращает логгер, отбрасывающий все сообщения.
func Nop() ports.Logger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel переводит имя уровня в slog.Level; неизвестные имена дают Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debug(msg string, args ...interface{}) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...interface{}) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...interface{}) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...interface{}) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) With(args ...interface{}) ports.Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}
