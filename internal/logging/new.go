package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a Logger for the given backend ("slog" or "zap") writing to w
// at the given level ("debug", "info", "warn" or "error").
func New(backend, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case BackendSlog, "":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), nil

	case BackendZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), lvl)
		return NewZapLogger(zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)).Sugar()), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewZapLogger(zap.NewNop().Sugar())
}
