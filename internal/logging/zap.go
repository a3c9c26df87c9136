package logging

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger adapts a zap SugaredLogger to Logger. The context is accepted for
// interface parity; zap does not read it.
type ZapLogger struct {
	l *zap.SugaredLogger
}

func NewZapLogger(l *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{l: l}
}

func (z *ZapLogger) Debug(_ context.Context, msg string, args ...any) {
	z.l.Debugw(msg, args...)
}

func (z *ZapLogger) Info(_ context.Context, msg string, args ...any) {
	z.l.Infow(msg, args...)
}

func (z *ZapLogger) Warn(_ context.Context, msg string, args ...any) {
	z.l.Warnw(msg, args...)
}

func (z *ZapLogger) Error(_ context.Context, msg string, args ...any) {
	z.l.Errorw(msg, args...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}
