package kvs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger receives the client's lifecycle and failure messages.
// kvs/utils/log.Wrap adapts a *zap.Logger to it.
type Logger interface {
	Log(level zapcore.Level, msg string, fields ...zap.Field)
}

type nopLogger struct{}

func (nopLogger) Log(zapcore.Level, string, ...zap.Field) {}
