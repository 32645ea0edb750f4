package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Adapter lets a *zap.Logger be handed to a kvs client as its Logger.
type Adapter struct {
	l *zap.Logger
}

// Wrap returns an Adapter over l. A nil l resolves to the process logger at
// the time of each call, so Wrap(nil) follows later InitLogger calls.
func Wrap(l *zap.Logger) *Adapter {
	return &Adapter{l: l}
}

func (a *Adapter) Log(level zapcore.Level, msg string, fields ...zap.Field) {
	l := a.l
	if l == nil {
		l = zap.L()
	}
	if ce := l.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}
