package kvs

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logEntry struct {
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

// recordingLogger keeps every message it is given.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) Log(level zapcore.Level, msg string, fields ...zap.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, msg, fields})
}

func (l *recordingLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.msg == msg {
			n++
		}
	}
	return n
}

func (l *recordingLogger) levels(level zapcore.Level) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var msgs []string
	for _, e := range l.entries {
		if e.level == level {
			msgs = append(msgs, e.msg)
		}
	}
	return msgs
}

func serverPort(t *testing.T, mr *miniredis.Miniredis) int {
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}

// newTestClient returns a client for db 0 of mr that is disconnected when the
// test ends.
func newTestClient(t *testing.T, mr *miniredis.Miniredis, opts ...Option) *KvsClient {
	client := New(mr.Host(), serverPort(t, mr), 0, opts...)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return client
}

func endpointOpts(t *testing.T, mr *miniredis.Miniredis) []Option {
	return []Option{WithHost(mr.Host()), WithPort(serverPort(t, mr)), WithDB(0)}
}
