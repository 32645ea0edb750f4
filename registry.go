package kvs

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Registry holds at most one shared client. The first GetOrCreate must name
// host, port and db; later calls return the same client and ignore their
// arguments.
type Registry struct {
	mu     sync.Mutex
	client *KvsClient
}

func NewRegistry() *Registry {
	return &Registry{}
}

// GetOrCreate returns the registry's client, creating and connecting it on the
// first call. If connecting fails the registry stays empty and the error is
// returned.
func (r *Registry) GetOrCreate(ctx context.Context, opts ...Option) (*KvsClient, error) {
	s := newSettings(ConnectionConfig{}, opts)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		if s.differs(r.client.cfg) {
			r.client.logger.Log(zapcore.WarnLevel, "ignoring connection parameters, shared client already exists",
				zap.String("addr", r.client.cfg.Addr()), zap.Int("db", r.client.cfg.DB),
				zap.String("requestedAddr", s.cfg.Addr()), zap.Int("requestedDB", s.cfg.DB))
		}
		return r.client, nil
	}

	if missing := s.missing(); len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}
	client := newClient(s)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	r.client = client
	return client, nil
}

// Close disconnects and drops the shared client. It is a no-op if there is
// none.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	client := r.client
	r.client = nil
	r.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

var defaultRegistry = NewRegistry()

// GetOrCreate uses the process-wide registry. See Registry.GetOrCreate.
func GetOrCreate(ctx context.Context, opts ...Option) (*KvsClient, error) {
	return defaultRegistry.GetOrCreate(ctx, opts...)
}

// Close closes the process-wide registry's client.
func Close(ctx context.Context) error {
	return defaultRegistry.Close(ctx)
}
