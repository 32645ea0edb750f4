package kvs

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NoExpiry is the TTL reported for a key that was stored without one.
const NoExpiry time.Duration = -1

// KvsClient is a lazily connected handle to one Redis database. The zero
// value is not usable; build one with New or NewFromConfig.
//
// Every operation connects on first use, so calling Connect is optional. A
// client may be reconnected after Disconnect.
type KvsClient struct {
	cfg     ConnectionConfig
	logger  Logger
	metrics *clientMetrics

	mu  sync.Mutex
	rdb *redis.Client
}

// New builds a client for host:port/db. It performs no I/O.
func New(host string, port, db int, opts ...Option) *KvsClient {
	s := newSettings(ConnectionConfig{}, opts)
	s.cfg.Host, s.cfg.Port, s.cfg.DB = host, port, db
	return newClient(s)
}

// NewFromConfig builds a client from cfg; opts are applied on top of it.
func NewFromConfig(cfg ConnectionConfig, opts ...Option) *KvsClient {
	return newClient(newSettings(cfg, opts))
}

func newClient(s *settings) *KvsClient {
	logger := s.cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &KvsClient{
		cfg:     s.cfg,
		logger:  logger,
		metrics: newClientMetrics(s.meterProvider),
	}
}

// Config returns the configuration the client was built with.
func (c *KvsClient) Config() ConnectionConfig {
	return c.cfg
}

func (c *KvsClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rdb != nil
}

// Connect opens the connection and verifies it with PING. It does nothing if
// the client is already connected. Errors from Redis are returned as is.
func (c *KvsClient) Connect(ctx context.Context) error {
	_, err := c.conn(ctx)
	return err
}

// Disconnect closes the connection if there is one. The handle is released
// even when closing it fails.
func (c *KvsClient) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rdb == nil {
		return nil
	}
	err := c.rdb.Close()
	c.rdb = nil
	c.metrics.connections.Add(ctx, -1)
	c.logger.Log(zapcore.InfoLevel, "disconnected from redis", zap.String("addr", c.cfg.Addr()))
	return err
}

// conn returns the live handle, connecting first if needed. The lock is held
// across the dial so concurrent first callers share one handle.
func (c *KvsClient) conn(ctx context.Context) (*redis.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rdb != nil {
		return c.rdb, nil
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	opt, err := redis.ParseURL(c.cfg.URL())
	if err != nil {
		c.connectFailed(ctx, err)
		return nil, err
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		c.connectFailed(ctx, err)
		return nil, err
	}

	c.rdb = rdb
	c.metrics.record(ctx, "connect", resultOK)
	c.metrics.connections.Add(ctx, 1)
	c.logger.Log(zapcore.InfoLevel, "connected to redis",
		zap.String("addr", c.cfg.Addr()), zap.Int("db", c.cfg.DB))
	return rdb, nil
}

func (c *KvsClient) connectFailed(ctx context.Context, err error) {
	c.metrics.record(ctx, "connect", resultError)
	c.logger.Log(zapcore.ErrorLevel, "failed to connect to redis",
		zap.String("host", c.cfg.Host), zap.Error(err))
}

func (c *KvsClient) failed(ctx context.Context, op, key string, err error) {
	c.metrics.record(ctx, op, resultError)
	c.logger.Log(zapcore.ErrorLevel, op+" failed", zap.String("key", key), zap.Error(err))
}

// Get returns the string stored at key. ok is false if the key does not exist.
func (c *KvsClient) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	rdb, err := c.conn(ctx)
	if err != nil {
		return "", false, err
	}

	value, err = rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		c.metrics.record(ctx, "get", resultMiss)
		return "", false, nil
	}
	if err != nil {
		c.failed(ctx, "get", key, err)
		return "", false, err
	}
	c.metrics.record(ctx, "get", resultHit)
	return value, true, nil
}

// GetAsDict returns the JSON object stored at key. A stored value that is not
// a JSON object, including JSON null, yields a *DeserializationError. JSON
// numbers decode as float64.
func (c *KvsClient) GetAsDict(ctx context.Context, key string) (map[string]any, bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	var dict map[string]any
	if err := json.Unmarshal([]byte(raw), &dict); err != nil {
		return nil, false, &DeserializationError{Key: key, Err: errors.Wrap(err, "decode dict")}
	}
	if dict == nil {
		return nil, false, &DeserializationError{Key: key, Err: errNullDict}
	}
	return dict, true, nil
}

// Set stores value at key. A ttl of zero stores it without expiry; a positive
// ttl is passed to Redis, which uses millisecond precision when ttl is not a
// whole number of seconds.
func (c *KvsClient) Set(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	if ttl < 0 {
		return false, ErrInvalidTTL
	}
	rdb, err := c.conn(ctx)
	if err != nil {
		return false, err
	}

	status, err := rdb.Set(ctx, key, value, ttl).Result()
	if err != nil {
		c.failed(ctx, "set", key, err)
		return false, err
	}
	c.metrics.record(ctx, "set", resultOK)
	return status == "OK", nil
}

// SetDict encodes value as JSON and stores it like Set.
func (c *KvsClient) SetDict(ctx context.Context, key string, value map[string]any, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, &SerializationError{Key: key, Err: errors.Wrap(err, "encode dict")}
	}
	return c.Set(ctx, key, string(raw), ttl)
}

// Delete removes key and reports whether it existed.
func (c *KvsClient) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	rdb, err := c.conn(ctx)
	if err != nil {
		return false, err
	}

	n, err := rdb.Del(ctx, key).Result()
	if err != nil {
		c.failed(ctx, "delete", key, err)
		return false, err
	}
	c.metrics.record(ctx, "delete", resultOK)
	return n > 0, nil
}

func (c *KvsClient) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	rdb, err := c.conn(ctx)
	if err != nil {
		return false, err
	}

	n, err := rdb.Exists(ctx, key).Result()
	if err != nil {
		c.failed(ctx, "exists", key, err)
		return false, err
	}
	c.metrics.record(ctx, "exists", resultOK)
	return n > 0, nil
}

// TTL returns the remaining time to live of key, or NoExpiry if it has none.
// ok is false if the key does not exist.
func (c *KvsClient) TTL(ctx context.Context, key string) (ttl time.Duration, ok bool, err error) {
	if key == "" {
		return 0, false, ErrEmptyKey
	}
	rdb, err := c.conn(ctx)
	if err != nil {
		return 0, false, err
	}

	ttl, err = rdb.TTL(ctx, key).Result()
	if err != nil {
		c.failed(ctx, "ttl", key, err)
		return 0, false, err
	}
	c.metrics.record(ctx, "ttl", resultOK)
	// go-redis passes -2 (missing) and -1 (no expiry) through unscaled.
	switch ttl {
	case -2:
		return 0, false, nil
	case -1:
		return NoExpiry, true, nil
	}
	return ttl, true, nil
}
