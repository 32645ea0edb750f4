package kvs

import (
	"go.opentelemetry.io/otel/metric"
)

// Option configures a client built by New, NewFromConfig or GetOrCreate.
type Option func(*settings)

type settings struct {
	cfg ConnectionConfig

	hostSet bool
	portSet bool
	dbSet   bool

	meterProvider metric.MeterProvider
}

func newSettings(cfg ConnectionConfig, opts []Option) *settings {
	s := &settings{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// missing lists the required parameters GetOrCreate was not given.
func (s *settings) missing() []string {
	var names []string
	if !s.hostSet {
		names = append(names, "host")
	}
	if !s.portSet {
		names = append(names, "port")
	}
	if !s.dbSet {
		names = append(names, "db")
	}
	return names
}

// differs reports whether any explicitly supplied endpoint parameter does not
// match cfg.
func (s *settings) differs(cfg ConnectionConfig) bool {
	return (s.hostSet && s.cfg.Host != cfg.Host) ||
		(s.portSet && s.cfg.Port != cfg.Port) ||
		(s.dbSet && s.cfg.DB != cfg.DB)
}

func WithHost(host string) Option {
	return func(s *settings) {
		s.cfg.Host = host
		s.hostSet = true
	}
}

func WithPort(port int) Option {
	return func(s *settings) {
		s.cfg.Port = port
		s.portSet = true
	}
}

func WithDB(db int) Option {
	return func(s *settings) {
		s.cfg.DB = db
		s.dbSet = true
	}
}

func WithPassword(password string) Option {
	return func(s *settings) {
		s.cfg.Password = password
	}
}

func WithLogger(logger Logger) Option {
	return func(s *settings) {
		s.cfg.Logger = logger
	}
}

// WithMeterProvider sets where operation metrics are recorded. The global otel
// provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *settings) {
		s.meterProvider = mp
	}
}
