package kvs

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 6379
)

// ConnectionConfig identifies a Redis database. A client copies the config it
// is built with and never changes it afterwards.
type ConnectionConfig struct {
	Host     string
	Port     int
	DB       int
	Password string
	Logger   Logger
}

// Addr returns the host:port dial address.
func (c ConnectionConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL renders the config as redis://[:password@]host:port/db.
func (c ConnectionConfig) URL() string {
	u := url.URL{
		Scheme: "redis",
		Host:   c.Addr(),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Password != "" {
		u.User = url.UserPassword("", c.Password)
	}
	return u.String()
}

func (c ConnectionConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.Host) == "":
		return &ConfigurationError{Reason: "host is empty"}
	case c.Port < 1 || c.Port > 65535:
		return &ConfigurationError{Reason: fmt.Sprintf("port %d out of range", c.Port)}
	case c.DB < 0:
		return &ConfigurationError{Reason: fmt.Sprintf("db %d is negative", c.DB)}
	}
	return nil
}

// ConfigFromEnv reads PREFIX_HOST, PREFIX_PORT, PREFIX_DB and PREFIX_PASSWORD,
// falling back to localhost:6379 db 0 without a password.
func ConfigFromEnv(prefix string) (ConnectionConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("db", 0)
	v.SetDefault("password", "")

	port, err := cast.ToIntE(v.Get("port"))
	if err != nil {
		return ConnectionConfig{}, &ConfigurationError{Reason: fmt.Sprintf("port: %v", err)}
	}
	db, err := cast.ToIntE(v.Get("db"))
	if err != nil {
		return ConnectionConfig{}, &ConfigurationError{Reason: fmt.Sprintf("db: %v", err)}
	}

	cfg := ConnectionConfig{
		Host:     v.GetString("host"),
		Port:     port,
		DB:       db,
		Password: v.GetString("password"),
	}
	if err := cfg.Validate(); err != nil {
		return ConnectionConfig{}, err
	}
	return cfg, nil
}
