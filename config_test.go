package kvs

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLWithoutPassword(t *testing.T) {
	cfg := ConnectionConfig{Host: "localhost", Port: 6379, DB: 0}
	assert.Equal(t, "redis://localhost:6379/0", cfg.URL())
	assert.Equal(t, "localhost:6379", cfg.Addr())
}

func TestURLWithPassword(t *testing.T) {
	cfg := ConnectionConfig{Host: "localhost", Port: 6379, DB: 15, Password: "secret"}
	assert.Equal(t, "redis://:secret@localhost:6379/15", cfg.URL())
}

func TestURLEscapesPassword(t *testing.T) {
	cfg := ConnectionConfig{Host: "localhost", Port: 6379, DB: 1, Password: "p@ss/w:rd"}
	assert.Equal(t, "redis://:p%40ss%2Fw%3Ard@localhost:6379/1", cfg.URL())
}

func TestAddrIPv6(t *testing.T) {
	cfg := ConnectionConfig{Host: "::1", Port: 6379}
	assert.Equal(t, "[::1]:6379", cfg.Addr())
	assert.Equal(t, "redis://[::1]:6379/0", cfg.URL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    ConnectionConfig
		reason string
	}{
		{"valid", ConnectionConfig{Host: "h", Port: 1, DB: 0}, ""},
		{"empty host", ConnectionConfig{Host: " ", Port: 6379}, "host is empty"},
		{"zero port", ConnectionConfig{Host: "h", Port: 0}, "port 0 out of range"},
		{"large port", ConnectionConfig{Host: "h", Port: 70000}, "port 70000 out of range"},
		{"negative db", ConnectionConfig{Host: "h", Port: 6379, DB: -1}, "db -1 is negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.reason, cfgErr.Reason)
		})
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("KVSTEST_HOST", "")
	t.Setenv("KVSTEST_PORT", "")
	t.Setenv("KVSTEST_DB", "")
	t.Setenv("KVSTEST_PASSWORD", "")

	cfg, err := ConfigFromEnv("kvstest")
	require.NoError(t, err)
	assert.Equal(t, ConnectionConfig{Host: DefaultHost, Port: DefaultPort, DB: 0}, cfg)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("KVSTEST_HOST", "cache.internal")
	t.Setenv("KVSTEST_PORT", "6380")
	t.Setenv("KVSTEST_DB", "15")
	t.Setenv("KVSTEST_PASSWORD", "secret")

	cfg, err := ConfigFromEnv("kvstest")
	require.NoError(t, err)
	assert.Equal(t, ConnectionConfig{Host: "cache.internal", Port: 6380, DB: 15, Password: "secret"}, cfg)
}

func TestConfigFromEnvInvalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"port not a number": {"KVSTEST_PORT", "redis"},
		"port out of range": {"KVSTEST_PORT", "99999"},
		"db not a number":   {"KVSTEST_DB", "first"},
		"negative db":       {"KVSTEST_DB", "-2"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])

			_, err := ConfigFromEnv("kvstest")
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
