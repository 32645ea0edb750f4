package main

import (
	"bytes"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHelpWithoutServer(t *testing.T) {
	t.Setenv("KVS_PORT", "1")

	out, err := run(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "kvs-client")

	_, err = run(t, "completion", "bash")
	require.NoError(t, err)
}

func TestStoreCommandWithoutServer(t *testing.T) {
	t.Setenv("KVS_PORT", "1")

	_, err := run(t, "exists", "test_key")
	assert.Error(t, err)
}

func TestSetThenGet(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("KVS_HOST", mr.Host())
	t.Setenv("KVS_PORT", mr.Port())

	_, err := run(t, "set", "test_key", "test_value")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test_key"))

	out, err := run(t, "get", "test_key")
	require.NoError(t, err)
	assert.Equal(t, "test_value\n", out)
}
