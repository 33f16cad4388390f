package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nucleoblink/protocol"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // keep a real ~/.blinkmon out of the test

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestRootCommandMissingDevice(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "ttyNONE")

	err := execute(t, "--device", dev, "--log-level", "error")
	require.Error(t, err)
	require.Contains(t, err.Error(), dev)
}

func TestRootCommandRejectsBadLogLevel(t *testing.T) {
	err := execute(t, "--log-level", "chatty")
	require.ErrorContains(t, err, "invalid log level")
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("baud = -1\n"), 0o600))

	err := execute(t, "--config", path)
	require.ErrorContains(t, err, "invalid baud rate")

	// An explicit flag wins over the file
	dev := filepath.Join(dir, "ttyNONE")
	err = execute(t, "--config", path, "--baud", "115200", "--device", dev, "--log-level", "error")
	require.ErrorContains(t, err, dev)
}

func TestRootCommandVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), protocol.Version)
}
