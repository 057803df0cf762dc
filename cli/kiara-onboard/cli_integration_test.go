//go:build integration

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// runCommand executes the root command with the given args and returns the
// captured stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	require.NoError(t, err, "version command should not return an error")
	assert.Contains(t, output, "kiara-onboard version", "version output should contain 'kiara-onboard version'")
}

func TestHelpCommand(t *testing.T) {
	output, err := runCommand(t, "help")
	require.NoError(t, err, "help command should not return an error")
	assert.Contains(t, output, "kiara-onboard retrieves files and bundles from external sources")
	assert.Contains(t, output, "Available Commands", "help output should list available commands")
}

func TestStrategiesCommand(t *testing.T) {
	output, err := runCommand(t, "strategies", "--config", filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, output, "onboarding.file.from.local_file")
	assert.Contains(t, output, "onboarding.file.from.url")
	assert.Contains(t, output, "onboarding.file.from.zenodo")
}

func TestFileCommand_LocalFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(source, []byte("hello"), 0o644))

	output, err := runCommand(t, "file", source, "--config", filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, output, "data.txt")
}

func TestFileCommand_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer server.Close()

	dir := t.TempDir()
	output, err := runCommand(t, "file", server.URL+"/remote.csv", "--config", filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, output, "remote.csv")
}

func TestBundleCommand_LocalDirectory(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "bundle")
	require.NoError(t, os.MkdirAll(source, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "a.csv"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "b.txt"), []byte("b"), 0o644))

	output, err := runCommand(t, "bundle", source,
		"--include", "*.csv",
		"--config", filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, output, "a.csv")
	assert.NotContains(t, output, "b.txt")
}

func TestConfigSetGet(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	_, err := runCommand(t, "config", "set", "log_level", "debug", "--config", configPath)
	require.NoError(t, err)

	output, err := runCommand(t, "config", "get", "log_level", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, output, "debug")
}
