package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Empty(t, cfg.Source)
	assert.Equal(t, 8000, cfg.Port)
	assert.Empty(t, cfg.Host)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.True(t, cfg.AccessLog)
	assert.Zero(t, cfg.MaxConnections)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "devserver.toml", `
port = 9090
host = "127.0.0.1"
title = "FitFun Dev Server"
access_log = false
max_connections = 16
shutdown_timeout = "2s"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "devserver.toml"), cfg.Source)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, "FitFun Dev Server", cfg.Title)
	assert.False(t, cfg.AccessLog)
	assert.Equal(t, 16, cfg.MaxConnections)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "devserver.yaml", "port: 8081\nshutdown_timeout: 750ms\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.ShutdownTimeout)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.AccessLog)
	assert.Equal(t, DefaultTitle, cfg.Title)
}

func TestLoadEmptyYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "devserver.yml", "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoadPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "devserver.toml", "port = 1234\n")
	writeFile(t, dir, "devserver.yaml", "port: 4321\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.Port)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unknown toml key",
			file:    "devserver.toml",
			content: "prot = 8000\n",
			wantErr: "unknown keys: prot",
		},
		{
			name:    "unknown yaml key",
			file:    "devserver.yaml",
			content: "prot: 8000\n",
			wantErr: "field prot not found",
		},
		{
			name:    "port out of range",
			file:    "devserver.toml",
			content: "port = 70000\n",
			wantErr: "port 70000 out of range",
		},
		{
			name:    "negative max connections",
			file:    "devserver.yaml",
			content: "max_connections: -1\n",
			wantErr: "max_connections must not be negative",
		},
		{
			name:    "zero shutdown timeout",
			file:    "devserver.toml",
			content: "shutdown_timeout = \"0s\"\n",
			wantErr: "shutdown_timeout must be positive",
		},
		{
			name:    "malformed toml",
			file:    "devserver.toml",
			content: "port = \n",
			wantErr: "devserver.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default("")
	assert.EqualError(t, cfg.Validate(), "root directory is not set")

	cfg = Default("/srv")
	cfg.Port = 0
	assert.NoError(t, cfg.Validate())
}
