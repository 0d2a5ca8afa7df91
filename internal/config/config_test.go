package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", c.Server.Host)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "out/pool", c.Pipeline.OutputDir)
	assert.Equal(t, 8, c.Synth.Experts)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pioneerpool.yaml")
	yaml := "server:\n  port: 9191\n  rate_limit_rps: 5\nsynth:\n  experts: 3\n  seed: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, c.Server.Port)
	assert.Equal(t, 5.0, c.Server.RateLimitRPS)
	assert.Equal(t, 3, c.Synth.Experts)
	assert.Equal(t, int64(7), c.Synth.Seed)
	// Untouched sections keep their defaults.
	assert.Equal(t, "127.0.0.1", c.Server.Host)
	assert.Equal(t, 10, c.Server.ReadTimeoutSeconds)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does/not/exist.yaml")
	assert.Error(t, err)
}
