package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEnginesConfig(t *testing.T) {
	path := writeConfig(t, `
default_engine: whisper-server
engines:
  whisper-server:
    type: whisper-server
    enabled: true
    settings:
      base_url: http://localhost:5000
  openai:
    type: openai
    enabled: false
orchestrator:
  fallback_chain: [whisper-server, openai]
  probe_ttl_sec: 60
`)

	cfg, err := LoadEnginesConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "whisper-server", cfg.DefaultEngine)
	assert.True(t, cfg.Engines["whisper-server"].Enabled)
	assert.Equal(t, []string{"whisper-server", "openai"}, cfg.Orchestrator.FallbackChain)
	assert.Equal(t, 60, cfg.Orchestrator.ProbeTTLSec)
	// Unset orchestrator values fall back to defaults.
	assert.Equal(t, 5, cfg.Orchestrator.ProbeTimeoutSec)
	assert.Equal(t, 300, cfg.Orchestrator.TranscribeTimeoutSec)
}

func TestLoadEnginesConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_WHISPER_URL", "http://gpu-box:5000")
	path := writeConfig(t, `
engines:
  whisper-server:
    type: whisper-server
    enabled: true
    settings:
      base_url: ${TEST_WHISPER_URL}
`)

	cfg, err := LoadEnginesConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:5000", cfg.Engines["whisper-server"].Settings["base_url"])
}

func TestLoadEnginesConfigRejectsAllDisabled(t *testing.T) {
	path := writeConfig(t, `
engines:
  openai:
    type: openai
    enabled: false
`)

	_, err := LoadEnginesConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one engine must be enabled")
}

func TestLoadEnginesConfigRejectsUnknownType(t *testing.T) {
	path := writeConfig(t, `
engines:
  mystery:
    type: quantum
    enabled: true
`)

	_, err := LoadEnginesConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid engine type")
}

func TestLoadEnginesConfigMissingFile(t *testing.T) {
	_, err := LoadEnginesConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestCreateDefaultConfigRoundTrip(t *testing.T) {
	cfg := CreateDefaultConfig()
	require.NoError(t, cfg.Validate())

	path := filepath.Join(t.TempDir(), "nested", "engines.yaml")
	require.NoError(t, SaveEnginesConfig(cfg, path))

	loaded, err := LoadEnginesConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultEngine, loaded.DefaultEngine)
	assert.Equal(t, cfg.Orchestrator.FallbackChain, loaded.Orchestrator.FallbackChain)
}
