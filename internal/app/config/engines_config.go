package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnginesConfig represents the overall configuration for all transcription engines
type EnginesConfig struct {
	DefaultEngine string                  `yaml:"default_engine"`
	Engines       map[string]EngineConfig `yaml:"engines"`
	Orchestrator  OrchestratorConfig      `yaml:"orchestrator,omitempty"`
}

// EngineConfig represents configuration for a single engine
type EngineConfig struct {
	Type     string                 `yaml:"type"`
	Enabled  bool                   `yaml:"enabled"`
	Auth     map[string]interface{} `yaml:"auth,omitempty"`
	Settings map[string]interface{} `yaml:"settings,omitempty"`
}

// OrchestratorConfig represents orchestration settings
type OrchestratorConfig struct {
	FallbackChain        []string `yaml:"fallback_chain,omitempty"`
	ProbeTTLSec          int      `yaml:"probe_ttl_sec,omitempty"`
	ProbeTimeoutSec      int      `yaml:"probe_timeout_sec,omitempty"`
	TranscribeTimeoutSec int      `yaml:"transcribe_timeout_sec,omitempty"`
}

// LoadEnginesConfig loads engine configuration from a YAML file
func LoadEnginesConfig(configPath string) (*EnginesConfig, error) {
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config EnginesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.expandEnvironmentVariables()
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveEnginesConfig saves engine configuration to a YAML file
func SaveEnginesConfig(config *EnginesConfig, configPath string) error {
	configPath = os.ExpandEnv(configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandEnvironmentVariables expands ${VAR} references in auth and settings
func (c *EnginesConfig) expandEnvironmentVariables() {
	for _, engine := range c.Engines {
		for key, value := range engine.Auth {
			if strValue, ok := value.(string); ok {
				if strings.HasPrefix(strValue, "${") && strings.HasSuffix(strValue, "}") {
					envVar := strings.TrimSuffix(strings.TrimPrefix(strValue, "${"), "}")
					engine.Auth[key] = os.Getenv(envVar)
				}
			}
		}

		for key, value := range engine.Settings {
			if strValue, ok := value.(string); ok {
				if strings.HasPrefix(strValue, "${") && strings.HasSuffix(strValue, "}") {
					envVar := strings.TrimSuffix(strings.TrimPrefix(strValue, "${"), "}")
					engine.Settings[key] = os.Getenv(envVar)
				}
			}
		}
	}
}

// setDefaults sets default values for the configuration
func (c *EnginesConfig) setDefaults() {
	if c.DefaultEngine == "" && len(c.Engines) > 0 {
		if _, ok := c.Engines["whisper-server"]; ok {
			c.DefaultEngine = "whisper-server"
		} else {
			for name, engine := range c.Engines {
				if engine.Enabled {
					c.DefaultEngine = name
					break
				}
			}
		}
	}

	if len(c.Orchestrator.FallbackChain) == 0 {
		c.Orchestrator.FallbackChain = []string{"whisper-server", "whisper-cpp", "openai"}
	}
	if c.Orchestrator.ProbeTTLSec == 0 {
		c.Orchestrator.ProbeTTLSec = 30
	}
	if c.Orchestrator.ProbeTimeoutSec == 0 {
		c.Orchestrator.ProbeTimeoutSec = 5
	}
	if c.Orchestrator.TranscribeTimeoutSec == 0 {
		c.Orchestrator.TranscribeTimeoutSec = 300
	}
}

// Validate validates the configuration
func (c *EnginesConfig) Validate() error {
	hasEnabledEngine := false
	for _, engine := range c.Engines {
		if engine.Enabled {
			hasEnabledEngine = true
			break
		}
	}

	if !hasEnabledEngine {
		return fmt.Errorf("at least one engine must be enabled")
	}

	if c.DefaultEngine != "" {
		engine, exists := c.Engines[c.DefaultEngine]
		if !exists {
			return fmt.Errorf("default engine '%s' does not exist", c.DefaultEngine)
		}
		if !engine.Enabled {
			return fmt.Errorf("default engine '%s' is not enabled", c.DefaultEngine)
		}
	}

	validTypes := map[string]bool{
		"whisper-server": true,
		"whisper-cpp":    true,
		"openai":         true,
	}

	for name, engine := range c.Engines {
		if !validTypes[engine.Type] {
			return fmt.Errorf("invalid engine type '%s' for engine '%s'", engine.Type, name)
		}
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	if path := os.Getenv("SCAMSHIELD_ENGINES_CONFIG"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "engines.yaml"
	}

	return filepath.Join(home, ".scamshield", "engines.yaml")
}

// CreateDefaultConfig creates the built-in configuration used when no engines
// file exists, sourcing paths and credentials from the environment
func CreateDefaultConfig() *EnginesConfig {
	return &EnginesConfig{
		DefaultEngine: "whisper-server",
		Engines: map[string]EngineConfig{
			"whisper-server": {
				Type:    "whisper-server",
				Enabled: true,
				Settings: map[string]interface{}{
					"base_url": envOr("SCAMSHIELD_WHISPER_SERVER_URL", "http://localhost:5000"),
				},
			},
			"whisper-cpp": {
				Type:    "whisper-cpp",
				Enabled: true,
				Settings: map[string]interface{}{
					"binary_path": os.Getenv("SCAMSHIELD_WHISPER_CPP_BINARY"),
					"model_path":  os.Getenv("SCAMSHIELD_WHISPER_CPP_MODEL"),
				},
			},
			"openai": {
				Type:    "openai",
				Enabled: true,
				Auth: map[string]interface{}{
					"api_key": os.Getenv("OPENAI_API_KEY"),
				},
			},
		},
		Orchestrator: OrchestratorConfig{
			FallbackChain:        []string{"whisper-server", "whisper-cpp", "openai"},
			ProbeTTLSec:          30,
			ProbeTimeoutSec:      5,
			TranscribeTimeoutSec: 300,
		},
	}
}
