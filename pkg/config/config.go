package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents one normalization run.
type Config struct {
	Input    string         `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Resolver ResolverConfig `yaml:"resolver"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OutputConfig names the three produced files.
type OutputConfig struct {
	Clean     string `yaml:"clean"`
	Anomalies string `yaml:"anomalies"`
	Audit     string `yaml:"audit"`
}

// ResolverConfig selects and bounds the ambiguity-resolution capability.
type ResolverConfig struct {
	Mode        string  `yaml:"mode"` // "ollama" or "off"
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	TimeoutMS   int     `yaml:"timeout_ms"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input: "inventory_raw.csv",
		Output: OutputConfig{
			Clean:     "inventory_clean.csv",
			Anomalies: "anomalies.json",
			Audit:     "prompts.md",
		},
		Resolver: ResolverConfig{
			Mode:        "ollama",
			Endpoint:    "http://localhost:11434",
			Model:       "tinyllama",
			Temperature: 0.2,
			TimeoutMS:   20000,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML (or JSON) configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
