package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFrameRate = 30
	DefaultTimeout   = 20 * time.Second
)

type Config struct {
	FrameRate       int    `yaml:"frame_rate"`
	Endpoint        string `yaml:"endpoint"`
	Model           string `yaml:"model"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	Validate        bool   `yaml:"validate"`
	DefaultScenario string `yaml:"default_scenario"`
	LogLevel        string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		FrameRate:       DefaultFrameRate,
		TimeoutSeconds:  int(DefaultTimeout.Seconds()),
		Validate:        true,
		DefaultScenario: "pendulum",
		LogLevel:        "warn",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FrameRate < 1 || c.FrameRate > 120 {
		return fmt.Errorf("frame_rate must be between 1 and 120, got %d", c.FrameRate)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
