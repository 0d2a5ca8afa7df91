// Package config loads PioneerPool configuration from YAML. Every section
// has working defaults so the binary runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sawpanic/pioneerpool/internal/data"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                string  `yaml:"host"`
	Port                int     `yaml:"port"`
	ReadTimeoutSeconds  int     `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int     `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int     `yaml:"idle_timeout_seconds"`
	RequestTimeoutMS    int     `yaml:"request_timeout_ms"`
	RateLimitRPS        float64 `yaml:"rate_limit_rps"`
	RateLimitBurst      int     `yaml:"rate_limit_burst"`
}

// PipelineConfig holds batch pipeline settings.
type PipelineConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Config is the top-level PioneerPool configuration.
type Config struct {
	Server   ServerConfig     `yaml:"server"`
	Pipeline PipelineConfig   `yaml:"pipeline"`
	Synth    data.SynthConfig `yaml:"synth"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "127.0.0.1", // Local-only by default
			Port:                8080,
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			IdleTimeoutSeconds:  60,
			RequestTimeoutMS:    5000,
			RateLimitRPS:        50,
			RateLimitBurst:      100,
		},
		Pipeline: PipelineConfig{
			OutputDir: "out/pool",
		},
		Synth: data.DefaultSynthConfig(),
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return c, nil
}

// ReadTimeout returns the server read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the server write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the server idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// RequestTimeout returns the per-request timeout as a duration.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutMS) * time.Millisecond
}
