// Package config loads conduit's operating defaults from a YAML file
// via gopkg.in/yaml.v3, with specific fields overridable by
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults cmd/conduit-demo and integration tests wire
// into channel construction and timeouts, rather than scattering
// literals through the code.
type Config struct {
	Channel ChannelConfig `yaml:"channel"`
	Logging LoggingConfig `yaml:"logging"`
}

// ChannelConfig holds default capacities and deadlines for channels
// built by the demo/wiring layer. These are conduit's own defaults, not
// part of the core's contract — channel.New/NewBuffered always take an
// explicit capacity.
type ChannelConfig struct {
	DefaultBufferSize  uint          `yaml:"default_buffer_size"`
	SendTimeout        time.Duration `yaml:"send_timeout"`
	RecvTimeout        time.Duration `yaml:"recv_timeout"`
	SelectWaitTimeout  time.Duration `yaml:"select_wait_timeout"`
	SubscriberBacklog  uint          `yaml:"subscriber_backlog"`
}

// LoggingConfig controls internal/telemetry.NewLogger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Default returns conduit's built-in defaults, used when no config file
// is supplied.
func Default() *Config {
	return &Config{
		Channel: ChannelConfig{
			DefaultBufferSize: 16,
			SendTimeout:       time.Second,
			RecvTimeout:       time.Second,
			SelectWaitTimeout: time.Second,
			SubscriberBacklog: 16,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads YAML from path and layers CONDUIT_*-prefixed environment
// variable overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONDUIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CONDUIT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CONDUIT_DEFAULT_BUFFER_SIZE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Channel.DefaultBufferSize = uint(n)
		}
	}
}
