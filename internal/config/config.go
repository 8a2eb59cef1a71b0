// Package config loads the server's YAML configuration, applying defaults
// for anything left unset.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	Redis  RedisConfig  `yaml:"redis"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig is the listen address
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GameConfig is the countdown pacing
type GameConfig struct {
	CountdownSeconds int `yaml:"countdown_seconds"`
	// TickMillis is the countdown tick interval in milliseconds
	TickMillis int `yaml:"tick_millis"`
}

// TickInterval returns the countdown tick interval
func (c *GameConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// RedisConfig is the optional leaderboard store. An empty URL keeps the
// leaderboard in memory.
type RedisConfig struct {
	URL          string `yaml:"url"`
	PoolSize     int    `yaml:"pool_size"`
	MinIdleConns int    `yaml:"min_idle_conns"`
}

// Enabled reports whether a Redis leaderboard is configured
func (c *RedisConfig) Enabled() bool {
	return c.URL != ""
}

// LogConfig is the logging setup
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// Load reads a config file and applies defaults. A missing path returns
// the defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Game.CountdownSeconds == 0 {
		c.Game.CountdownSeconds = 5
	}
	if c.Game.TickMillis == 0 {
		c.Game.TickMillis = 1000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
