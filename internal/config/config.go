package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"
)

// Config is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Memory   MemoryConfig   `json:"memory"`
	Export   ExportConfig   `json:"export"`
	Cache    CacheConfig    `json:"cache"`
	Schedule ScheduleConfig `json:"schedule"`
}

type ServerConfig struct {
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

// MemoryConfig locates the entity tree and the generated artifact.
type MemoryConfig struct {
	Root    string `json:"root"`
	Output  string `json:"output"`
	Workers int    `json:"workers"`
}

type ExportConfig struct {
	Neo4j Neo4jConfig `json:"neo4j"`
}

type Neo4jConfig struct {
	Enabled  bool   `json:"enabled"`
	URI      string `json:"uri"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type CacheConfig struct {
	Redis RedisConfig `json:"redis"`
}

type RedisConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

// ScheduleConfig controls the periodic and filesystem triggers.
type ScheduleConfig struct {
	Interval string `json:"interval"` // Go duration, "" disables the ticker
	Watch    bool   `json:"watch"`
}

// TickInterval parses the schedule interval. Zero means disabled.
func (s ScheduleConfig) TickInterval() (time.Duration, error) {
	if s.Interval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		return 0, fmt.Errorf("parse schedule interval %q: %w", s.Interval, err)
	}
	return d, nil
}

// envVarRe matches ${VAR} and ${VAR:default} patterns.
var envVarRe = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// Load reads a JSON config file and substitutes environment variable references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Substitute ${VAR} and ${VAR:default} with environment values.
	resolved := envVarRe.ReplaceAllStringFunc(string(data), func(match string) string {
		parts := envVarRe.FindStringSubmatch(match)
		name := parts[1]
		defaultVal := parts[2]
		if v := os.Getenv(name); v != "" {
			return v
		}
		return defaultVal
	})

	var cfg Config
	if err := json.Unmarshal([]byte(resolved), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Memory.Root == "" {
		c.Memory.Root = "memory"
	}
	if c.Memory.Output == "" {
		c.Memory.Output = "data/entities.json"
	}
}
