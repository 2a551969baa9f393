package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rpggio/salestrack/internal/domain/task"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Undo      UndoConfig      `yaml:"undo"`
	Grades    task.GradeScale `yaml:"grades"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type AuthConfig struct {
	// Token is the bearer token required in http mode. Empty disables auth.
	Token string `yaml:"token"`
}

type DBConfig struct {
	Path string `yaml:"path"`
	Slot string `yaml:"slot"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type UndoConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		DB: DBConfig{
			Path: "salestrack.db",
			Slot: "sales-tasks",
		},
		Log: LogConfig{
			Level: "info",
		},
		Undo: UndoConfig{
			Timeout: task.DefaultUndoTimeout,
		},
		Grades: task.DefaultGradeScale(),
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SALESTRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Undo.Timeout <= 0 {
		return fmt.Errorf("invalid undo timeout %s", c.Undo.Timeout)
	}
	if err := c.Grades.Validate(); err != nil {
		return fmt.Errorf("grades: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("SALESTRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SALESTRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid SALESTRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("SALESTRACK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if token := os.Getenv("SALESTRACK_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if dbPath := os.Getenv("SALESTRACK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if slot := os.Getenv("SALESTRACK_SLOT"); slot != "" {
		cfg.DB.Slot = slot
	}
	if level := os.Getenv("SALESTRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("SALESTRACK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if timeout := os.Getenv("SALESTRACK_UNDO_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid SALESTRACK_UNDO_TIMEOUT: %w", err)
		}
		cfg.Undo.Timeout = d
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
