package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/trknhr/cardlog/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config holds all cardlog configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Engine   EngineConfig   `yaml:"engine"`
	Location LocationConfig `yaml:"location"`
	Server   ServerConfig   `yaml:"server"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // empty: store.DefaultDBPath()
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type EngineConfig struct {
	HistoryWindow int `yaml:"history_window"` // entries replayed at startup
	ContextDepth  int `yaml:"context_depth"`  // recent titles fed to estimate
	Limit         int `yaml:"limit"`          // candidates returned
}

type LocationConfig struct {
	Static string `yaml:"static"` // "<lat> <lon> <alt>"
	File   string `yaml:"file"`   // watched file, last line wins
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Engine: EngineConfig{
			HistoryWindow: 3000,
			ContextDepth:  5,
			Limit:         5,
		},
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37780,
		},
	}
}

// DefaultPath returns <user config dir>/cardlog/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cardlog", "config.yaml")
}

// Load layers defaults, the YAML file at path (missing is fine), a .env file
// in the working directory and CARDLOG_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("no config file at %s, using defaults", path)
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Debug("failed to load .env: %v", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Database.Path, "CARDLOG_DB")
	setString(&cfg.Log.Level, "CARDLOG_LOG_LEVEL")
	setString(&cfg.Log.File, "CARDLOG_LOG_FILE")
	setString(&cfg.Location.Static, "CARDLOG_GEO")
	setString(&cfg.Location.File, "CARDLOG_GEO_FILE")
	setString(&cfg.Server.Bind, "CARDLOG_BIND")
	if err := setInt(&cfg.Server.Port, "CARDLOG_PORT"); err != nil {
		return err
	}
	return setInt(&cfg.Engine.HistoryWindow, "CARDLOG_HISTORY_WINDOW")
}

func (c Config) Validate() error {
	if c.Engine.HistoryWindow <= 0 {
		return fmt.Errorf("engine.history_window must be positive, got %d", c.Engine.HistoryWindow)
	}
	if c.Engine.ContextDepth <= 0 {
		return fmt.Errorf("engine.context_depth must be positive, got %d", c.Engine.ContextDepth)
	}
	if c.Engine.Limit <= 0 {
		return fmt.Errorf("engine.limit must be positive, got %d", c.Engine.Limit)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// ListenAddr returns the bind:port address string.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
