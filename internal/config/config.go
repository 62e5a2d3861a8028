package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	SessionDBPath  string
	LogLevel       string
	LogFormat      string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the YAML config at path, then applies environment overrides. A
// missing file is not an error; everything has a default.
func Load(path string) (*Config, error) {
	file := &ConfigFile{}
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml: %w", err)
		}
	}

	timeoutStr := env("OJA_TIMEOUT", file.App.Timeout)
	if timeoutStr == "" {
		timeoutStr = "30s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	sessionDB := env("OJA_SESSION_DB", file.Session.DBPath)
	if sessionDB == "" {
		sessionDB = defaultSessionDBPath()
	}

	return &Config{
		BaseURL:        env("OJA_API_URL", file.App.BaseURL),
		RequestTimeout: timeout,
		SessionDBPath:  sessionDB,
		LogLevel:       env("OJA_LOG_LEVEL", orDefault(file.Log.Level, "info")),
		LogFormat:      env("OJA_LOG_FORMAT", orDefault(file.Log.Format, "console")),
	}, nil
}

func defaultSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "oja-session.db"
	}
	return filepath.Join(home, ".oja", "session.db")
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
