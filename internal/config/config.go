package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings roster reads from its config file.
type Config struct {
	BaseURL string
	Timeout time.Duration // zero: requests never time out
	LogFile string        // empty: logging is discarded
}

const (
	defaultConfigPath = "~/.config/roster/config.toml"
	defaultBaseURL    = "https://jsonplaceholder.typicode.com"
)

// Load locates and parses the roster config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{BaseURL: defaultBaseURL}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		LogFile        string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(raw.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if raw.TimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: timeout_seconds must not be negative, got %d", raw.TimeoutSeconds)
	}
	cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = ExpandPath(logFile)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// ExpandPath resolves ~ and relative paths, returning path unchanged on failure.
func ExpandPath(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
