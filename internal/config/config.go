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

// Config captures everything vogue reads from its config file.
type Config struct {
	APIURL         string
	DataDir        string
	SessionBackend string
	LogFile        string
	LogLevel       string
	LogMode        string
	RequestTimeout time.Duration
	CatalogRefresh time.Duration // zero disables background reloads
	Theme          string
}

const (
	defaultConfigPath     = "~/.config/vogue/config.toml"
	defaultDataDir        = "~/.local/share/vogue"
	defaultAPIURL         = "http://localhost:5000"
	defaultSessionBackend = "bolt"
	defaultLogLevel       = "info"
	defaultLogMode        = "development"
	defaultRequestTimeout = 10 * time.Second
	defaultTheme          = "Nightfox"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		APIURL:         defaultAPIURL,
		DataDir:        dataDir,
		SessionBackend: defaultSessionBackend,
		LogFile:        filepath.Join(dataDir, "vogue.log"),
		LogLevel:       defaultLogLevel,
		LogMode:        defaultLogMode,
		RequestTimeout: defaultRequestTimeout,
		Theme:          defaultTheme,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		DataDir        string `toml:"data_dir"`
		SessionBackend string `toml:"session_backend"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		LogMode        string `toml:"log_mode"`
		RequestTimeout string `toml:"request_timeout"`
		CatalogRefresh string `toml:"catalog_refresh"`
		Theme          string `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)

	cfg.DataDir = mustExpand(orDefault(raw.DataDir, defaultDataDir))
	cfg.LogFile = filepath.Join(cfg.DataDir, "vogue.log")
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	cfg.SessionBackend = strings.ToLower(orDefault(raw.SessionBackend, defaultSessionBackend))
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.LogMode = strings.ToLower(orDefault(raw.LogMode, defaultLogMode))
	cfg.Theme = orDefault(raw.Theme, defaultTheme)

	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if refresh := strings.TrimSpace(raw.CatalogRefresh); refresh != "" {
		d, err := time.ParseDuration(refresh)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: catalog_refresh: %w", err)
		}
		cfg.CatalogRefresh = max(d, 0)
	}

	return cfg, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
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
