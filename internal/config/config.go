// Package config loads environment configuration for topogen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr = "127.0.0.1:8788"
	defaultDataDir    = "./data"
	defaultFormat     = FormatYAML
	defaultBatch      = 1
	defaultLogLevel   = "info"
	maxBatch          = 10000
)

// Output formats for generated topologies.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds runtime configuration values.
type Config struct {
	DataDir     string
	ProfilePath string
	Seed        uint64
	// SeedSet reports whether TOPOGEN_SEED was provided; otherwise callers pick and log a seed.
	SeedSet    bool
	Batch      int
	Format     string
	ListenAddr string
	LogLevel   string
	LogJSON    bool
}

// Load reads configuration from <DATA_DIR>/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DataDir:    envString("DATA_DIR", defaultDataDir),
		Batch:      defaultBatch,
		Format:     defaultFormat,
		ListenAddr: defaultListenAddr,
		LogLevel:   defaultLogLevel,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ProfilePath = envString("TOPOGEN_PROFILE", "")
	cfg.ListenAddr = envString("TOPOGEN_LISTEN_ADDR", cfg.ListenAddr)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogJSON = envBool("LOG_JSON", cfg.LogJSON)

	format, err := NormalizeFormat(envString("TOPOGEN_FORMAT", cfg.Format))
	if err != nil {
		return Config{}, fmt.Errorf("TOPOGEN_FORMAT: %w", err)
	}
	cfg.Format = format

	seed, set, err := envUint64("TOPOGEN_SEED")
	if err != nil {
		return Config{}, err
	}
	cfg.Seed, cfg.SeedSet = seed, set

	batch, err := envInt("TOPOGEN_BATCH", cfg.Batch)
	if err != nil {
		return Config{}, err
	}
	if batch <= 0 || batch > maxBatch {
		return Config{}, fmt.Errorf("TOPOGEN_BATCH must be 1-%d", maxBatch)
	}
	cfg.Batch = batch

	return cfg, nil
}

// NormalizeFormat accepts yaml/yml and json.
func NormalizeFormat(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("format must be yaml or json, got %q", value)
	}
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envUint64 returns an unsigned env value and whether it was set.
func envUint64(key string) (uint64, bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an unsigned integer: %w", key, err)
	}
	return value, true, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding the environment.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
