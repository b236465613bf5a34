// Package config loads server settings from a YAML file, a .env file and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr   = ":8080"
	DefaultDBPath = "proago.db"
)

type Config struct {
	Addr           string   `yaml:"addr"`
	DBPath         string   `yaml:"db_path"`
	SnapshotRates  bool     `yaml:"snapshot_rates"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SeedScenario   string   `yaml:"seed_scenario"`
}

func Default() Config {
	return Config{
		Addr:           DefaultAddr,
		DBPath:         DefaultDBPath,
		AllowedOrigins: []string{"*"},
	}
}

// Load reads path (skipped when empty or missing), then .env in the working
// directory, then PROAGO_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// Existing environment variables win over .env entries.
	_ = godotenv.Load()

	envOverride(&cfg.Addr, "PROAGO_ADDR")
	envOverride(&cfg.DBPath, "PROAGO_DB")
	envOverride(&cfg.SeedScenario, "PROAGO_SEED_SCENARIO")
	if err := envOverrideBool(&cfg.SnapshotRates, "PROAGO_SNAPSHOT_RATES"); err != nil {
		return cfg, err
	}
	if val := os.Getenv("PROAGO_ALLOWED_ORIGINS"); val != "" {
		cfg.AllowedOrigins = splitList(val)
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return cfg, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideBool(field *bool, envKey string) error {
	val := os.Getenv(envKey)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envKey, val, err)
	}
	*field = parsed
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
