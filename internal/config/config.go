package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env             string   `yaml:"env"`
	ListenAddr      string   `yaml:"listen_addr"`
	DatabaseURL     string   `yaml:"database_url"`
	AnalysisWorkers int      `yaml:"analysis_workers"`
	KafkaBrokers    []string `yaml:"kafka_brokers"`
	DigestSchedule  string   `yaml:"digest_schedule"`
	LogLevel        string   `yaml:"log_level"`
}

// DefaultPath is read when BDCOMPASS_CONFIG is unset. A missing file is not
// an error.
const DefaultPath = "config.yaml"

func defaults() Config {
	return Config{
		Env:            "development",
		ListenAddr:     ":8080",
		DigestSchedule: "0 0 8 * * MON",
		LogLevel:       "info",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ErrNoDatabaseURL is returned by Load when no database is configured.
var ErrNoDatabaseURL = errors.New("DATABASE_URL not set")

// Load layers defaults, the YAML file, .env and the process environment, in
// that order. The environment is applied even when the file cannot be read,
// and the file error is returned in preference to ErrNoDatabaseURL. Either
// way the returned Config is usable, so callers decide what is fatal.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	fileErr := loadFile(getenv("BDCOMPASS_CONFIG", DefaultPath), &cfg)

	cfg.Env = getenv("APP_ENV", cfg.Env)
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL)
	cfg.AnalysisWorkers = getenvInt("ANALYSIS_WORKERS", cfg.AnalysisWorkers)
	cfg.DigestSchedule = getenv("DIGEST_SCHEDULE", cfg.DigestSchedule)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = splitList(v)
	}

	if fileErr != nil {
		return cfg, fileErr
	}
	if cfg.DatabaseURL == "" {
		return cfg, ErrNoDatabaseURL
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
