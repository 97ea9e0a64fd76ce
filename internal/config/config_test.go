package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"BDCOMPASS_CONFIG", "APP_ENV", "LISTEN_ADDR", "DATABASE_URL", "ANALYSIS_WORKERS",
	"KAFKA_BROKERS", "DIGEST_SCHEDULE", "LOG_LEVEL",
}

// isolate runs the test in an empty directory with a clean environment so
// a developer's .env or config.yaml does not leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.ErrorIs(t, err, ErrNoDatabaseURL)
	assert.Equal(t, defaults(), cfg)
}

func TestLoadLayers(t *testing.T) {
	dir := isolate(t)
	yamlPath := filepath.Join(dir, "bd.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
env: staging
listen_addr: ":9000"
database_url: postgres://file/db
analysis_workers: 2
kafka_brokers: [k1:9092]
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nLISTEN_ADDR=:7000\n"), 0o600))
	t.Setenv("BDCOMPASS_CONFIG", yamlPath)
	t.Setenv("LISTEN_ADDR", ":6000")
	t.Setenv("ANALYSIS_WORKERS", "4")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Env:             "staging",
		ListenAddr:      ":6000",
		DatabaseURL:     "postgres://file/db",
		AnalysisWorkers: 4,
		KafkaBrokers:    []string{"a:9092", "b:9092"},
		DigestSchedule:  "0 0 8 * * MON",
		LogLevel:        "debug",
	}, cfg)
}

func TestLoadBadYAML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("analysis_workers: [nope"), 0o600))

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("LISTEN_ADDR", ":6000")

	cfg, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
	assert.NotErrorIs(t, err, ErrNoDatabaseURL)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, ":6000", cfg.ListenAddr)
}

func TestGetenvIntIgnoresGarbage(t *testing.T) {
	isolate(t)
	t.Setenv("ANALYSIS_WORKERS", "many")
	assert.Equal(t, 3, getenvInt("ANALYSIS_WORKERS", 3))
}
