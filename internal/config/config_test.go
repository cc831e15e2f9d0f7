package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 300, cfg.KMeans.MaxIterations)
	assert.Equal(t, 200, cfg.KMeans.ClusterMaxIterations)
	assert.Equal(t, 0.001, cfg.KMeans.Epsilon)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "go-json", cfg.Output.Codec)
	assert.True(t, cfg.MinIO.Secure)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clusteval.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
seed: 99
workers: 4
log:
  level: debug
  format: json
kmeans:
  epsilon: 0.01
s3:
  region: eu-central-1
`), 0o600))

	cfg, err := NewLoader(WithEnvFile("")).Load(file)
	require.NoError(t, err)

	assert.Equal(t, file, cfg.ConfigFile)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 0.01, cfg.KMeans.Epsilon)
	assert.Equal(t, "eu-central-1", cfg.S3.Region)
	assert.Equal(t, 300, cfg.KMeans.MaxIterations)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := NewLoader(WithEnvFile("")).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLUSTEVAL_SEED", "7")
	t.Setenv("CLUSTEVAL_LOG_LEVEL", "error")
	t.Setenv("CLUSTEVAL_MINIO_ACCESS_KEY", "minioadmin")

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "minioadmin", cfg.MinIO.AccessKey)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CLUSTEVAL_WORKERS=3\n"), 0o600))

	// Register cleanup for the variable godotenv is about to set.
	t.Setenv("CLUSTEVAL_WORKERS", "")
	require.NoError(t, os.Unsetenv("CLUSTEVAL_WORKERS"))

	t.Chdir(dir)
	cfg, err := NewLoader(WithEnvFile(envFile)).Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_Flags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLUSTEVAL_SEED", "7")

	l := NewLoader(WithEnvFile(""))
	l.Viper().Set("seed", 42)

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"log level":     func(c *Config) { c.Log.Level = "loud" },
		"log format":    func(c *Config) { c.Log.Format = "xml" },
		"output format": func(c *Config) { c.Output.Format = "csv" },
		"workers":       func(c *Config) { c.Workers = -1 },
		"epsilon":       func(c *Config) { c.KMeans.Epsilon = -0.5 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{
				Log:    Log{Level: "info", Format: "text"},
				Output: Output{Format: "text"},
			}
			require.NoError(t, cfg.Validate())

			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
