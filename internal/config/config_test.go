package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with a fresh viper instance
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "logscale-sample.svg", cfg.Render.OutputFile)
	assert.Equal(t, []string{"A", "B"}, cfg.Render.Series)
	assert.Equal(t, "memory", cfg.Database.Source)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.AWS.Publish())
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("OUTPUT_FILE", "out/chart.svg")
	t.Setenv("SERIES", " B , A ,")
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("S3_BUCKET", "charts")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "out/chart.svg", cfg.Render.OutputFile)
	assert.Equal(t, []string{"B", "A"}, cfg.Render.Series)
	assert.Equal(t, "postgres", cfg.Database.Source)
	assert.True(t, cfg.AWS.Publish())
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ENVIRONMENT", "test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("OUTPUT_FILE=from-file.svg\nPORT=9090\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file.svg", cfg.Render.OutputFile)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Env)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown data source", "DATA_SOURCE", "sqlite"},
		{"empty series", "SERIES", " , "},
		{"bad log level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
