package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"TEST_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"TEST_POSTGRES_DSN"`
	} `yaml:"database"`
	Limits struct {
		MaxItems int  `yaml:"max_items"`
		Verbose  bool `yaml:"verbose"`
	} `yaml:"limits"`
}

func TestLoadRejectsNonStruct(t *testing.T) {
	assert.Error(t, Load(nil))
	var s string
	assert.Error(t, Load(&s))
	assert.Error(t, Load(testConfig{}))
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "9090"
database:
  dsn: postgres://localhost/test
limits:
  max_items: 25
  verbose: true
`), 0o600))
	t.Setenv("CONFIG_FILE", path)

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres://localhost/test", cfg.Database.DSN)
	assert.Equal(t, 25, cfg.Limits.MaxItems)
	assert.True(t, cfg.Limits.Verbose)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9090\"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TEST_HTTP_PORT", "7070")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "7070", cfg.HTTP.Port)
}

func TestEnvKeysForUntaggedFields(t *testing.T) {
	t.Setenv("LIMITS_MAXITEMS", "42")
	t.Setenv("LIMITS_VERBOSE", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 42, cfg.Limits.MaxItems)
	assert.True(t, cfg.Limits.Verbose)
}

func TestBadEnvValueFailsLoad(t *testing.T) {
	t.Setenv("LIMITS_MAXITEMS", "not-a-number")

	var cfg testConfig
	assert.Error(t, Load(&cfg))
}

func TestMissingConfigFileFailsLoad(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	var cfg testConfig
	assert.Error(t, Load(&cfg))
}
