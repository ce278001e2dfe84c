package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int      `env:"TEST_PORT" envDefault:"8080"`
	LogLevel string   `env:"TEST_LOG_LEVEL" envDefault:"info"`
	Origins  []string `env:"TEST_ORIGINS" envDefault:"*" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.Origins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_PORT", "9090")
	t.Setenv("TEST_LOG_LEVEL", "debug")
	t.Setenv("TEST_ORIGINS", "https://a.example,https://b.example")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("TEST_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
