package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_OverlaysDefinedKeys(t *testing.T) {
	cfg, err := Parse(`
addr = ":9090"
log_level = "DEBUG"

[mock]
locations = ["USA", "Canada"]
min_latency = "10ms"
max_latency = "20ms"
failure_rate = 0.25
`)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "web", cfg.StaticDir, "undefined keys keep their default")
	assert.Equal(t, []string{"USA", "Canada"}, cfg.Mock.Locations)
	assert.Equal(t, []string{"invalid name"}, cfg.Mock.TakenNames)
	assert.Equal(t, 10*time.Millisecond, cfg.Mock.MinLatency)
	assert.Equal(t, 20*time.Millisecond, cfg.Mock.MaxLatency)
	assert.InDelta(t, 0.25, cfg.Mock.FailureRate, 1e-9)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":      `colour = "blue"`,
		"bad duration":     "[mock]\nmin_latency = \"soon\"",
		"inverted latency": "[mock]\nmin_latency = \"2s\"\nmax_latency = \"1s\"",
		"failure rate":     "[mock]\nfailure_rate = 2.0",
		"empty addr":       `addr = " "`,
		"log level":        `log_level = "loud"`,
		"not toml":         `addr = `,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`static_dir = "dist"`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "dist", cfg.StaticDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config load failed")
}
