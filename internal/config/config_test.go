package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "app:\n  name: print-bridge\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:17420", cfg.GetServerAddr())
	assert.Equal(t, "POS Receipt", cfg.Printing.DocumentLabel)
	assert.Equal(t, "lpstat", cfg.Printing.Shell.StatusCommand)
	assert.Equal(t, []string{"-p"}, cfg.Printing.Shell.StatusArgs)
	assert.Equal(t, "lp", cfg.Printing.Shell.PrintCommand)
	assert.Equal(t, 600*time.Second, cfg.Update.Interval)
	assert.False(t, cfg.Update.Enabled)
	assert.False(t, cfg.Printing.AllowSyntheticPrinters)
	assert.Equal(t, runtime.GOOS, cfg.BackendOS())
	assert.Equal(t, DefaultAllowedOrigins, cfg.Security.Origins())
}

func TestSecurityConfig_Origins(t *testing.T) {
	configured := SecurityConfig{AllowedOrigins: []string{"http://pos.local:1420"}}
	assert.Equal(t, []string{"http://pos.local:1420"}, configured.Origins())

	empty := SecurityConfig{AllowedOrigins: []string{}}
	assert.Equal(t, DefaultAllowedOrigins, empty.Origins())
	assert.NotContains(t, empty.Origins(), "*")
}

func TestLoadFile_Overrides(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
printing:
  backend: windows
  allow_synthetic_printers: true
update:
  enabled: true
  endpoint: http://localhost/latest.json
  interval: 30s
app:
  environment: development
`))
	require.NoError(t, err)

	assert.Equal(t, "windows", cfg.BackendOS())
	assert.True(t, cfg.Printing.AllowSyntheticPrinters)
	assert.Equal(t, 30*time.Second, cfg.Update.Interval)
	assert.True(t, cfg.IsDebugEnabled())
}

func TestLoadFile_ProductionDisablesSyntheticPrinters(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
printing:
  allow_synthetic_printers: true
app:
  environment: production
`))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Printing.AllowSyntheticPrinters)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("PRINT_BRIDGE_SERVER_PORT", "9999")

	cfg, err := LoadFile(writeConfig(t, "app:\n  name: print-bridge\n"))
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad environment", "app:\n  environment: moon\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"update without endpoint", "update:\n  enabled: true\n"},
		{"update with zero interval", "update:\n  enabled: true\n  endpoint: http://x\n  interval: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
