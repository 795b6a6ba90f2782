package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.DevToolsHost)
	assert.Equal(t, 9222, cfg.DevToolsPort)
	assert.Equal(t, 3*time.Second, cfg.DevToolsTimeout)
	assert.Equal(t, 10*time.Second, cfg.ExternalScriptTimeout)
	assert.Equal(t, 5*time.Second, cfg.EmbeddedScriptTimeout)
	assert.Equal(t, 5*time.Second, cfg.MacScriptTimeout)
	assert.NotEmpty(t, cfg.WindowsScriptPaths)
	assert.NotEmpty(t, cfg.MacScriptPaths)
	assert.Equal(t, "scripts/windows_get_url.ps1", cfg.WindowsScriptPaths[0])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BROWSERINFO_DEVTOOLS_PORT", "9333")
	t.Setenv("BROWSERINFO_DEVTOOLS_TIMEOUT", "750ms")
	t.Setenv("BROWSERINFO_WINDOWS_SCRIPT_PATHS", "a.ps1, b.ps1 ,")
	t.Setenv("BROWSERINFO_DEBUG", "true")

	cfg := Load()

	assert.Equal(t, 9333, cfg.DevToolsPort)
	assert.Equal(t, 750*time.Millisecond, cfg.DevToolsTimeout)
	assert.Equal(t, []string{"a.ps1", "b.ps1"}, cfg.WindowsScriptPaths)
	assert.True(t, cfg.Debug)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BROWSERINFO_DEVTOOLS_PORT", "not-a-number")
	t.Setenv("BROWSERINFO_DEVTOOLS_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 9222, cfg.DevToolsPort)
	assert.Equal(t, 3*time.Second, cfg.DevToolsTimeout)
}
