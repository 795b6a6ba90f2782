// Package config loads runtime configuration from environment variables
// and an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default script search paths, probed in order. Relative to the working
// directory so helper scripts can ship next to the binary or the repo.
var (
	defaultWindowsScriptPaths = []string{
		"scripts/windows_get_url.ps1",
		"platform/scripts/windows_get_url.ps1",
		"../scripts/windows_get_url.ps1",
		"../../scripts/windows_get_url.ps1",
	}
	defaultMacScriptPaths = []string{
		"scripts/macos_get_url.scpt",
		"platform/scripts/macos_get_url.scpt",
		"../scripts/macos_get_url.scpt",
		"../../scripts/macos_get_url.scpt",
	}
)

// Config holds all tunables for one process.
type Config struct {
	// Remote-debugging endpoint settings.
	DevToolsHost    string
	DevToolsPort    int
	DevToolsTimeout time.Duration

	// Ordered candidate locations for external helper scripts.
	WindowsScriptPaths []string
	MacScriptPaths     []string

	// Child-process budgets, enforced as hard deadlines.
	ExternalScriptTimeout time.Duration
	EmbeddedScriptTimeout time.Duration
	MacScriptTimeout      time.Duration

	// Window probe budget.
	ProbeTimeout time.Duration

	// Logging.
	LogFile string
	Debug   bool
}

// Load reads configuration from environment variables and optional .env file.
func Load() *Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	return &Config{
		DevToolsHost:          getEnvOrDefault("BROWSERINFO_DEVTOOLS_HOST", "localhost"),
		DevToolsPort:          getEnvIntOrDefault("BROWSERINFO_DEVTOOLS_PORT", 9222),
		DevToolsTimeout:       getEnvDurationOrDefault("BROWSERINFO_DEVTOOLS_TIMEOUT", 3*time.Second),
		WindowsScriptPaths:    getEnvListOrDefault("BROWSERINFO_WINDOWS_SCRIPT_PATHS", defaultWindowsScriptPaths),
		MacScriptPaths:        getEnvListOrDefault("BROWSERINFO_MAC_SCRIPT_PATHS", defaultMacScriptPaths),
		ExternalScriptTimeout: getEnvDurationOrDefault("BROWSERINFO_EXTERNAL_SCRIPT_TIMEOUT", 10*time.Second),
		EmbeddedScriptTimeout: getEnvDurationOrDefault("BROWSERINFO_EMBEDDED_SCRIPT_TIMEOUT", 5*time.Second),
		MacScriptTimeout:      getEnvDurationOrDefault("BROWSERINFO_MAC_SCRIPT_TIMEOUT", 5*time.Second),
		ProbeTimeout:          getEnvDurationOrDefault("BROWSERINFO_PROBE_TIMEOUT", 3*time.Second),
		LogFile:               getEnvOrDefault("BROWSERINFO_LOG_FILE", ""),
		Debug:                 getEnvBoolOrDefault("BROWSERINFO_DEBUG", false),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvListOrDefault parses a comma-separated list, trimming blanks.
func getEnvListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
