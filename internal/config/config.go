// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/usestring/json2ts/pkg/tstype"
)

// Input and cache defaults
const (
	DefaultMaxInputBytes       = 16 << 20
	DefaultResultCacheMaxItems = 256
	DefaultWorkers             = 4
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	RootName  string // JSON2TS_ROOT_NAME, default "Root"
	Naming    string // JSON2TS_NAMING, default "flat"
	Export    bool   // JSON2TS_EXPORT, default false
	QuoteKeys bool   // JSON2TS_QUOTE_KEYS, default false
	Workers   int    // JSON2TS_WORKERS, default 4

	MaxInputBytes       int // MAX_INPUT_BYTES, default 16 MiB
	ResultCacheMaxItems int // RESULT_CACHE_MAX_ITEMS, default 256

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		RootName:  getEnvString("JSON2TS_ROOT_NAME", tstype.DefaultRootName),
		Naming:    getEnvString("JSON2TS_NAMING", tstype.NamingFlat.String()),
		Export:    getEnvBool("JSON2TS_EXPORT", false),
		QuoteKeys: getEnvBool("JSON2TS_QUOTE_KEYS", false),
		Workers:   getEnvInt("JSON2TS_WORKERS", DefaultWorkers),

		MaxInputBytes:       getEnvInt("MAX_INPUT_BYTES", DefaultMaxInputBytes),
		ResultCacheMaxItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", DefaultResultCacheMaxItems),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
