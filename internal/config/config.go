package config

import (
	"os"
	"strconv"
	"time"
)

// Backend strategy selected at composition time.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// Storage backends for persisted client state.
const (
	StorageFile   = "file"
	StorageValkey = "valkey"
)

// Config содержит конфигурацию приложения
type Config struct {
	Mode      string
	LogLevel  string
	LogFormat string

	// Remote backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Persisted client state
	Storage       string
	StateDir      string
	ValkeyAddr    string
	ValkeyPrefix  string
	ValkeyTimeout time.Duration

	// Listing defaults
	PageSize int

	// Mock server
	MockPort string
	MockSeed bool
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Mode:      getEnv("EVENTHUB_MODE", ModeRemote),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		APIBaseURL:  getEnv("EVENTHUB_API_URL", "https://localhost:7054"),
		HTTPTimeout: time.Duration(getEnvInt("EVENTHUB_HTTP_TIMEOUT_SEC", 30)) * time.Second,

		Storage:       getEnv("EVENTHUB_STORAGE", StorageFile),
		StateDir:      getEnv("EVENTHUB_STATE_DIR", defaultStateDir()),
		ValkeyAddr:    getEnv("VALKEY_ADDR", "localhost:6379"),
		ValkeyPrefix:  getEnv("VALKEY_PREFIX", "eventhub:state"),
		ValkeyTimeout: time.Duration(getEnvInt("VALKEY_TIMEOUT_SEC", 5)) * time.Second,

		PageSize: getEnvInt("EVENTHUB_PAGE_SIZE", 10),

		MockPort: getEnv("MOCK_PORT", "7054"),
		MockSeed: getEnvBool("MOCK_SEED", true),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventhub"
	}
	return home + "/.eventhub"
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool получает булево значение переменной окружения
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
