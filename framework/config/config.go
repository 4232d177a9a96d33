package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig
	Container ContainerConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
	// ReadTimeout bounds reading request headers, in seconds.
	ReadTimeout int
}

type ContainerConfig struct {
	// Bindings is the bindings document loaded at boot; empty disables it.
	Bindings string
	// Required makes a missing bindings document a boot error.
	Required bool
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:        Get("APP_NAME", "GoInject"),
			Env:         Get("APP_ENV", "local"),
			Debug:       GetBool("APP_DEBUG", true),
			Port:        Get("APP_PORT", "8000"),
			ReadTimeout: GetInt("APP_READ_TIMEOUT", 10),
		},
		Container: ContainerConfig{
			Bindings: Get("CONTAINER_BINDINGS", "bindings.yaml"),
			Required: GetBool("CONTAINER_BINDINGS_REQUIRED", false),
		},
		Log: LogConfig{
			Level:  Get("LOG_LEVEL", "info"),
			Format: Get("LOG_FORMAT", "console"),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
