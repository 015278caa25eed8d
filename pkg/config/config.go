package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		setDefaults()

		viper.SetEnvPrefix("VOICEAPI")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// Missing config file is fine - defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct.
// Init() must be called before using this.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	driver := viper.GetString("database.driver")
	switch driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q (want sqlite or postgres)", driver)
	}

	if driver == "postgres" && viper.GetString("database.dsn") == "" {
		return fmt.Errorf("database.dsn is required when database.driver is postgres")
	}

	if err := validateAPIKey(); err != nil {
		return err
	}

	// Auto-correct nonsense timeouts back to defaults
	if viper.GetDuration("voice_service.create_timeout") <= 0 {
		viper.Set("voice_service.create_timeout", 30*time.Second)
	}
	if viper.GetDuration("voice_service.synthesis_timeout") <= 0 {
		viper.Set("voice_service.synthesis_timeout", 60*time.Second)
	}
	if viper.GetInt64("storage.max_upload_size") <= 0 {
		viper.Set("storage.max_upload_size", int64(50*1024*1024))
	}

	return nil
}

// validateAPIKey warns about placeholder voice provider credentials and
// rejects them outright in production.
func validateAPIKey() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	apiKey := viper.GetString("voice_service.api_key")
	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid voice service API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: voice service API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.VoiceService.CreateTimeout <= 0 {
		c.VoiceService.CreateTimeout = 30 * time.Second
	}
	if c.VoiceService.SynthesisTimeout <= 0 {
		c.VoiceService.SynthesisTimeout = 60 * time.Second
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "./data/voice.db")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// Voice service defaults
	viper.SetDefault("voice_service.base_url", "https://api.fish.audio")
	viper.SetDefault("voice_service.create_timeout", 30*time.Second)
	viper.SetDefault("voice_service.synthesis_timeout", 60*time.Second)
	viper.SetDefault("voice_service.list_timeout", 15*time.Second)

	// Storage defaults
	viper.SetDefault("storage.upload_dir", "./data/uploads")
	viper.SetDefault("storage.audio_dir", "./data/audio")
	viper.SetDefault("storage.temp_dir", "./data/tmp")
	viper.SetDefault("storage.max_upload_size", int64(50*1024*1024))
	viper.SetDefault("storage.max_temp_age", time.Hour)
	viper.SetDefault("storage.cleanup_interval", 15*time.Minute)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 10)
	viper.SetDefault("rate_limiting.burst", 20)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}
