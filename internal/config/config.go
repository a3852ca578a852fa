// Package config loads runtime settings from defaults, an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Log      LogConfig      `mapstructure:"log"`
}

// APIConfig describes the remote users endpoint.
type APIConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"` // SQLite database file path
}

// HTTPConfig contains dashboard web server settings.
type HTTPConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string `mapstructure:"address"` // empty disables the gRPC server
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"` // optional rotated log file
}

var defaults = map[string]any{
	"api.url":       "https://jsonplaceholder.typicode.com/users",
	"api.timeout":   20 * time.Second,
	"database.path": "usuarios3.db",
	"http.address":  ":8501",
	"grpc.address":  ":50051",
	"log.level":     "info",
	"log.format":    "text",
	"log.file":      "",
}

// Load reads configuration and validates it. Missing .env files are ignored;
// a CONFIG_FILE that cannot be read is an error.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{API: %s (timeout %s), DB: %s, HTTP: %s, gRPC: %s, Log: %s/%s}",
		c.API.URL, c.API.Timeout, c.Database.Path, c.HTTP.Address, c.GRPC.Address, c.Log.Level, c.Log.Format)
}
