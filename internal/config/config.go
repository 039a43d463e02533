package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// HTTP contains configuration for the HTTP server.
type HTTP struct {
	Port     string `mapstructure:"port"`      // Address for the server to listen on
	KeyPath  string `mapstructure:"key_path"`  // Path to SSL key file for HTTPS
	CertPath string `mapstructure:"cert_path"` // Path to SSL certificate file for HTTPS
}

// Mongo contains configuration for the MongoDB connection.
type Mongo struct {
	URL          string `mapstructure:"url"`            // MongoDB connection URI
	Database     string `mapstructure:"database"`       // Database name
	CABundlePath string `mapstructure:"ca_bundle_path"` // Optional CA bundle for hosted document stores
}

// Store selects the metadata store implementation.
type Store struct {
	// Type is "mongo" or "memory". The memory store keeps everything
	// in-process and is meant for tests and local development.
	Type string `mapstructure:"type"`
}

// Storage contains configuration for file content storage.
type Storage struct {
	Directory string `mapstructure:"directory"` // Base directory for blob files
}

// Auth contains configuration related to authentication tokens.
type Auth struct {
	TokenSecret string        `mapstructure:"token_secret"` // JWT signing key
	TokenTTL    time.Duration `mapstructure:"token_ttl"`    // Token time-to-live
}

// Logging controls log output behavior.
type Logging struct {
	Level  string `mapstructure:"level"`  // zerolog level: debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // Human-readable console output instead of JSON
}

// Config is the top-level struct holding all application configuration.
type Config struct {
	HTTP    HTTP    `mapstructure:"http"`
	Mongo   Mongo   `mapstructure:"mongo"`
	Store   Store   `mapstructure:"store"`
	Storage Storage `mapstructure:"storage"`
	Auth    Auth    `mapstructure:"auth"`
	Logging Logging `mapstructure:"logging"`
}

// Load reads configuration from an optional config file and DRIVE_*
// environment variables, applies defaults, and returns a populated Config.
//
// Precedence: environment variables over config file over defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http.port", ":8080")
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "drive")
	v.SetDefault("store.type", "mongo")
	v.SetDefault("storage.directory", "./uploads")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)

	v.SetEnvPrefix("DRIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Type {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown store type %q (want mongo or memory)", c.Store.Type)
	}
	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("auth.token_secret is required (set DRIVE_AUTH_TOKEN_SECRET)")
	}
	return nil
}
