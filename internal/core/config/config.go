// Package config loads the processor configuration: process environment
// settings (tokens, server, logging) plus the per-repository and user
// mapping YAML files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

// Config is the root environment-derived configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	Redmine RedmineConfig `mapstructure:"redmine"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	Paths   PathsConfig   `mapstructure:"paths"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GitHubConfig holds GitHub credentials.
type GitHubConfig struct {
	Token         string `mapstructure:"token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// RedmineConfig holds Redmine connection settings.
type RedmineConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// SentryConfig holds the error reporting sink settings.
type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

// PathsConfig points at the YAML configuration files.
type PathsConfig struct {
	Repos string `mapstructure:"repos"`
	Users string `mapstructure:"users"`
}

// Capabilities are the named feature toggles derived from configured
// credentials. They are passed explicitly into the engine so capability
// combinations stay unit-testable.
type Capabilities struct {
	// TrackerEnabled is true when a Redmine API key is configured.
	TrackerEnabled bool

	// PlatformWriteEnabled is true when a GitHub token is configured.
	PlatformWriteEnabled bool
}

// NewConfig loads configuration from the environment using viper with typed
// defaults and validation. A config/.env file, if present, seeds missing
// environment variables first.
func NewConfig() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Capabilities derives the engine capability toggles from the loaded
// credentials.
func (c *Config) Capabilities() Capabilities {
	return Capabilities{
		TrackerEnabled:       c.Redmine.APIKey != "",
		PlatformWriteEnabled: c.GitHub.Token != "",
	}
}

// ServerAddr returns the host:port the HTTP server listens on.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Redmine.URL == "" {
		return fmt.Errorf("redmine url must not be empty")
	}
	if c.Paths.Repos == "" {
		return fmt.Errorf("repos config path must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("redmine.url", "https://projects.theforeman.org")

	v.SetDefault("paths.repos", "config/repos.yaml")
	v.SetDefault("paths.users", "config/users.yaml")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"server.host",
		"server.port",
		"server.request_timeout",
		"server.shutdown_timeout",
		"github.token",
		"github.webhook_secret",
		"redmine.url",
		"redmine.api_key",
		"sentry.dsn",
		"paths.repos",
		"paths.users",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
