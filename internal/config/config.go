package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/slinet/ehparse/pkg/parser"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Parser    ParserConfig    `mapstructure:"parser"`
	Spool     SpoolConfig     `mapstructure:"spool"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Debug        bool   `mapstructure:"debug"`
	CORS         bool   `mapstructure:"cors"`
	CORSOrigin   string `mapstructure:"cors_origin"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// ParserConfig holds decoder settings
type ParserConfig struct {
	Hosts []string `mapstructure:"hosts"`
}

// Options converts the parser section into parser.Options.
func (c ParserConfig) Options() parser.Options {
	return parser.Options{Hosts: append([]string(nil), c.Hosts...)}
}

// SpoolConfig holds batch conversion settings
type SpoolConfig struct {
	Inbox   string `mapstructure:"inbox"`
	Outbox  string `mapstructure:"outbox"`
	Workers int    `mapstructure:"workers"`
}

// SchedulerConfig holds scheduler settings
type SchedulerConfig struct {
	SpoolCron    string `mapstructure:"spool_cron"`
	SpoolEnabled bool   `mapstructure:"spool_enabled"`
}

// Load loads configuration from file. An empty path searches ./config.yaml
// and ./config/config.yaml; a missing file leaves the defaults in place.
// Environment variables override both, e.g. EHPARSE_SERVER_PORT.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	def := parser.DefaultOptions()
	v.SetDefault("server.port", 8880)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cors", true)
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("server.max_body_bytes", 8<<20)
	v.SetDefault("parser.hosts", def.Hosts)
	v.SetDefault("spool.inbox", "./spool/inbox")
	v.SetDefault("spool.outbox", "./spool/outbox")
	v.SetDefault("spool.workers", 4)
	v.SetDefault("scheduler.spool_cron", "*/5 * * * *")
	v.SetDefault("scheduler.spool_enabled", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read environment variables
	v.SetEnvPrefix("ehparse")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found, use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid server.max_body_bytes %d", c.Server.MaxBodyBytes)
	}
	if len(c.Parser.Hosts) == 0 {
		return errors.New("parser.hosts must not be empty")
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	if c.Spool.Workers <= 0 {
		return fmt.Errorf("invalid spool.workers %d", c.Spool.Workers)
	}
	return nil
}
