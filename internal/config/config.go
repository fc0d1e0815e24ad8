package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Auth     AuthConfig
	Events   EventsConfig
	Cache    CacheConfig
	AWS      AWSConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SecretName      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

type CacheConfig struct {
	TTL time.Duration
}

type AWSConfig struct {
	Region string
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. Nested keys map to env vars
// by replacing dots with underscores (server.port -> SERVER_PORT).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("db.driver"),
			DSN:             v.GetString("db.dsn"),
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			SecretName:      v.GetString("db.secret_name"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("jwt.secret"),
			Issuer:    v.GetString("jwt.issuer"),
			TokenTTL:  v.GetDuration("jwt.ttl"),
		},
		Events: EventsConfig{
			AMQPURL:  v.GetString("amqp.url"),
			Exchange: v.GetString("amqp.exchange"),
		},
		Cache: CacheConfig{
			TTL: v.GetDuration("cache.ttl"),
		},
		AWS: AWSConfig{
			Region: v.GetString("aws.region"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite3":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "stockledger")
	v.SetDefault("db.password", "secret")
	v.SetDefault("db.name", "stockledger")
	v.SetDefault("db.secret_name", "")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "stockledger")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "stock.views")
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("aws.region", "us-east-1")
}

func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var values map[string]interface{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("merging config file: %w", err)
	}

	return nil
}
