// Package config loads service configuration from an optional YAML file
// followed by environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string        `yaml:"addr"`
	Environment        string        `yaml:"environment"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RedisConfig is optional; an empty URL disables the read-through cache.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// KafkaConfig is optional; with no brokers audit events go to the log only.
type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	AuditTopic string   `yaml:"audit_topic"`
}

type PartyConfig struct {
	BcryptCost         int    `yaml:"bcrypt_cost"`
	DefaultPhoneRegion string `yaml:"default_phone_region"`
}

type Config struct {
	Server   Server         `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Party    PartyConfig    `yaml:"party"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: Server{
			Addr:               ":8080",
			Environment:        EnvDevelopment,
			RequestTimeout:     30 * time.Second,
			ShutdownTimeout:    15 * time.Second,
			CORSAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			CacheTTL:     5 * time.Minute,
		},
		Kafka: KafkaConfig{AuditTopic: "party.audit"},
		Party: PartyConfig{BcryptCost: 12, DefaultPhoneRegion: "US"},
	}
}

// Load reads PARTY_CONFIG_FILE when set, then applies environment overrides
// and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("PARTY_CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error
	c.Server.Addr = envString("PARTY_ADDR", c.Server.Addr)
	c.Server.Environment = strings.ToLower(envString("PARTY_ENV", c.Server.Environment))
	c.Server.RequestTimeout, errs = envDuration("PARTY_REQUEST_TIMEOUT", c.Server.RequestTimeout, errs)
	c.Server.ShutdownTimeout, errs = envDuration("PARTY_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout, errs)
	if origins := envList("CORS_ALLOWED_ORIGINS"); origins != nil {
		c.Server.CORSAllowedOrigins = origins
	}
	if frontend := strings.TrimSpace(os.Getenv("FRONTEND_URL")); frontend != "" {
		c.Server.CORSAllowedOrigins = appendUnique(c.Server.CORSAllowedOrigins, frontend)
	}

	c.Database.URL = envString("DATABASE_URL", c.Database.URL)
	c.Database.MaxOpenConns, errs = envInt("DATABASE_MAX_OPEN_CONNS", c.Database.MaxOpenConns, errs)
	c.Database.MaxIdleConns, errs = envInt("DATABASE_MAX_IDLE_CONNS", c.Database.MaxIdleConns, errs)
	c.Database.ConnMaxLifetime, errs = envDuration("DATABASE_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime, errs)

	c.Redis.URL = envString("REDIS_URL", c.Redis.URL)
	c.Redis.PoolSize, errs = envInt("REDIS_POOL_SIZE", c.Redis.PoolSize, errs)
	c.Redis.MinIdleConns, errs = envInt("REDIS_MIN_IDLE_CONNS", c.Redis.MinIdleConns, errs)
	c.Redis.DialTimeout, errs = envDuration("REDIS_DIAL_TIMEOUT", c.Redis.DialTimeout, errs)
	c.Redis.ReadTimeout, errs = envDuration("REDIS_READ_TIMEOUT", c.Redis.ReadTimeout, errs)
	c.Redis.WriteTimeout, errs = envDuration("REDIS_WRITE_TIMEOUT", c.Redis.WriteTimeout, errs)
	c.Redis.CacheTTL, errs = envDuration("PARTY_CACHE_TTL", c.Redis.CacheTTL, errs)

	if brokers := envList("KAFKA_BROKERS"); brokers != nil {
		c.Kafka.Brokers = brokers
	}
	c.Kafka.AuditTopic = envString("PARTY_AUDIT_TOPIC", c.Kafka.AuditTopic)

	c.Party.BcryptCost, errs = envInt("PARTY_BCRYPT_COST", c.Party.BcryptCost, errs)
	c.Party.DefaultPhoneRegion = strings.ToUpper(envString("PARTY_DEFAULT_PHONE_REGION", c.Party.DefaultPhoneRegion))

	return errors.Join(errs...)
}

// Validate rejects inconsistent settings.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	switch c.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("PARTY_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Server.Environment))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		errs = append(errs, errors.New("database pool sizes cannot be negative"))
	}
	if c.Database.MaxOpenConns > 0 && c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, errors.New("database idle connections cannot exceed open connections"))
	}
	if c.Redis.URL != "" && c.Redis.CacheTTL <= 0 {
		errs = append(errs, errors.New("cache TTL must be positive when redis is configured"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.AuditTopic == "" {
		errs = append(errs, errors.New("audit topic is required when kafka brokers are set"))
	}
	if c.Party.BcryptCost < 4 || c.Party.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("bcrypt cost must be between 4 and 31, got %d", c.Party.BcryptCost))
	}
	if len(c.Party.DefaultPhoneRegion) != 2 {
		errs = append(errs, fmt.Errorf("default phone region must be a two-letter region code, got %q", c.Party.DefaultPhoneRegion))
	}
	if c.IsProduction() && c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required in production"))
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}
