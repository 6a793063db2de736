// Package config loads the roster's JSON configuration file, with .env and
// ROSTER_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"legal-roster/database"
	"legal-roster/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = "config.json"
	EnvPrefix         = "ROSTER"
)

// Config holds all application configuration
type Config struct {
	Meta     MetaConfig     `mapstructure:"meta"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type MetaConfig struct {
	LogPrefix string `mapstructure:"log_prefix"`
	LogLevel  string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	Driver         string           `mapstructure:"driver"`
	QueryTimeout   time.Duration    `mapstructure:"query_timeout"`
	ConnectTimeout time.Duration    `mapstructure:"connect_timeout"`
	SSLMode        string           `mapstructure:"sslmode"`
	Connection     ConnectionConfig `mapstructure:"connection"`
	Pool           PoolConfig       `mapstructure:"pool"`
}

// ConnectionConfig mirrors the nested "connection": {"config": {...}} block
type ConnectionConfig struct {
	Config ConnectionParams `mapstructure:"config"`
}

type ConnectionParams struct {
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
}

type PoolConfig struct {
	Name         string `mapstructure:"name"`
	Size         int    `mapstructure:"size"`
	ResetSession bool   `mapstructure:"reset_session"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type StorageConfig struct {
	Type         string `mapstructure:"type"`
	LocalPath    string `mapstructure:"local_path"`
	S3Bucket     string `mapstructure:"s3_bucket"`
	S3Region     string `mapstructure:"s3_region"`
	S3Endpoint   string `mapstructure:"s3_endpoint"`
	S3PathStyle  bool   `mapstructure:"s3_path_style"`
	AWSAccessKey string `mapstructure:"aws_access_key_id"`
	AWSSecretKey string `mapstructure:"aws_secret_access_key"`
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

// Load reads path (config.json when empty) and an optional .env
func Load(path string) (*Config, error) {
	return LoadWithOptions(LoadOptions{ConfigFile: path, EnvFile: ".env"})
}

// LoadWithOptions loads configuration.
// Precedence (highest to lowest): env vars > .env > config file > defaults
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgFile := opts.ConfigFile
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = DefaultConfigFile
	}

	if _, err := os.Stat(cfgFile); err == nil || explicit {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("meta.log_prefix", "legal_case_app")
	v.SetDefault("meta.log_level", "info")

	v.SetDefault("database.driver", string(database.DriverMySQL))
	v.SetDefault("database.query_timeout", "0s")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.connection.config.database", "legal_cases")
	v.SetDefault("database.connection.config.user", "")
	v.SetDefault("database.connection.config.password", "")
	v.SetDefault("database.connection.config.host", "localhost")
	v.SetDefault("database.connection.config.port", 0)
	v.SetDefault("database.pool.name", "legal_case_pool")
	v.SetDefault("database.pool.size", 5)
	v.SetDefault("database.pool.reset_session", true)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("storage.type", string(storage.StorageTypeLocal))
	v.SetDefault("storage.local_path", "./exports")
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_endpoint", "")
	v.SetDefault("storage.s3_path_style", false)
	v.SetDefault("storage.aws_access_key_id", "")
	v.SetDefault("storage.aws_secret_access_key", "")
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if err := c.Database.PoolConfig().Validate(); err != nil {
		return err
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("database.query_timeout must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch storage.StorageType(c.Storage.Type) {
	case storage.StorageTypeLocal:
	case storage.StorageTypeS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("storage.s3_bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}
	return nil
}

// PoolConfig converts the database section into pool settings
func (d DatabaseConfig) PoolConfig() database.Config {
	conn := d.Connection.Config
	return database.Config{
		Driver:         database.Driver(strings.ToLower(d.Driver)),
		Host:           conn.Host,
		Port:           conn.Port,
		User:           conn.User,
		Password:       conn.Password,
		Database:       conn.Database,
		PoolName:       d.Pool.Name,
		PoolSize:       d.Pool.Size,
		ResetSession:   d.Pool.ResetSession,
		ConnectTimeout: d.ConnectTimeout,
		SSLMode:        d.SSLMode,
	}
}

// Backend converts the storage section into storage settings
func (s StorageConfig) Backend() storage.StorageConfig {
	return storage.StorageConfig{
		Type:         storage.StorageType(s.Type),
		LocalPath:    s.LocalPath,
		S3Bucket:     s.S3Bucket,
		S3Region:     s.S3Region,
		S3Endpoint:   s.S3Endpoint,
		S3PathStyle:  s.S3PathStyle,
		AWSAccessKey: s.AWSAccessKey,
		AWSSecretKey: s.AWSSecretKey,
	}
}

// Addr is the listen address of the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
