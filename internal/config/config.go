// Package config loads the service configuration from a YAML file, a .env
// file and MESS_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sudharshan-del/Hostel-Management/internal/logging"
	"github.com/sudharshan-del/Hostel-Management/internal/validation"
	"gopkg.in/yaml.v3"
)

const (
	CounterFile   = "file"
	CounterSQLite = "sqlite"
	CounterMemory = "memory"
	CounterRedis  = "redis"

	CatalogMemory = "memory"
	CatalogSQL    = "sql"
	CatalogRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	Addr         string         `yaml:"addr" validate:"required"`
	AdminToken   string         `yaml:"admin_token"`
	MaxConns     int            `yaml:"max_conns" validate:"gte=0"`
	ReadTimeout  time.Duration  `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration  `yaml:"write_timeout" validate:"gte=0"`
	Counter      CounterConfig  `yaml:"counter"`
	Catalog      CatalogConfig  `yaml:"catalog"`
	Backup       BackupConfig   `yaml:"backup"`
	Log          logging.Config `yaml:"log"`
}

// CounterConfig selects the vote counter backend.
type CounterConfig struct {
	Backend     string `yaml:"backend" validate:"oneof=file sqlite memory redis"`
	Path        string `yaml:"path" validate:"required_if=Backend file"`
	DSN         string `yaml:"dsn" validate:"required_if=Backend sqlite"`
	RedisAddr   string `yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// CatalogConfig selects the menu catalog backend.
type CatalogConfig struct {
	Backend     string `yaml:"backend" validate:"oneof=memory sql redis"`
	Driver      string `yaml:"driver" validate:"omitempty,oneof=sqlite mysql"`
	DSN         string `yaml:"dsn" validate:"required_if=Backend sql"`
	RedisAddr   string `yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// BackupConfig names the S3 location counter snapshots are uploaded to.
type BackupConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Addr:         ":8000",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Counter: CounterConfig{
			Backend:     CounterFile,
			Path:        "mess_stats.dat",
			RedisPrefix: "mess:",
		},
		Catalog: CatalogConfig{
			Backend:     CatalogMemory,
			Driver:      "sqlite",
			RedisPrefix: "mess:",
		},
		Backup: BackupConfig{
			Prefix: "mess",
		},
		Log: logging.Config{
			Env: logging.EnvProduction,
		},
	}
}

// LoadDotEnv loads variables from the given .env files (".env" by default)
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the YAML file at path (when
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML data on top of cfg.
func Parse(data []byte, cfg *Config) error {
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return nil
}

// Validate checks every field against its rules.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"MESS_ADDR":                     &cfg.Addr,
		"MESS_ADMIN_TOKEN":              &cfg.AdminToken,
		"MESS_COUNTER_BACKEND":          &cfg.Counter.Backend,
		"MESS_COUNTER_PATH":             &cfg.Counter.Path,
		"MESS_COUNTER_DSN":              &cfg.Counter.DSN,
		"MESS_COUNTER_REDIS_ADDR":       &cfg.Counter.RedisAddr,
		"MESS_COUNTER_REDIS_PREFIX":     &cfg.Counter.RedisPrefix,
		"MESS_CATALOG_BACKEND":          &cfg.Catalog.Backend,
		"MESS_CATALOG_DRIVER":           &cfg.Catalog.Driver,
		"MESS_CATALOG_DSN":              &cfg.Catalog.DSN,
		"MESS_CATALOG_REDIS_ADDR":       &cfg.Catalog.RedisAddr,
		"MESS_CATALOG_REDIS_PREFIX":     &cfg.Catalog.RedisPrefix,
		"MESS_BACKUP_BUCKET":            &cfg.Backup.Bucket,
		"MESS_BACKUP_REGION":            &cfg.Backup.Region,
		"MESS_BACKUP_PREFIX":            &cfg.Backup.Prefix,
		"MESS_BACKUP_ENDPOINT":          &cfg.Backup.Endpoint,
		"MESS_BACKUP_ACCESS_KEY_ID":     &cfg.Backup.AccessKeyID,
		"MESS_BACKUP_SECRET_ACCESS_KEY": &cfg.Backup.SecretAccessKey,
		"MESS_LOG_ENV":                  &cfg.Log.Env,
		"MESS_LOG_LEVEL":                &cfg.Log.Level,
		"MESS_LOG_FILE":                 &cfg.Log.FileName,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("MESS_MAX_CONNS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: MESS_MAX_CONNS: %w", err)
		}
		cfg.MaxConns = n
	}

	durations := map[string]*time.Duration{
		"MESS_READ_TIMEOUT":  &cfg.ReadTimeout,
		"MESS_WRITE_TIMEOUT": &cfg.WriteTimeout,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}
