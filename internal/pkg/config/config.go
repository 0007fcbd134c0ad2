package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"

	envDevelopment = "development"
	devJWTSecret   = "development-only-secret"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:5175",
	"http://localhost:3000",
}

type Config struct {
	Port            string        `yaml:"port"            env:"PORT, overwrite, default=8080"`
	Env             string        `yaml:"env"             env:"ENV, overwrite, default=development"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT, overwrite, default=10s"`

	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL, overwrite, default=info"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY, overwrite"`
	// File enables a rotating log file next to stdout when set.
	File       string `yaml:"file"       env:"LOG_FILE, overwrite"`
	MaxSizeMB  int    `yaml:"maxSizeMB"  env:"LOG_MAX_SIZE_MB, overwrite, default=100"`
	MaxBackups int    `yaml:"maxBackups" env:"LOG_MAX_BACKUPS, overwrite, default=5"`
	MaxAgeDays int    `yaml:"maxAgeDays" env:"LOG_MAX_AGE_DAYS, overwrite, default=30"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwtSecret" env:"JWT_SECRET, overwrite"`
	Issuer    string        `yaml:"issuer"    env:"JWT_ISSUER, overwrite, default=social-api"`
	TokenTTL  time.Duration `yaml:"tokenTTL"  env:"TOKEN_TTL, overwrite, default=24h"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"          env:"DB_DRIVER, overwrite, default=mysql"`
	DSN             string        `yaml:"dsn"             env:"MYSQL_DSN, overwrite, default=social:social@tcp(localhost:3306)/social?charset=utf8mb4&parseTime=True&loc=UTC"`
	MaxOpenConns    int           `yaml:"maxOpenConns"    env:"MYSQL_MAX_OPEN_CONNS, overwrite, default=20"`
	MaxIdleConns    int           `yaml:"maxIdleConns"    env:"MYSQL_MAX_IDLE_CONNS, overwrite, default=10"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" env:"MYSQL_CONN_MAX_LIFETIME, overwrite, default=1h"`
	AutoMigrate     bool          `yaml:"autoMigrate"     env:"MYSQL_AUTO_MIGRATE, overwrite, default=true"`
}

// MongoConfig holds the audit trail store. An empty URI disables it.
type MongoConfig struct {
	URI          string `yaml:"uri"          env:"MONGO_URI, overwrite"`
	Database     string `yaml:"database"     env:"MONGO_DB, overwrite, default=social"`
	AuditWorkers int    `yaml:"auditWorkers" env:"AUDIT_WORKERS, overwrite, default=4"`
}

// RedisConfig holds the feed cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR, overwrite"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD, overwrite"`
	DB       int           `yaml:"db"       env:"REDIS_DB, overwrite"`
	FeedTTL  time.Duration `yaml:"feedTTL"  env:"FEED_CACHE_TTL, overwrite, default=1m"`
}

type HTTPConfig struct {
	CORSOrigins []string `yaml:"corsOrigins" env:"CORS_ALLOWED_ORIGINS, overwrite"`
	// AuthRateLimit is requests per second per client IP on /api/auth.
	AuthRateLimit float64 `yaml:"authRateLimit" env:"AUTH_RATE_LIMIT, overwrite, default=5"`
	AuthRateBurst int     `yaml:"authRateBurst" env:"AUTH_RATE_BURST, overwrite, default=10"`
}

// Load builds the configuration from, in increasing precedence: built-in
// defaults, an optional YAML file named by CONFIG_FILE, and the environment
// (including a .env file in the working directory when present).
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadWith(ctx, os.Getenv("CONFIG_FILE"), envconfig.OsLookuper())
}

// LoadWith is Load with an explicit YAML path and variable source.
func LoadWith(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if len(cfg.HTTP.CORSOrigins) == 0 {
		cfg.HTTP.CORSOrigins = append([]string(nil), defaultCORSOrigins...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = devJWTSecret
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" && !c.IsDevelopment() {
		return errors.New("config: JWT_SECRET is required outside development")
	}
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.DSN == "" {
			return errors.New("config: MYSQL_DSN is required for the mysql driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == envDevelopment
}
