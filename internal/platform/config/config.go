// Package config loads the service configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration of the server.
type Config struct {
	Port             string   `env:"PORT, default=3000"`
	Env              string   `env:"APP_ENV, default=development"`
	LogLevel         string   `env:"LOG_LEVEL, default=info"`
	LogPretty        bool     `env:"LOG_PRETTY, default=false"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS, default=*"`

	DB    DBConfig
	Media MediaConfig
	Auth  AuthConfig
}

// DBConfig describes how to reach the relational store.
type DBConfig struct {
	Driver       string `env:"DB_DRIVER, default=mysql"`
	User         string `env:"DB_USER, default=root"`
	Password     string `env:"DB_PASSWORD"`
	Host         string `env:"DB_HOST, default=localhost"`
	Port         string `env:"DB_PORT, default=3306"`
	Name         string `env:"DB_NAME, default=chupchup_db"`
	InstanceName string `env:"INSTANCE_CONNECTION_NAME"`
	SQLitePath   string `env:"DB_SQLITE_PATH, default=chupchup.db"`

	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT, default=60s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS, default=true"`
}

// MediaConfig holds the upload and static directories.
type MediaConfig struct {
	UploadDir      string `env:"UPLOAD_DIR, default=uploads"`
	PublicDir      string `env:"PUBLIC_DIR, default=public"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES, default=8388608"`
}

// AuthConfig controls the optional admin guard and the admin seed account.
type AuthConfig struct {
	AdminGuard    bool          `env:"ADMIN_GUARD, default=false"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION, default=24h"`

	AdminName     string `env:"ADMIN_NAME, default=Administrador"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// SeedAdmin reports whether an admin account should be ensured at startup.
func (a AuthConfig) SeedAdmin() bool {
	return a.AdminEmail != "" && a.AdminPassword != ""
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes the configuration using the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Auth.AdminGuard && c.Auth.JWTSecret == "" {
		return errors.New("config: ADMIN_GUARD requires JWT_SECRET")
	}
	if (c.Auth.AdminEmail == "") != (c.Auth.AdminPassword == "") {
		return errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.Media.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive, got %d", c.Media.MaxUploadBytes)
	}
	return nil
}

// Addr is the listen address, bound to all interfaces.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
