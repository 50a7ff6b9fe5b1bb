// Package db opens the gorm connection pool and migrates the schema.
package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	userentity "chupchup_backend/internal/feature/auth/domain/entity"
	productentity "chupchup_backend/internal/feature/product/domain/entity"
	"chupchup_backend/internal/platform/config"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the driver-specific DSN for cfg.
// INSTANCE_CONNECTION_NAME selects the Cloud SQL unix socket over host/port.
func BuildDSN(cfg config.DBConfig) string {
	switch cfg.Driver {
	case config.DriverPostgres:
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
	case config.DriverSQLite:
		return cfg.SQLitePath
	default:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	}
}

// Dialector picks the gorm dialector for driver.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverMySQL:
		return gmysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// GormConfig is shared by the server and the adapter tests.
// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	return connectWithRetry(dsn, timeout, open, zerolog.Nop())
}

func connectWithRetry(dsn string, timeout time.Duration, open Opener, log zerolog.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db connect failed after %s (%d attempts): %w", timeout, attempt, err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("db connect failed, retrying")
		time.Sleep(min(retryInterval, remaining))
	}
}

// Open connects to the configured store, retrying until cfg.ConnectTimeout.
func Open(cfg config.DBConfig, log zerolog.Logger) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)
	opener := func(dsn string) (*gorm.DB, error) {
		d, err := Dialector(cfg.Driver, dsn)
		if err != nil {
			return nil, err
		}
		return gorm.Open(d, GormConfig())
	}

	db, err := connectWithRetry(dsn, cfg.ConnectTimeout, opener, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.Driver).Msg("db connection established")
	return db, nil
}

// Migrate creates or updates the usuarios and produtos tables.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("migrate: nil db")
	}
	if err := db.AutoMigrate(
		&userentity.User{},
		&productentity.Product{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
