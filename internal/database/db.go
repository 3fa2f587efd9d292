package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/justsurfingit/talentflow/internal/config"
	"github.com/justsurfingit/talentflow/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres store, tunes the pool and runs migrations.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	var db *gorm.DB
	err := retry(cfg.DBConnectAttempts, time.Second, func() error {
		var e error
		db, e = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
		if e != nil {
			return e
		}
		sqlDB, e := db.DB()
		if e != nil {
			return e
		}
		return sqlDB.Ping()
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLife)
	slog.Info("database connection established")

	slog.Info("running migrations")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the services use.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// retry executes f with exponential backoff.
func retry(attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		slog.Warn("database not ready, retrying", slog.String("error", err.Error()), slog.Duration("backoff", sleep))
		time.Sleep(sleep)
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func gormLogLevel(level string) logger.LogLevel {
	if level == "debug" {
		return logger.Info
	}
	return logger.Warn
}
