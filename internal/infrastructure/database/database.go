package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/config"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	applog "github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// New opens the database selected by cfg.Driver
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite:
		return NewSQLiteDB(cfg.Path, cfg.LogLevel)
	case DriverPostgres, "":
		return NewPostgresDB(cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log := applog.WithComponent("database")
	log.Info().Str("driver", DriverPostgres).Msg("connected")
	return db, nil
}

// NewSQLiteDB opens (or creates) a SQLite database file. Writes are
// serialized through a single connection, which also stands in for row
// locks since SQLite has no SELECT ... FOR UPDATE.
func NewSQLiteDB(path, logLevel string) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log := applog.WithComponent("database")
	log.Info().Str("driver", DriverSQLite).Str("path", path).Msg("connected")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log := applog.WithComponent("database")
	log.Info().Msg("running migrations")

	err := db.AutoMigrate(
		&entity.Client{},
		&entity.Product{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Installment{},
		&entity.Payment{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("migrations completed")
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig(level string) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(zerologWriter{applog.WithComponent("gorm")}, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(level),
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

// zerologWriter adapts gorm's printf style logger to zerolog.
type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...interface{}) {
	w.log.Info().Msgf(format, args...)
}
