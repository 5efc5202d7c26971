package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goofitre/carcare-api/internal/config"
	"github.com/goofitre/carcare-api/internal/models"
)

// Database owns the process-wide connection pool. It is opened once at
// startup, handed to repositories, and closed on shutdown.
type Database struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func Open(cfg *config.Config) (*Database, error) {
	gcfg := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	}
	if !cfg.IsDevelopment() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DBUrl), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return &Database{gorm: gdb, sql: sqlDB}, nil
}

// Wrap builds a Database around an existing gorm handle.
func Wrap(gdb *gorm.DB) (*Database, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Database{gorm: gdb, sql: sqlDB}, nil
}

func (d *Database) Gorm() *gorm.DB {
	return d.gorm
}

// SQLX exposes the same pool for hand-built queries.
func (d *Database) SQLX() *sqlx.DB {
	return sqlx.NewDb(d.sql, "pgx")
}

func (d *Database) Migrate() error {
	if err := d.gorm.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Service{},
		&models.Review{},
		&models.Booking{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	log.Info().Msg("closing database pool")
	return d.sql.Close()
}
