package config

import (
	"CommunityReportAPI/internal/entity"
	"CommunityReportAPI/internal/helper"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured store. It returns a nil *gorm.DB for the memory
// driver, which callers treat as "use the in-process repository".
func InitDB(cfg *AppConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case DBDriverMemory:
		slog.Warn("Using in-memory report store; data is lost on restart")
		return nil, nil
	case DBDriverPostgres:
		sqlDB, err := sql.Open("postgres", cfg.DBConnectionString())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case DBDriverSQLite:
		if dir := filepath.Dir(cfg.DBSQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory %s: %w", dir, err)
			}
		}
		dialector = sqlite.Open(cfg.DBSQLitePath + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleSeconds) * time.Second)
	if cfg.DBDriver == DBDriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err = helper.RetryWithBackoff(ctx, "database ping", func(ctx context.Context) (bool, error) {
		pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.DBConnectTimeoutSecs)*time.Second)
		defer cancel()
		return true, sqlDB.PingContext(pingCtx)
	}, cfg.DBStartupPingAttempts-1, time.Second)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if cfg.DBMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		slog.Info("Database schema migrated successfully")
	} else {
		slog.Info("Database migration skipped (DB_MIGRATE=false)")
	}

	slog.Info("Database connected successfully", "driver", cfg.DBDriver)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Report{}, &entity.Comment{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func CloseDB(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB for closing", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("Error closing database connection", "error", err)
	}
}
