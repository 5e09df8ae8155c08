package database

import (
	"log/slog"
	"time"

	"meeplelog/config"
	"meeplelog/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type DB struct {
	SQL *gorm.DB
	log logger.Logger
}

func New(config config.Config) (DB, error) {
	log := logger.New("database").Function("New")

	log.Info("Initializing database", "path", config.DatabasePath)
	db := &DB{log: logger.New("database")}

	if err := db.initializeDB(config); err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	return *db, nil
}

func (s *DB) initializeDB(config config.Config) error {
	log := s.log.Function("initializeDB")

	gormLog := gormLogger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Silent,
			IgnoreRecordNotFoundError: true,
		},
	)

	gormConfig := &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
	}

	sql, err := gorm.Open(sqlite.Open(config.DatabasePath), gormConfig)
	if err != nil {
		return log.Err("failed to open sqlite database", err, "path", config.DatabasePath)
	}

	if err := sql.AutoMigrate(&Blob{}); err != nil {
		return log.Err("failed to migrate blob table", err)
	}

	s.SQL = sql
	log.Info("Database initialized")
	return nil
}

func (s *DB) Close() error {
	if s.SQL == nil {
		return nil
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return s.log.Err("failed to access underlying sql.DB", err)
	}

	return sqlDB.Close()
}
