package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"reniverse/models"
)

// DB is the global database instance
var DB *gorm.DB

// DBType stores the current database type for use in other functions
var DBType string

// InitDB initializes the database connection
func InitDB() (*gorm.DB, error) {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}
	DBType = dbType

	var db *gorm.DB
	var err error

	if dbType == "sqlite" {
		db, err = initSQLite()
	} else {
		db, err = initMySQL()
	}

	if err != nil {
		return nil, err
	}

	// Configure connection pool based on database type
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if dbType == "sqlite" {
		// SQLite: allow a small pool for read concurrency
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)

		sqlDB.Exec("PRAGMA foreign_keys = ON")
		sqlDB.Exec("PRAGMA journal_mode = WAL")
		sqlDB.Exec("PRAGMA synchronous = NORMAL")
		sqlDB.Exec("PRAGMA busy_timeout = 5000")
	} else {
		// MySQL: connection pool for concurrent access
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// Run migrations for all models
	err = db.AutoMigrate(
		&models.Song{},
		&models.Channel{},
		&models.Reaction{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// The channel resolver's race policy (re-query on conflicting insert)
	// depends on youtube_id being unique at the database level.
	migrator := db.Migrator()
	if !migrator.HasIndex(&models.Channel{}, "YoutubeID") {
		if err := migrator.CreateIndex(&models.Channel{}, "YoutubeID"); err != nil {
			log.Printf("Note: Could not create channels youtube_id index: %v", err)
		}
	}

	DB = db
	log.Println("Database connected successfully")

	return db, nil
}

// GetDB returns the global database instance
func GetDB() *gorm.DB {
	return DB
}

// initSQLite initializes a SQLite database connection
func initSQLite() (*gorm.DB, error) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/reniverse.db"
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Printf("Opening SQLite database at: %s", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	return db, nil
}

// initMySQL initializes a MySQL database connection
func initMySQL() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		missingVars := []string{}
		dbUser := os.Getenv("DB_USER")
		dbPass := os.Getenv("DB_PASS")
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		dbName := os.Getenv("DB_NAME")

		if dbUser == "" {
			missingVars = append(missingVars, "DB_USER")
		}
		if dbPass == "" {
			missingVars = append(missingVars, "DB_PASS")
		}
		if dbHost == "" {
			missingVars = append(missingVars, "DB_HOST")
		}
		if dbPort == "" {
			missingVars = append(missingVars, "DB_PORT")
		}
		if dbName == "" {
			missingVars = append(missingVars, "DB_NAME")
		}

		if len(missingVars) > 0 {
			return nil, fmt.Errorf("missing required environment variables: %s. Either set DATABASE_URL or all of: DB_USER, DB_PASS, DB_HOST, DB_PORT, DB_NAME", strings.Join(missingVars, ", "))
		}

		dsn = dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?parseTime=true&allowNativePasswords=true"
	}

	log.Println("Opening MySQL database connection...")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	return db, nil
}

// ShutdownDB performs a clean shutdown of the database connection
func ShutdownDB() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("error getting database connection: %w", err)
	}

	// Checkpoint WAL before closing (SQLite only)
	if DBType == "sqlite" {
		sqlDB.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("error closing database connection: %w", err)
	}

	log.Println("Database connection closed")
	return nil
}
