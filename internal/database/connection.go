package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. SQLite is the
// default; set DB_TYPE=postgres and DATABASE_URL to use PostgreSQL.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")

	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "polybot.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite doesn't support multiple writers
	db.SetMaxIdleConns(1)

	DB = db

	// Initialize schema
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Create users table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			telegram_id BIGINT PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			is_admin BOOLEAN DEFAULT false,
			target_language TEXT DEFAULT 'EN',
			level TEXT DEFAULT 'B1',
			persona TEXT DEFAULT '',
			duration_seconds INTEGER DEFAULT 60,
			notification_enabled BOOLEAN DEFAULT true,
			notification_hour INTEGER DEFAULT 9,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	// Create videos table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY,
			slug TEXT NOT NULL,
			user_id BIGINT NOT NULL,
			title TEXT DEFAULT '',
			date TEXT DEFAULT '',
			location TEXT DEFAULT '',
			memo TEXT DEFAULT '',
			status TEXT DEFAULT 'draft',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, slug)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create videos table: %v", err)
	}

	// Create scripts table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS scripts (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL,
			language TEXT NOT NULL,
			level TEXT DEFAULT 'base',
			version INTEGER DEFAULT 1,
			text TEXT DEFAULT '',
			active BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (video_id) REFERENCES videos(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create scripts table: %v", err)
	}

	// Create learning_items table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS learning_items (
			id TEXT PRIMARY KEY,
			video_id TEXT DEFAULT '',
			user_id BIGINT NOT NULL,
			language TEXT NOT NULL,
			type TEXT NOT NULL,
			head TEXT NOT NULL,
			tail TEXT NOT NULL,
			example TEXT DEFAULT '',
			usage TEXT DEFAULT '',
			priority TEXT DEFAULT 'med',
			active BOOLEAN DEFAULT true,
			is_favorite BOOLEAN DEFAULT false,
			mastery_score REAL DEFAULT 0,
			error_count INTEGER DEFAULT 0,
			last_reviewed_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create learning_items table: %v", err)
	}

	// Create speaking_scores table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS speaking_scores (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL,
			language TEXT NOT NULL,
			date TEXT DEFAULT '',
			script_version INTEGER DEFAULT 1,
			pronunciation INTEGER DEFAULT 0,
			grammar INTEGER DEFAULT 0,
			fluency INTEGER DEFAULT 0,
			clarity INTEGER DEFAULT 0,
			total INTEGER DEFAULT 0,
			main_problem TEXT DEFAULT '',
			improvement_tip TEXT DEFAULT '',
			comment TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (video_id) REFERENCES videos(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create speaking_scores table: %v", err)
	}

	return nil
}
