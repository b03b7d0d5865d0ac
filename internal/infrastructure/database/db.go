package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS client (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		organization TEXT NOT NULL,
		project TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employee (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		start_date TEXT, -- yyyy-mm-dd
		salary TEXT, -- decimal string, keeps the exact amount
		client_id INTEGER,
		FOREIGN KEY (client_id) REFERENCES client(id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employee_client_id ON employee(client_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS client (
		id BIGSERIAL PRIMARY KEY,
		organization VARCHAR(40) NOT NULL,
		project VARCHAR(40) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employee (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(70) NOT NULL,
		email VARCHAR(60) NOT NULL,
		start_date DATE,
		salary NUMERIC(14, 2),
		client_id BIGINT REFERENCES client(id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employee_client_id ON employee(client_id)`,
}

type DB struct {
	*sqlx.DB
	driver Driver
}

// New opens the store and creates the tables when they are missing.
func New(driver Driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

func openSQLite(dsn string) (*DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: store operations run one at a time, and an in-memory
	// database only lives as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if !strings.Contains(dsn, ":memory:") {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Deleting a referenced client must fail, not cascade
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := createSchema(db, sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, driver: DriverSQLite}, nil
}

func openPostgres(dsn string) (*DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := createSchema(db, postgresSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, driver: DriverPostgres}, nil
}

func createSchema(db *sqlx.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (db *DB) Driver() Driver {
	return db.driver
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// NullInt64 helper for optional int64 fields
func NullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// NullString helper for optional string fields
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}
