package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var (
	db     *sql.DB
	driver = DriverSQLite
)

// InitDB opens the database and creates the hotel tables.
// For SQLite, dsn is a file path; for PostgreSQL, a connection string.
func InitDB(driverName, dsn string) error {
	if driverName == "" {
		driverName = DriverSQLite
	}
	if driverName != DriverSQLite && driverName != DriverPostgres {
		return fmt.Errorf("unsupported database driver: %q", driverName)
	}

	if driverName == DriverSQLite {
		// Ensure data directory exists
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if db != nil {
		_ = db.Close()
	}

	opened, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if driverName == DriverSQLite {
		if _, err := opened.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			opened.Close()
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	// Set connection pool parameters
	opened.SetMaxOpenConns(25)
	opened.SetMaxIdleConns(5)
	opened.SetConnMaxLifetime(5 * time.Minute)

	if err := opened.Ping(); err != nil {
		opened.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db = opened
	driver = driverName

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	zap.L().Info("Database initialized successfully",
		zap.String("driver", driverName))

	return nil
}

// GetDB returns the database instance, or nil before InitDB
func GetDB() *sql.DB {
	return db
}

// Ping checks that the database is open and reachable.
func Ping(ctx context.Context) error {
	conn := GetDB()
	if conn == nil {
		return fmt.Errorf("database not initialized")
	}
	return conn.PingContext(ctx)
}

// Close closes the database connection
func Close() error {
	if db != nil {
		err := db.Close()
		db = nil
		return err
	}
	return nil
}

// createTables creates all tables if they don't exist
func createTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS invoices (
			id TEXT PRIMARY KEY,
			invoice_number TEXT NOT NULL DEFAULT '',
			guest_name TEXT NOT NULL DEFAULT '',
			room_number TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Pending',
			issue_date TEXT NOT NULL DEFAULT '',
			due_date TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices(created_at)`,

		`CREATE TABLE IF NOT EXISTS guests (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			room_number TEXT NOT NULL DEFAULT '',
			check_in TEXT NOT NULL DEFAULT '',
			check_out TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			room_number TEXT NOT NULL DEFAULT '',
			room_type TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Available',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			guest_name TEXT NOT NULL DEFAULT '',
			check_in_date TEXT NOT NULL DEFAULT '',
			check_out_date TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS reservations (
			id TEXT PRIMARY KEY,
			guest_name TEXT NOT NULL DEFAULT '',
			room_number TEXT NOT NULL DEFAULT '',
			check_in_date TEXT NOT NULL DEFAULT '',
			check_out_date TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			room_number TEXT NOT NULL DEFAULT '',
			assigned_to TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Pending',
			due_date TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS revenue (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			report_date TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			report_type TEXT NOT NULL DEFAULT '',
			date_range TEXT NOT NULL DEFAULT '',
			generated_by TEXT NOT NULL DEFAULT '',
			filename TEXT NOT NULL,
			file_content TEXT NOT NULL,
			preview_data TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to execute SQL: %s, error: %w", table, err)
		}
	}

	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func rebind(query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return db.ExecContext(ctx, rebind(query), args...)
}

func query(ctx context.Context, q string, args ...interface{}) (*sql.Rows, error) {
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return db.QueryContext(ctx, rebind(q), args...)
}

// WithTx executes a function within a transaction
func WithTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// dbExecer routes through rebind; *sql.Tx callers rebind themselves.
type dbExecer struct{}

func (dbExecer) ExecContext(ctx context.Context, q string, args ...interface{}) (sql.Result, error) {
	return exec(ctx, q, args...)
}

type txExecer struct{ tx *sql.Tx }

func (t txExecer) ExecContext(ctx context.Context, q string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, rebind(q), args...)
}

func now() string {
	return time.Now().UTC().Format(model.TimestampLayout)
}
