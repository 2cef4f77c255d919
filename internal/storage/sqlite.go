package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver (cgo)
	_ "modernc.org/sqlite"          // SQLite driver (pure Go)
)

// Supported database/sql driver names.
const (
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3
	DriverSQLite  = "sqlite"  // modernc.org/sqlite
)

// DefaultDriver is used when no driver option is given.
const DefaultDriver = DriverSQLite3

// SQLiteStorage implements service.ExpenseStore using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	driver string
}

// Option configures a SQLiteStorage.
type Option func(*SQLiteStorage)

// WithDriver selects the database/sql driver backing the store.
func WithDriver(driver string) Option {
	return func(s *SQLiteStorage) {
		if driver != "" {
			s.driver = driver
		}
	}
}

// NewSQLiteStorage opens the SQLite database at dbPath, creating it if absent.
// The schema is not touched until Migrate is called.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	s := &SQLiteStorage{
		dbPath: dbPath,
		driver: DefaultDriver,
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn, err := buildDSN(s.driver, dbPath)
	if err != nil {
		return nil, err
	}

	if !isMemoryPath(dbPath) {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(s.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection for the life of the process. This also keeps
	// :memory: databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Debug("opened expense database", "path", dbPath, "driver", s.driver)

	s.db = db
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Path returns the location the store was opened with.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Driver returns the database/sql driver name in use.
func (s *SQLiteStorage) Driver() string {
	return s.driver
}

func buildDSN(driver, dbPath string) (string, error) {
	switch driver {
	case DriverSQLite3:
		return dbPath + "?_journal_mode=WAL&_busy_timeout=5000", nil
	case DriverSQLite:
		return dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func isMemoryPath(dbPath string) bool {
	return dbPath == ":memory:"
}
