package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is the store file used when none is configured.
const DefaultPath = "usuarios3.db"

//go:embed schema/*.sql
var schemaFS embed.FS

// Open opens (or creates) a local SQLite database file and checks it is reachable.
// The users table is not created here; the loader recreates it on every run.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// UsersSchema returns the CREATE TABLE statement for the users table.
func UsersSchema() (string, error) {
	b, err := schemaFS.ReadFile("schema/users.sql")
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", errors.New("users schema is empty")
	}
	return text, nil
}

// TableExists reports whether a table with the given name is present.
func TableExists(ctx context.Context, d *sql.DB, name string) (bool, error) {
	if d == nil {
		return false, errors.New("nil db")
	}
	var n int
	err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
