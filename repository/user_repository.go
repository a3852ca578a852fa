package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"userAnalytics/internal/db"
	"userAnalytics/models"
)

const (
	upsertUserSQL = `INSERT OR REPLACE INTO users (id, name, username, email, phone, website) VALUES (?, ?, ?, ?, ?, ?)`
	selectAllSQL  = `SELECT id, name, username, email, phone, website FROM users ORDER BY id`
)

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewUserRepository(d *sql.DB, log *slog.Logger) *UserRepository {
	if log == nil {
		log = slog.Default()
	}
	return &UserRepository{db: d, log: log}
}

// ReplaceAll drops the users table, recreates it and inserts every record with
// insert-or-replace semantics, all inside one transaction. Records sharing an id
// collapse into the last one seen.
func (r *UserRepository) ReplaceAll(ctx context.Context, users []models.UserRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	schema, err := db.UsersSchema()
	if err != nil {
		return fmt.Errorf("load users schema: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := replaceAllTx(ctx, tx, schema, users); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.log.Error("rollback error", slog.Any("error", rbErr))
		}
		r.log.Error("failed to replace users", slog.Int("count", len(users)), slog.Any("error", err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit users: %w", err)
	}
	r.log.Debug("users table rebuilt", slog.Int("count", len(users)))
	return nil
}

func replaceAllTx(ctx context.Context, tx *sql.Tx, schema string, users []models.UserRecord) error {
	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users`); err != nil {
		return fmt.Errorf("drop users: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, upsertUserSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i := range users {
		if _, err := stmt.ExecContext(ctx, upsertArgs(&users[i])...); err != nil {
			return fmt.Errorf("insert user #%d: %w", i, err)
		}
	}
	return nil
}

// Upsert inserts a single record or replaces the row with the same id.
// The users table must already exist.
func (r *UserRepository) Upsert(ctx context.Context, u *models.UserRecord) error {
	if u == nil {
		return errors.New("nil user")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, upsertUserSQL, upsertArgs(u)...); err != nil {
		r.log.Error("failed to upsert user", slog.Any("error", err))
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// All loads the entire users table. Column order matches the table definition.
func (r *UserRepository) All(ctx context.Context) (models.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return models.Table{}, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := models.Table{Columns: append([]string(nil), models.UserColumns...)}
	for rows.Next() {
		var id sql.NullInt64
		var name, username, email, phone, website sql.NullString
		if err := rows.Scan(&id, &name, &username, &email, &phone, &website); err != nil {
			return models.Table{}, fmt.Errorf("scan user: %w", err)
		}
		out.Rows = append(out.Rows, models.UserRecord{
			ID:       nullInt(id),
			Name:     nullString(name),
			Username: nullString(username),
			Email:    nullString(email),
			Phone:    nullString(phone),
			Website:  nullString(website),
		})
	}
	if err := rows.Err(); err != nil {
		return models.Table{}, err
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func upsertArgs(u *models.UserRecord) []any {
	return []any{
		nullable(u.ID),
		nullable(u.Name),
		nullable(u.Username),
		nullable(u.Email),
		nullable(u.Phone),
		nullable(u.Website),
	}
}

// nullable turns a nil pointer into an untyped nil so the driver writes NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
