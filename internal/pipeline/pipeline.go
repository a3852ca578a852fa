// Package pipeline runs the startup sequence: fetch, store, reload, enrich.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"userAnalytics/internal/db"
	"userAnalytics/internal/enrich"
	"userAnalytics/internal/metrics"
	"userAnalytics/models"
	"userAnalytics/repository"
)

// Fetcher supplies the user records for one run.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]models.UserRecord, error)
}

type Pipeline struct {
	fetcher Fetcher
	dbPath  string
	log     *slog.Logger
}

func New(fetcher Fetcher, dbPath string, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{fetcher: fetcher, dbPath: dbPath, log: log}
}

// Run executes the whole sequence once. A fetch error returns before the store
// is opened, so a failed run never touches the previous table.
func (p *Pipeline) Run(ctx context.Context) ([]models.EnrichedUser, error) {
	users, err := p.fetcher.FetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	if err := Load(ctx, p.dbPath, users, p.log); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	table, err := Read(ctx, p.dbPath, p.log)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	enriched := enrich.Enrich(table)
	metrics.SetUsersLoaded(len(enriched))
	p.log.Info("dataset ready", slog.Int("fetched", len(users)), slog.Int("rows", len(enriched)), slog.String("db", p.dbPath))
	return enriched, nil
}

// Load opens the store, rebuilds the users table from users and closes it.
func Load(ctx context.Context, path string, users []models.UserRecord, log *slog.Logger) (err error) {
	d, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if cerr := d.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close db: %w", cerr)
		}
	}()
	return repository.NewUserRepository(d, log).ReplaceAll(ctx, users)
}

// Read opens a fresh connection and materializes the whole users table.
func Read(ctx context.Context, path string, log *slog.Logger) (table models.Table, err error) {
	d, err := db.Open(path)
	if err != nil {
		return models.Table{}, fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if cerr := d.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close db: %w", cerr)
		}
	}()
	return repository.NewUserRepository(d, log).All(ctx)
}
