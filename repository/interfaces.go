package repository

import (
	"context"

	"userAnalytics/models"
)

// UserStore defines operations on the users table.
type UserStore interface {
	ReplaceAll(ctx context.Context, users []models.UserRecord) error
	Upsert(ctx context.Context, u *models.UserRecord) error
	All(ctx context.Context) (models.Table, error)
	Count(ctx context.Context) (int, error)
}

var _ UserStore = (*UserRepository)(nil)
