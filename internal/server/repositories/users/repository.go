// Package users declares the user persistence contract and its PostgreSQL and
// in-memory implementations.
package users

import (
	"context"

	"github.com/yeabtsegataye/equb-system/internal/server/models"
)

// Repository stores user identity records. Email is unique across records.
type Repository interface {
	// Create persists user and fills in its generated ID and CreatedAt.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no record matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
