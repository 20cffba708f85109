package repository

import (
	"context"

	"procurement/models"
)

// UserRepository stores login credentials. CreateUser hashes user.Password in place.
// GetUserByUsername returns nil, nil when no user matches. UpdateUsernameByVendor
// renames the vendor's login; a username held by another user is ErrDuplicate.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.AppUser) error
	GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error)
	UpdateUsernameByVendor(ctx context.Context, vendorID, username string) error
	DeleteUsersByVendor(ctx context.Context, vendorID string) error
}
