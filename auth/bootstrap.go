package auth

import (
	"context"
	"fmt"

	"procurement/models"
	"procurement/repository"
)

// EnsureAdmin creates the bootstrap admin account unless a user with that username
// already exists. It reports whether a user was created.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	existing, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("lookup admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	admin := &models.AppUser{
		Name:     "Administrator",
		Username: username,
		Role:     models.RoleAdmin,
		Password: password,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
