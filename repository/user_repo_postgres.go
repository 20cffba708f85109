package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"procurement/models"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

// CreateUser hashes the password and inserts the user; a taken username is ErrDuplicate.
func (r *PostgresUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	if err := hashPassword(user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO app_user (id, name, username, email, role, password_hash, vendor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Name, user.Username, user.Email, user.Role, user.Password, user.VendorID, user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, username, email, role, password_hash, vendor_id, created_at
		FROM app_user
		WHERE username=$1
	`, username).Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.Role, &user.Password, &user.VendorID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepo) UpdateUsernameByVendor(ctx context.Context, vendorID, username string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE app_user SET username=$1 WHERE vendor_id=$2`, username, vendorID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresUserRepo) DeleteUsersByVendor(ctx context.Context, vendorID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM app_user WHERE vendor_id=$1`, vendorID)
	return err
}
