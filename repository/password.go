package repository

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"procurement/models"
)

// hashPassword replaces the plain password with its bcrypt hash.
func hashPassword(user *models.AppUser) error {
	if user.Password == "" {
		return errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}
