package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

type AppUser struct {
	ID        string    `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name" validate:"required"`
	Username  string    `json:"username" bson:"username" db:"username" validate:"required"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty" db:"email" validate:"omitempty,email"`
	Role      string    `json:"role" bson:"role" db:"role" validate:"required,oneof=admin vendor"`
	Password  string    `json:"password,omitempty" bson:"password_hash" db:"password_hash"`
	VendorID  string    `json:"vendorId,omitempty" bson:"vendorId,omitempty" db:"vendor_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
