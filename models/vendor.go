package models

import "time"

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty" db:"street"`
	City    string `json:"city,omitempty" bson:"city,omitempty" db:"city"`
	State   string `json:"state,omitempty" bson:"state,omitempty" db:"state"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty" db:"pincode"`
}

// Vendor is the supplier record managed from the vendor screen. CreatedAt and UpdatedAt are
// owned by the server and ignored on update.
type Vendor struct {
	ID            string     `json:"_id" bson:"_id,omitempty" db:"id"`
	VendorCode    string     `json:"vendorCode" bson:"vendorCode" db:"vendor_code" validate:"required,max=50"`
	Name          string     `json:"name" bson:"name" db:"name" validate:"required,max=200"`
	ContactPerson string     `json:"contactPerson,omitempty" bson:"contactPerson,omitempty" db:"contact_person"`
	MobileNumber  string     `json:"mobileNumber,omitempty" bson:"mobileNumber,omitempty" db:"mobile_number" validate:"omitempty,numeric,min=7,max=15"`
	Email         string     `json:"email,omitempty" bson:"email,omitempty" db:"email" validate:"omitempty,email"`
	Address       *Address   `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty" db:"updated_at"`
}

// VendorRegistration is the body of POST /auth/vendor-register: the vendor fields
// plus the password of the credential provisioned for it.
type VendorRegistration struct {
	Vendor
	Password string `json:"password" validate:"required,min=6"`
}

// VendorPage is the list response shape consumed by the vendor screen.
type VendorPage struct {
	Vendors    []Vendor `json:"vendors"`
	TotalPages int      `json:"totalPages"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
}

// City returns the address city, or "-" when the vendor has none.
func (v Vendor) City() string {
	if v.Address == nil || v.Address.City == "" {
		return "-"
	}
	return v.Address.City
}

// State returns the address state, or "-" when the vendor has none.
func (v Vendor) State() string {
	if v.Address == nil || v.Address.State == "" {
		return "-"
	}
	return v.Address.State
}
