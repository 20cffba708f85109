package repository

import (
	"context"

	"procurement/models"
)

type VendorRepository interface {
	ListVendors(ctx context.Context, filters models.ListFilters) ([]models.Vendor, int64, error)
	GetVendor(ctx context.Context, id string) (*models.Vendor, error)
	CreateVendor(ctx context.Context, vendor *models.Vendor) error
	UpdateVendor(ctx context.Context, id string, vendor *models.Vendor) error
	DeleteVendor(ctx context.Context, id string) error
}
