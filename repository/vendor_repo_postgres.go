package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"procurement/models"
)

const vendorColumns = `id, vendor_code, name, contact_person, mobile_number, email,
	street, city, state, pincode, created_at, updated_at`

type PostgresVendorRepo struct {
	DB *sql.DB
}

func NewPostgresVendorRepo(db *sql.DB) *PostgresVendorRepo {
	return &PostgresVendorRepo{DB: db}
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches search as a literal substring in an ILIKE ... ESCAPE '\' clause.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func (r *PostgresVendorRepo) ListVendors(ctx context.Context, filters models.ListFilters) ([]models.Vendor, int64, error) {
	filters = filters.Normalize()
	pattern := likePattern(filters.Search)

	var total int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vendors
		WHERE name ILIKE $1 ESCAPE '\' OR vendor_code ILIKE $1 ESCAPE '\' OR contact_person ILIKE $1 ESCAPE '\'
	`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+vendorColumns+` FROM vendors
		WHERE name ILIKE $1 ESCAPE '\' OR vendor_code ILIKE $1 ESCAPE '\' OR contact_person ILIKE $1 ESCAPE '\'
		ORDER BY name ASC, id ASC
		LIMIT $2 OFFSET $3
	`, pattern, filters.Limit, filters.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, 0, err
		}
		vendors = append(vendors, *v)
	}
	return vendors, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVendor(row rowScanner) (*models.Vendor, error) {
	var v models.Vendor
	var addr models.Address
	err := row.Scan(&v.ID, &v.VendorCode, &v.Name, &v.ContactPerson, &v.MobileNumber, &v.Email,
		&addr.Street, &addr.City, &addr.State, &addr.Pincode, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if addr != (models.Address{}) {
		v.Address = &addr
	}
	return &v, nil
}

func addressFields(a *models.Address) models.Address {
	if a == nil {
		return models.Address{}
	}
	return *a
}

func (r *PostgresVendorRepo) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id=$1`, id)
	v, err := scanVendor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *PostgresVendorRepo) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.NewString()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = time.Now().UTC()
	}
	addr := addressFields(vendor.Address)

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vendors (id, vendor_code, name, contact_person, mobile_number, email,
			street, city, state, pincode, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, vendor.ID, vendor.VendorCode, vendor.Name, vendor.ContactPerson, vendor.MobileNumber, vendor.Email,
		addr.Street, addr.City, addr.State, addr.Pincode, vendor.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresVendorRepo) UpdateVendor(ctx context.Context, id string, vendor *models.Vendor) error {
	now := time.Now().UTC()
	addr := addressFields(vendor.Address)

	res, err := r.DB.ExecContext(ctx, `
		UPDATE vendors
		SET vendor_code=$1, name=$2, contact_person=$3, mobile_number=$4, email=$5,
			street=$6, city=$7, state=$8, pincode=$9, updated_at=$10
		WHERE id=$11
	`, vendor.VendorCode, vendor.Name, vendor.ContactPerson, vendor.MobileNumber, vendor.Email,
		addr.Street, addr.City, addr.State, addr.Pincode, now, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	vendor.ID = id
	vendor.UpdatedAt = &now
	return nil
}

func (r *PostgresVendorRepo) DeleteVendor(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vendors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
