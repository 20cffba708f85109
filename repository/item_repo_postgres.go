package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"procurement/models"
)

const itemColumns = `id, item_code, item_name, sac_hsn_code, item_type, serial_number,
	igst_rate, cgst_rate, sgst_rate, utgst_rate`

type PostgresItemRepo struct {
	DB *sql.DB
}

func NewPostgresItemRepo(db *sql.DB) *PostgresItemRepo {
	return &PostgresItemRepo{DB: db}
}

func scanItem(row rowScanner) (*models.Item, error) {
	var it models.Item
	err := row.Scan(&it.ID, &it.ItemCode, &it.ItemName, &it.SAC_HSN_Code, &it.ItemType, &it.SerialNumber,
		&it.IGST_Rate, &it.CGST_Rate, &it.SGST_Rate, &it.UTGST_Rate)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *PostgresItemRepo) ListItems(ctx context.Context, filters models.ListFilters) ([]models.Item, int64, error) {
	filters = filters.Normalize()
	pattern := likePattern(filters.Search)

	var total int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM items
		WHERE item_code ILIKE $1 ESCAPE '\' OR item_name ILIKE $1 ESCAPE '\' OR sac_hsn_code ILIKE $1 ESCAPE '\'
	`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE item_code ILIKE $1 ESCAPE '\' OR item_name ILIKE $1 ESCAPE '\' OR sac_hsn_code ILIKE $1 ESCAPE '\'
		ORDER BY item_code ASC
		LIMIT $2 OFFSET $3
	`, pattern, filters.Limit, filters.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *it)
	}
	return items, total, rows.Err()
}

func (r *PostgresItemRepo) GetItem(ctx context.Context, id string) (*models.Item, error) {
	it, err := scanItem(r.DB.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *PostgresItemRepo) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, item.ID, item.ItemCode, item.ItemName, item.SAC_HSN_Code, item.ItemType, item.SerialNumber,
		item.IGST_Rate, item.CGST_Rate, item.SGST_Rate, item.UTGST_Rate)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresItemRepo) UpdateItem(ctx context.Context, id string, item *models.Item) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE items
		SET item_code=$1, item_name=$2, sac_hsn_code=$3, item_type=$4, serial_number=$5,
			igst_rate=$6, cgst_rate=$7, sgst_rate=$8, utgst_rate=$9
		WHERE id=$10
	`, item.ItemCode, item.ItemName, item.SAC_HSN_Code, item.ItemType, item.SerialNumber,
		item.IGST_Rate, item.CGST_Rate, item.SGST_Rate, item.UTGST_Rate, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	item.ID = id
	return nil
}

func (r *PostgresItemRepo) DeleteItem(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
