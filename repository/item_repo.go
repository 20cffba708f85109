package repository

import (
	"context"

	"procurement/models"
)

type ItemRepository interface {
	ListItems(ctx context.Context, filters models.ListFilters) ([]models.Item, int64, error)
	GetItem(ctx context.Context, id string) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, id string, item *models.Item) error
	DeleteItem(ctx context.Context, id string) error
}
