package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"procurement/models"
)

type MongoItemRepo struct {
	DB *mongo.Database
}

func NewMongoItemRepo(db *mongo.Database) *MongoItemRepo {
	return &MongoItemRepo{DB: db}
}

func (r *MongoItemRepo) ListItems(ctx context.Context, filters models.ListFilters) ([]models.Item, int64, error) {
	filters = filters.Normalize()
	coll := r.DB.Collection(itemCollection)
	filter := searchFilter(filters.Search, "ItemCode", "ItemName", "SAC_HSN_Code")

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "ItemCode", Value: 1}}).
		SetSkip(filters.Offset()).
		SetLimit(int64(filters.Limit))
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := []models.Item{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoItemRepo) GetItem(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	err := r.DB.Collection(itemCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *MongoItemRepo) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.DB.Collection(itemCollection).InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// UpdateItem replaces the whole document; unset tax rates are cleared.
func (r *MongoItemRepo) UpdateItem(ctx context.Context, id string, item *models.Item) error {
	item.ID = id
	res, err := r.DB.Collection(itemCollection).ReplaceOne(ctx, bson.M{"_id": id}, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoItemRepo) DeleteItem(ctx context.Context, id string) error {
	res, err := r.DB.Collection(itemCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
