package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	vendorCollection = "vendors"
	itemCollection   = "items"
	userCollection   = "app_user"
)

// searchFilter builds a case-insensitive substring match over the given fields.
func searchFilter(search string, fields ...string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := regexp.QuoteMeta(search)
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": or}
}

// EnsureMongoIndexes creates the unique indexes the API relies on for conflict detection.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]string{
		vendorCollection: "vendorCode",
		itemCollection:   "ItemCode",
		userCollection:   "username",
	}
	for coll, field := range indexes {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create %s.%s index: %w", coll, field, err)
		}
	}
	return nil
}
