package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"procurement/models"
)

type MongoVendorRepo struct {
	DB *mongo.Database
}

func NewMongoVendorRepo(db *mongo.Database) *MongoVendorRepo {
	return &MongoVendorRepo{DB: db}
}

func (r *MongoVendorRepo) ListVendors(ctx context.Context, filters models.ListFilters) ([]models.Vendor, int64, error) {
	filters = filters.Normalize()
	coll := r.DB.Collection(vendorCollection)
	filter := searchFilter(filters.Search, "name", "vendorCode", "contactPerson")

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(filters.Offset()).
		SetLimit(int64(filters.Limit))
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	vendors := []models.Vendor{}
	if err := cur.All(ctx, &vendors); err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

func (r *MongoVendorRepo) GetVendor(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	err := r.DB.Collection(vendorCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoVendorRepo) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = primitive.NewObjectID().Hex()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Collection(vendorCollection).InsertOne(ctx, vendor)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MongoVendorRepo) UpdateVendor(ctx context.Context, id string, vendor *models.Vendor) error {
	now := time.Now().UTC()
	set := bson.M{
		"vendorCode":    vendor.VendorCode,
		"name":          vendor.Name,
		"contactPerson": vendor.ContactPerson,
		"mobileNumber":  vendor.MobileNumber,
		"email":         vendor.Email,
		"address":       vendor.Address,
		"updatedAt":     now,
	}
	res, err := r.DB.Collection(vendorCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	vendor.ID = id
	vendor.UpdatedAt = &now
	return nil
}

func (r *MongoVendorRepo) DeleteVendor(ctx context.Context, id string) error {
	res, err := r.DB.Collection(vendorCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
