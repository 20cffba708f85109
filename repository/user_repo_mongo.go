package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"procurement/models"
)

type MongoUserRepo struct {
	DB *mongo.Database
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.AppUser) error {
	if err := hashPassword(user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.Collection(userCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MongoUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := r.DB.Collection(userCollection).FindOne(ctx, bson.M{"username": username}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) UpdateUsernameByVendor(ctx context.Context, vendorID, username string) error {
	_, err := r.DB.Collection(userCollection).UpdateMany(ctx,
		bson.M{"vendorId": vendorID},
		bson.M{"$set": bson.M{"username": username}},
	)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *MongoUserRepo) DeleteUsersByVendor(ctx context.Context, vendorID string) error {
	_, err := r.DB.Collection(userCollection).DeleteMany(ctx, bson.M{"vendorId": vendorID})
	return err
}
