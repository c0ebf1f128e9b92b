package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"gogame/internal/domain/user"
	errs "gogame/internal/errors"
)

type MongoUserStorage struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewMongoUserStorage(log *zap.SugaredLogger, mongo *mongo.Database) *MongoUserStorage {
	return &MongoUserStorage{log: log, mongo: mongo}
}

func (m *MongoUserStorage) GetUserByID(ctx context.Context, id string) (user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var result user.User
	err := m.mongo.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, errs.ErrUserNotFound
	}
	if err != nil {
		m.log.Errorf("failed to load user %s: %v", id, err)
		return user.User{}, err
	}
	return result, nil
}
