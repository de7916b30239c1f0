package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	UsersCollection     = "users"
	QuestionsCollection = "questions"
)

// ConnectMongoDB connects and pings, retrying with exponential backoff for up
// to maxWait before giving up.
func ConnectMongoDB(uri string, maxWait time.Duration, logger *zap.Logger) (*mongo.Client, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 15 * time.Second
	bo.MaxElapsedTime = maxWait

	var client *mongo.Client
	err := backoff.RetryNotify(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return err
		}
		client = c
		return nil
	}, bo, func(err error, next time.Duration) {
		logger.Warn("retrying MongoDB connection", zap.Error(err), zap.Duration("next", next))
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	logger.Info("connected to MongoDB")
	return client, nil
}

// EnsureIndexes creates the indexes backing the equality filters.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = db.Collection(QuestionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "answered", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "asker_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("questions indexes: %w", err)
	}
	return nil
}
