// internal/common/database/mongodb.go
package database

import (
	"context"
	"fmt"
	"time"

	"candidate-service/internal/common/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoClient wraps the MongoDB connection.
type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo creates a new MongoDB client.
func NewMongo(cfg config.MongoDBConfig) (*MongoClient, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Millisecond)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &MongoClient{
		Client: client,
		DB:     client.Database(cfg.Database),
	}, nil
}

// Ping tests the database connection.
func (c *MongoClient) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle to the named collection.
func (c *MongoClient) Collection(name string) *mongo.Collection {
	return c.DB.Collection(name)
}

// Close disconnects the client.
func (c *MongoClient) Close(ctx context.Context) error {
	if c.Client != nil {
		return c.Client.Disconnect(ctx)
	}
	return nil
}
