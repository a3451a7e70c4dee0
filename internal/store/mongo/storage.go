package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// create indexes for aggregate collections, all account-scoped
	aggregateIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "account_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "updated_at", Value: -1}},
		},
	}
	for _, coll := range []string{"menus", "offers"} {
		if _, err := s.database.Collection(coll).Indexes().CreateMany(ctx, aggregateIndexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}

	// create indexes for catalog_items collection
	catalogIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "account_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "category", Value: 1}},
		},
	}
	if _, err := s.database.Collection("catalog_items").Indexes().CreateMany(ctx, catalogIndexes); err != nil {
		return fmt.Errorf("failed to create catalog_items indexes: %w", err)
	}

	// create indexes for builder_audit collection
	auditIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "aggregate_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: 1}},
		},
	}
	if _, err := s.database.Collection("builder_audit").Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return fmt.Errorf("failed to create builder_audit indexes: %w", err)
	}

	return nil
}
