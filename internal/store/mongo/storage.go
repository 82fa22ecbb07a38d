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

func (s *Storage) Client() *mongo.Client {
	return s.client
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// create indexes for schedules collection
	scheduleIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "shop", Value: 1}, {Key: "tag", Value: 1}, {Key: "start", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "staff", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "group_id", Value: 1}},
		},
	}
	if _, err := s.database.Collection("schedules").Indexes().CreateMany(ctx, scheduleIndexes); err != nil {
		return fmt.Errorf("failed to create schedules indexes: %w", err)
	}

	// the upsert key of the booking ledger
	bookingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "order_id", Value: 1},
				{Key: "line_item_id", Value: 1},
				{Key: "product_id", Value: 1},
				{Key: "is_edit", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "shop", Value: 1}, {Key: "staff", Value: 1}, {Key: "start", Value: 1}},
		},
	}
	if _, err := s.database.Collection("bookings").Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create bookings indexes: %w", err)
	}

	// the throttle gate lookup
	notificationIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "shop", Value: 1},
				{Key: "order_id", Value: 1},
				{Key: "line_item_id", Value: 1},
				{Key: "receiver", Value: 1},
				{Key: "updated_at", Value: 1},
			},
		},
	}
	if _, err := s.database.Collection("notifications").Indexes().CreateMany(ctx, notificationIndexes); err != nil {
		return fmt.Errorf("failed to create notifications indexes: %w", err)
	}

	customerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shop", Value: 1}, {Key: "customer_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection("customers").Indexes().CreateMany(ctx, customerIndexes); err != nil {
		return fmt.Errorf("failed to create customers indexes: %w", err)
	}

	return nil
}
