package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w: %w", domain.ErrPersistence, err)
	}

	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var notification domain.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "shop": shop}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("notification %s: %w", id.Hex(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &notification, nil
}

func (r *NotificationRepository) GetConversation(ctx context.Context, shop string, orderID, lineItemID int64) ([]domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// order-level messages (line_item_id = -1) belong to every
	// conversation of the order
	filter := bson.M{
		"shop":         shop,
		"order_id":     orderID,
		"line_item_id": bson.M{"$in": []int64{lineItemID, domain.OrderLevelLineItem}},
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []domain.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, nil
}

func (r *NotificationRepository) CountRecent(ctx context.Context, shop string, orderID, lineItemID int64, receiver string, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"shop":         shop,
		"order_id":     orderID,
		"line_item_id": lineItemID,
		"receiver":     receiver,
		"updated_at":   bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return count, nil
}

func (r *NotificationRepository) Touch(ctx context.Context, shop string, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "shop": shop},
		bson.M{"$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to touch notification: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("notification %s: %w", id.Hex(), domain.ErrNotFound)
	}

	return nil
}

func (r *NotificationRepository) Cancel(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// conditional update: only a record that is not yet cancelled
	// matches, so the caller knows whether this call did the transition
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notification domain.Notification
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{
			"_id":    id,
			"shop":   shop,
			"status": bson.M{"$ne": domain.NotificationStatusCancelled},
		},
		bson.M{"$set": bson.M{
			"status":     domain.NotificationStatusCancelled,
			"updated_at": time.Now(),
		}},
		opts,
	).Decode(&notification)
	if err == nil {
		return &notification, true, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, fmt.Errorf("failed to cancel notification: %w", err)
	}

	// already cancelled, or missing entirely
	existing, err := r.GetByID(ctx, shop, id)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}
