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

type BookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		collection: db.Collection("bookings"),
	}
}

func (r *BookingRepository) BulkUpsert(ctx context.Context, bookings []domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if len(bookings) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(bookings))
	for _, b := range bookings {
		b.ID = primitive.NilObjectID
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{
				"order_id":     b.OrderID,
				"line_item_id": b.LineItemID,
				"product_id":   b.ProductID,
				"is_edit":      false,
			}).
			SetUpdate(bson.M{"$set": b}).
			SetUpsert(true))
	}

	// unordered: per-item upserts are independent, but a failure must
	// surface as a batch-level error, never as silent partial loss
	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.collection.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("failed to upsert bookings: %w: %w", domain.ErrPersistence, err)
	}

	return nil
}

func (r *BookingRepository) CancelByOrder(ctx context.Context, shop string, orderID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"shop": shop, "order_id": orderID},
		bson.M{"$set": bson.M{"fulfillment_status": domain.FulfillmentCancelled}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel bookings: %w: %w", domain.ErrPersistence, err)
	}

	return nil
}

func (r *BookingRepository) FindOne(ctx context.Context, shop string, orderID, lineItemID int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking domain.Booking
	err := r.collection.FindOne(ctx, bson.M{
		"shop":         shop,
		"order_id":     orderID,
		"line_item_id": lineItemID,
	}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking order %d line item %d: %w", orderID, lineItemID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *BookingRepository) GetBetween(ctx context.Context, shop string, staff []primitive.ObjectID, start, end time.Time) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"shop":  shop,
		"staff": bson.M{"$in": staff},
		"fulfillment_status": bson.M{
			"$nin": []domain.FulfillmentStatus{domain.FulfillmentCancelled, domain.FulfillmentRefunded},
		},
		"start": bson.M{"$lt": end},
		"end":   bson.M{"$gt": start},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []domain.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}
