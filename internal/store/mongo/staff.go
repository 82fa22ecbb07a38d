package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type StaffRepository struct {
	collection *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{
		collection: db.Collection("staff"),
	}
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if staff.ID.IsZero() {
		staff.ID = primitive.NewObjectID()
	}
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, staff)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}

	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff domain.Staff
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "shop": shop}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("staff %s: %w", id.Hex(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	return &staff, nil
}

func (r *StaffRepository) List(ctx context.Context, shop string) ([]domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop})
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []domain.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}

	return staff, nil
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	staff.UpdatedAt = time.Now()

	filter := bson.M{"_id": staff.ID, "shop": staff.Shop}
	update := bson.M{
		"$set": staff,
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("staff %s: %w", staff.ID.Hex(), domain.ErrNotFound)
	}

	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, shop string, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "shop": shop})
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("staff %s: %w", id.Hex(), domain.ErrNotFound)
	}

	return nil
}
