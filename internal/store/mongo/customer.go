package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CustomerRepository struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection("customers"),
	}
}

func (r *CustomerRepository) FindAndUpdate(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()

	set := bson.M{
		"shop":        customer.Shop,
		"customer_id": customer.CustomerID,
		"updated_at":  now,
	}
	if customer.Fullname != "" {
		set["fullname"] = customer.Fullname
	}
	if customer.Phone != "" {
		set["phone"] = customer.Phone
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.Customer
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"shop": customer.Shop, "customer_id": customer.CustomerID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": now},
		},
		opts,
	).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}

	return &stored, nil
}

func (r *CustomerRepository) GetByCustomerID(ctx context.Context, shop string, customerID int64) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer domain.Customer
	err := r.collection.FindOne(ctx, bson.M{"shop": shop, "customer_id": customerID}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("customer %d: %w", customerID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}
