package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer mirrors the commerce platform's customer, upserted by its
// external customer id whenever an order event references it.
type Customer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Shop       string             `bson:"shop" json:"shop"`
	CustomerID int64              `bson:"customer_id" json:"customer_id"`
	Fullname   string             `bson:"fullname" json:"fullname"`
	Phone      string             `bson:"phone" json:"phone"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
