package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FulfillmentStatus string

const (
	FulfillmentPending   FulfillmentStatus = "pending"
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
	FulfillmentRefunded  FulfillmentStatus = "refunded"
	FulfillmentCancelled FulfillmentStatus = "cancelled"
)

// Booking is the ledger entity: a staff time window consumed by one order
// line item. Logically keyed by (shop, order_id, line_item_id, product_id);
// at most one non-edit booking exists per key, enforced by the upsert filter.
// Bookings are never deleted, cancellation is a status transition.
type Booking struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Shop              string             `bson:"shop" json:"shop"`
	OrderID           int64              `bson:"order_id" json:"order_id"`
	LineItemID        int64              `bson:"line_item_id" json:"line_item_id"`
	LineItemTotal     int                `bson:"line_item_total" json:"line_item_total"`
	ProductID         int64              `bson:"product_id" json:"product_id"`
	Staff             primitive.ObjectID `bson:"staff" json:"staff"`
	Start             time.Time          `bson:"start" json:"start"`
	End               time.Time          `bson:"end" json:"end"`
	CustomerID        int64              `bson:"customer_id" json:"customer_id"`
	FulfillmentStatus FulfillmentStatus  `bson:"fulfillment_status" json:"fulfillment_status"`
	AnyAvailable      bool               `bson:"any_available" json:"any_available"`
	IsEdit            bool               `bson:"is_edit" json:"is_edit"`
	Title             string             `bson:"title" json:"title"`
	TimeZone          string             `bson:"time_zone" json:"time_zone"`
}
