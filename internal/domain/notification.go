package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationStatusQueued    = "queued"
	NotificationStatusSent      = "sent"
	NotificationStatusCancelled = "cancelled"
)

// OrderLevelLineItem marks a notification that belongs to the whole order
// rather than one line item (e.g. the booking confirmation).
const OrderLevelLineItem int64 = -1

// Notification is one outbound message attempt. A conversation
// (order + line item + receiver) accumulates records over time; the
// dispatcher enforces a 15 minute spacing per conversation key based on
// updated_at. Receiver is a normalized phone number without leading +.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Shop      string             `bson:"shop" json:"shop"`
	OrderID   int64              `bson:"order_id" json:"order_id"`
	LineItem  int64              `bson:"line_item_id" json:"line_item_id"`
	Receiver  string             `bson:"receiver" json:"receiver"`
	Message   string             `bson:"message" json:"message"`
	Status    string             `bson:"status" json:"status"`
	BatchID   string             `bson:"batch_id,omitempty" json:"batch_id,omitempty"`
	Scheduled *time.Time         `bson:"scheduled,omitempty" json:"scheduled,omitempty"`
	IsStaff   bool               `bson:"is_staff" json:"is_staff"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
