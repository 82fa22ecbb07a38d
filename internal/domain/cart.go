package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartHold is a transient staff+time reservation held while a customer is
// checking out, not yet backed by a paid order. Holds expire on their own
// and are only ever consumed by the availability filter.
type CartHold struct {
	ID    string             `json:"id"`
	Shop  string             `json:"shop"`
	Staff primitive.ObjectID `json:"staff"`
	Start time.Time          `json:"start"`
	End   time.Time          `json:"end"`
}
