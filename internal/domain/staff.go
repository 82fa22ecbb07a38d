package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Staff struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Shop      string             `bson:"shop" json:"shop"`
	Fullname  string             `bson:"fullname" json:"fullname"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// StaffSummary is the denormalized staff projection joined into availability
// lookups. Contact and internal fields are deliberately excluded.
type StaffSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Fullname string             `bson:"fullname" json:"fullname"`
}
