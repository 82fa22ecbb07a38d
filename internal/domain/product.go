package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a bookable service. Duration and buffertime (minutes) drive
// slot sizing; staff are associated through a tag (service category).
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Shop         string             `bson:"shop" json:"shop"`
	ProductID    int64              `bson:"product_id" json:"product_id"`
	Title        string             `bson:"title" json:"title"`
	CollectionID string             `bson:"collection_id" json:"collection_id"`
	Duration     int                `bson:"duration" json:"duration"`
	Buffertime   int                `bson:"buffertime" json:"buffertime"`
	Staff        []ProductStaff     `bson:"staff" json:"staff"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type ProductStaff struct {
	Staff primitive.ObjectID `bson:"staff" json:"staff"`
	Tag   string             `bson:"tag" json:"tag"`
}

// TagFor returns the schedule tag the given staff member is assigned to
// the product under.
func (p Product) TagFor(staff primitive.ObjectID) (string, bool) {
	for _, ps := range p.Staff {
		if ps.Staff == staff {
			return ps.Tag, true
		}
	}
	return "", false
}

// Tags returns the distinct schedule tags of the staff assigned to the
// product, in assignment order.
func (p Product) Tags() []string {
	var tags []string
	for _, ps := range p.Staff {
		found := false
		for _, t := range tags {
			if t == ps.Tag {
				found = true
				break
			}
		}
		if !found {
			tags = append(tags, ps.Tag)
		}
	}
	return tags
}
