package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule is a single availability window for one staff member. Windows
// created as a repeating group share a group_id. available=false marks
// explicit unavailability. Windows are not overlap-checked against each
// other; that is the caller's responsibility.
type Schedule struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Shop      string             `bson:"shop" json:"shop"`
	Staff     primitive.ObjectID `bson:"staff" json:"staff"`
	GroupID   string             `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Start     time.Time          `bson:"start" json:"start"`
	End       time.Time          `bson:"end" json:"end"`
	Available bool               `bson:"available" json:"available"`
	Tag       string             `bson:"tag" json:"tag"`
}

// ScheduleWindow is the aggregation result of an availability lookup: a
// window joined with the summary of its (active) staff member.
type ScheduleWindow struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Start time.Time          `bson:"start" json:"start"`
	End   time.Time          `bson:"end" json:"end"`
	Tag   string             `bson:"tag" json:"tag"`
	Staff StaffSummary       `bson:"staff" json:"staff"`
}

// SchedulePatch carries the fields an administrative edit may change on a
// window or a whole group. Nil fields are left untouched.
type SchedulePatch struct {
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	Available *bool      `json:"available,omitempty"`
	Tag       *string    `json:"tag,omitempty"`
}
