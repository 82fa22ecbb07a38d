package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduleRepository struct {
	collection *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{
		collection: db.Collection("schedules"),
	}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if schedule.ID.IsZero() {
		schedule.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	return nil
}

func (r *ScheduleRepository) InsertMany(ctx context.Context, schedules []domain.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(schedules))
	for i := range schedules {
		if schedules[i].ID.IsZero() {
			schedules[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, schedules[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert schedules: %w", err)
	}

	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var schedule domain.Schedule
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "shop": shop}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("schedule %s: %w", id.Hex(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return &schedule, nil
}

func patchToSet(patch domain.SchedulePatch) bson.M {
	set := bson.M{}
	if patch.Start != nil {
		set["start"] = *patch.Start
	}
	if patch.End != nil {
		set["end"] = *patch.End
	}
	if patch.Available != nil {
		set["available"] = *patch.Available
	}
	if patch.Tag != nil {
		set["tag"] = *patch.Tag
	}
	return set
}

func (r *ScheduleRepository) UpdateByID(ctx context.Context, shop string, id primitive.ObjectID, patch domain.SchedulePatch) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var schedule domain.Schedule
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "shop": shop},
		bson.M{"$set": patchToSet(patch)},
		opts,
	).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("schedule %s: %w", id.Hex(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	return &schedule, nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, shop string, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "shop": shop})
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("schedule %s: %w", id.Hex(), domain.ErrNotFound)
	}

	return nil
}

func (r *ScheduleRepository) UpdateGroup(ctx context.Context, shop, groupID string, patch domain.SchedulePatch) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{"shop": shop, "group_id": groupID},
		bson.M{"$set": patchToSet(patch)},
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule group: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("schedule group %s: %w", groupID, domain.ErrNotFound)
	}

	return nil
}

func (r *ScheduleRepository) DeleteGroup(ctx context.Context, shop, groupID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop, "group_id": groupID})
	if err != nil {
		return fmt.Errorf("failed to delete schedule group: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("schedule group %s: %w", groupID, domain.ErrNotFound)
	}

	return nil
}

func (r *ScheduleRepository) DeleteByStaff(ctx context.Context, shop string, staff primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop, "staff": staff}); err != nil {
		return fmt.Errorf("failed to delete staff schedules: %w", err)
	}

	return nil
}

// staffLookup joins the staff document onto each window, keeps only active
// staff and projects away contact and internal fields.
func staffLookup() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "staff",
			"localField":   "staff",
			"foreignField": "_id",
			"as":           "staff",
		}},
		{"$unwind": bson.M{"path": "$staff"}},
		{"$match": bson.M{"staff.active": true}},
		{"$project": bson.M{
			"staff.email":      0,
			"staff.active":     0,
			"staff.shop":       0,
			"staff.phone":      0,
			"staff.created_at": 0,
			"staff.updated_at": 0,
		}},
	}
}

func (r *ScheduleRepository) GetByStaffAndTag(ctx context.Context, q repo.AvailabilityByStaffAndTag) ([]domain.ScheduleWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := append([]bson.M{
		{"$match": bson.M{
			"shop":      q.Shop,
			"tag":       q.Tag,
			"staff":     q.Staff,
			"available": true,
			"start":     bson.M{"$gte": q.Start},
			"end":       bson.M{"$lt": q.End},
		}},
	}, staffLookup()...)

	return r.aggregateWindows(ctx, pipeline)
}

func (r *ScheduleRepository) GetByTag(ctx context.Context, q repo.AvailabilityByTag) ([]domain.ScheduleWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := append([]bson.M{
		{"$match": bson.M{
			"shop":      q.Shop,
			"tag":       bson.M{"$in": q.Tags},
			"available": true,
			"start":     bson.M{"$gte": q.Start},
			"end":       bson.M{"$lt": q.End},
		}},
	}, staffLookup()...)

	return r.aggregateWindows(ctx, pipeline)
}

func (r *ScheduleRepository) aggregateWindows(ctx context.Context, pipeline []bson.M) ([]domain.ScheduleWindow, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []domain.ScheduleWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode schedule windows: %w", err)
	}

	return windows, nil
}
