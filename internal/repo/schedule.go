package repo

import (
	"context"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AvailabilityByStaffAndTag struct {
	Shop  string
	Tag   string
	Staff primitive.ObjectID
	Start time.Time
	End   time.Time
}

type AvailabilityByTag struct {
	Shop  string
	Tags  []string
	Start time.Time
	End   time.Time
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	InsertMany(ctx context.Context, schedules []domain.Schedule) error
	GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Schedule, error)
	UpdateByID(ctx context.Context, shop string, id primitive.ObjectID, patch domain.SchedulePatch) (*domain.Schedule, error)
	Delete(ctx context.Context, shop string, id primitive.ObjectID) error
	UpdateGroup(ctx context.Context, shop, groupID string, patch domain.SchedulePatch) error
	DeleteGroup(ctx context.Context, shop, groupID string) error
	DeleteByStaff(ctx context.Context, shop string, staff primitive.ObjectID) error

	// Availability aggregations: only available=true windows of active
	// staff, joined with the staff summary projection.
	GetByStaffAndTag(ctx context.Context, q AvailabilityByStaffAndTag) ([]domain.ScheduleWindow, error)
	GetByTag(ctx context.Context, q AvailabilityByTag) ([]domain.ScheduleWindow, error)
}
