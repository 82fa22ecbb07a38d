package repo

import (
	"context"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartRepository interface {
	// Create stores a hold that expires on its own after ttl.
	Create(ctx context.Context, hold *domain.CartHold, ttl time.Duration) error

	// GetByStaff returns the live holds of the given staff overlapping
	// the range.
	GetByStaff(ctx context.Context, shop string, staff []primitive.ObjectID, start, end time.Time) ([]domain.CartHold, error)
}
