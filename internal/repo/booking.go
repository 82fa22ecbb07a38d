package repo

import (
	"context"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// BulkUpsert replaces or inserts one record per booking, keyed by
	// (order_id, line_item_id, product_id, is_edit=false). Matching
	// records are fully replaced by the new field set, not merged.
	BulkUpsert(ctx context.Context, bookings []domain.Booking) error

	// CancelByOrder forces every booking of the order to cancelled.
	CancelByOrder(ctx context.Context, shop string, orderID int64) error

	FindOne(ctx context.Context, shop string, orderID, lineItemID int64) (*domain.Booking, error)

	// GetBetween returns the non-cancelled, non-refunded bookings of the
	// given staff overlapping the range, for availability filtering.
	GetBetween(ctx context.Context, shop string, staff []primitive.ObjectID, start, end time.Time) ([]domain.Booking, error)
}
