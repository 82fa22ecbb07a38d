package repo

import (
	"context"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, error)

	// GetConversation lists the messages of one conversation, including
	// order-level messages, oldest first.
	GetConversation(ctx context.Context, shop string, orderID, lineItemID int64) ([]domain.Notification, error)

	// CountRecent counts notifications for the exact conversation key
	// updated at or after since. The throttle gate.
	CountRecent(ctx context.Context, shop string, orderID, lineItemID int64, receiver string, since time.Time) (int64, error)

	// Touch bumps updated_at, restarting the cooldown for the key.
	Touch(ctx context.Context, shop string, id primitive.ObjectID) error

	// Cancel atomically flips status to cancelled unless it already is.
	// It returns the record and whether the transition happened in this
	// call; a missing record yields domain.ErrNotFound.
	Cancel(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, bool, error)
}
