package repo

import (
	"context"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Staff, error)
	List(ctx context.Context, shop string) ([]domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
	Delete(ctx context.Context, shop string, id primitive.ObjectID) error
}
