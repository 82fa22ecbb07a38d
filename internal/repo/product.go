package repo

import (
	"context"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByProductID(ctx context.Context, shop string, productID int64) (*domain.Product, error)
	AddStaff(ctx context.Context, shop string, id primitive.ObjectID, staff domain.ProductStaff) error
	Update(ctx context.Context, product *domain.Product) error
}
