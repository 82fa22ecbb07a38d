package repo

import (
	"context"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

type CustomerRepository interface {
	// FindAndUpdate upserts the customer by its external id and returns
	// the stored record.
	FindAndUpdate(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByCustomerID(ctx context.Context, shop string, customerID int64) (*domain.Customer, error)
}
