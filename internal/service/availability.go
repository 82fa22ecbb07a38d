package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/availability"
	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AvailabilityService computes client-facing availability: schedule windows
// through the slot generator, minus everything already consumed by bookings
// and cart holds.
type AvailabilityService struct {
	productRepo  repo.ProductRepository
	scheduleRepo repo.ScheduleRepository
	bookingRepo  repo.BookingRepository
	cartRepo     repo.CartRepository
	logger       *zap.SugaredLogger
}

func NewAvailabilityService(
	productRepo repo.ProductRepository,
	scheduleRepo repo.ScheduleRepository,
	bookingRepo repo.BookingRepository,
	cartRepo repo.CartRepository,
	logger *zap.SugaredLogger,
) *AvailabilityService {
	return &AvailabilityService{
		productRepo:  productRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		cartRepo:     cartRepo,
		logger:       logger,
	}
}

type AvailabilityQuery struct {
	Shop      string
	ProductID int64
	Staff     *primitive.ObjectID
	Start     time.Time
	End       time.Time
}

func (s *AvailabilityService) Get(ctx context.Context, q AvailabilityQuery) ([]availability.Day, error) {
	product, err := s.productRepo.GetByProductID(ctx, q.Shop, q.ProductID)
	if err != nil {
		return nil, err
	}

	windows, err := s.windows(ctx, q, product)
	if err != nil {
		return nil, err
	}

	var days []availability.Day
	staffSeen := map[primitive.ObjectID]bool{}
	var staffIDs []primitive.ObjectID
	for _, window := range windows {
		days = availability.Reduce(days, window, *product)
		if !staffSeen[window.Staff.ID] {
			staffSeen[window.Staff.ID] = true
			staffIDs = append(staffIDs, window.Staff.ID)
		}
	}

	if len(staffIDs) == 0 {
		return days, nil
	}

	bookings, err := s.bookingRepo.GetBetween(ctx, q.Shop, staffIDs, q.Start, q.End)
	if err != nil {
		return nil, err
	}
	for _, booking := range bookings {
		days = availability.Filter(days, availability.Occupied{
			Staff: booking.Staff,
			Start: booking.Start,
			End:   booking.End,
		})
	}

	holds, err := s.cartRepo.GetByStaff(ctx, q.Shop, staffIDs, q.Start, q.End)
	if err != nil {
		return nil, err
	}
	for _, hold := range holds {
		days = availability.Filter(days, availability.Occupied{
			Staff: hold.Staff,
			Start: hold.Start,
			End:   hold.End,
		})
	}

	return days, nil
}

func (s *AvailabilityService) windows(ctx context.Context, q AvailabilityQuery, product *domain.Product) ([]domain.ScheduleWindow, error) {
	if q.Staff != nil {
		tag, ok := product.TagFor(*q.Staff)
		if !ok {
			return nil, fmt.Errorf("staff %s is not assigned to product %d: %w", q.Staff.Hex(), q.ProductID, domain.ErrNotFound)
		}

		return s.scheduleRepo.GetByStaffAndTag(ctx, repo.AvailabilityByStaffAndTag{
			Shop:  q.Shop,
			Tag:   tag,
			Staff: *q.Staff,
			Start: q.Start,
			End:   q.End,
		})
	}

	return s.scheduleRepo.GetByTag(ctx, repo.AvailabilityByTag{
		Shop:  q.Shop,
		Tags:  product.Tags(),
		Start: q.Start,
		End:   q.End,
	})
}
