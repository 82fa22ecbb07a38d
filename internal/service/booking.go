package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/parser"
	"github.com/jamalsoueidan/book-appointment-app/internal/queue"
	"github.com/jamalsoueidan/book-appointment-app/internal/repo"
	"go.uber.org/zap"
)

// BookingService reconciles commerce order events into the booking ledger.
type BookingService struct {
	bookingRepo  repo.BookingRepository
	customerRepo repo.CustomerRepository
	broker       queue.Broker
	logger       *zap.SugaredLogger
}

func NewBookingService(
	bookingRepo repo.BookingRepository,
	customerRepo repo.CustomerRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		broker:       broker,
		logger:       logger,
	}
}

// Create handles an order-created event: reconcile and fire the
// confirmation/reminder notifications.
func (s *BookingService) Create(ctx context.Context, shop string, order domain.Order) error {
	return s.modify(ctx, shop, order, true)
}

// Update handles an order-updated event: reconcile without notifications.
func (s *BookingService) Update(ctx context.Context, shop string, order domain.Order) error {
	return s.modify(ctx, shop, order, false)
}

// Cancel forces every booking of the order to cancelled, regardless of
// per-line-item state. Idempotent.
func (s *BookingService) Cancel(ctx context.Context, shop string, orderID int64) error {
	if err := s.bookingRepo.CancelByOrder(ctx, shop, orderID); err != nil {
		return fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}

	s.logger.Infow("order bookings cancelled", "shop", shop, "order_id", orderID)

	return nil
}

func (s *BookingService) modify(ctx context.Context, shop string, order domain.Order, sendBooking bool) error {
	bookings := s.deriveBookings(shop, order)

	customer, err := s.customerRepo.FindAndUpdate(ctx, &domain.Customer{
		Shop:       shop,
		CustomerID: order.Customer.ID,
		Fullname:   strings.TrimSpace(order.Customer.FirstName + " " + order.Customer.LastName),
		Phone:      order.Customer.Phone,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve customer for order %d: %w", order.ID, err)
	}

	if sendBooking {
		// best effort fan-out through the queue; a broker failure must
		// never fail the reconciliation itself
		s.enqueueNotifications(ctx, shop, customer, order, bookings)
	}

	// every derived line item refunded means the whole order is treated
	// as cancelled, even bookings not referenced by the refunded items
	cancelled := true
	for _, b := range bookings {
		if b.FulfillmentStatus != domain.FulfillmentRefunded {
			cancelled = false
			break
		}
	}
	if cancelled {
		return s.Cancel(ctx, shop, order.ID)
	}

	if err := s.bookingRepo.BulkUpsert(ctx, bookings); err != nil {
		return fmt.Errorf("failed to reconcile order %d: %w", order.ID, err)
	}

	s.logger.Infow("order reconciled", "shop", shop, "order_id", order.ID, "bookings", len(bookings))

	return nil
}

// deriveBookings turns the order's qualifying line items into booking
// candidates. Items without booking data are skipped silently; items with
// malformed data are skipped with a warning, never aborting the batch.
func (s *BookingService) deriveBookings(shop string, order domain.Order) []domain.Booking {
	var bookings []domain.Booking
	for _, item := range order.LineItems {
		booking, err := parser.BookingCandidate(shop, order, item)
		if errors.Is(err, parser.ErrNoData) {
			continue
		}
		if err != nil {
			s.logger.Warnw("skipping line item", "shop", shop, "order_id", order.ID, "line_item_id", item.ID, "error", err)
			continue
		}
		bookings = append(bookings, *booking)
	}

	for i := range bookings {
		bookings[i].LineItemTotal = len(bookings)
	}

	return bookings
}

func (s *BookingService) enqueueNotifications(ctx context.Context, shop string, customer *domain.Customer, order domain.Order, bookings []domain.Booking) {
	if len(bookings) == 0 {
		return
	}

	events := []domain.NotificationEvent{
		{
			Kind:         domain.NotificationKindConfirmation,
			Shop:         shop,
			OrderID:      order.ID,
			CustomerID:   customer.CustomerID,
			BookingTotal: len(bookings),
		},
	}

	for i := range bookings {
		events = append(events,
			domain.NotificationEvent{
				Kind:       domain.NotificationKindReminderCustomer,
				Shop:       shop,
				OrderID:    order.ID,
				CustomerID: customer.CustomerID,
				Booking:    &bookings[i],
			},
			domain.NotificationEvent{
				Kind:       domain.NotificationKindReminderStaff,
				Shop:       shop,
				OrderID:    order.ID,
				CustomerID: customer.CustomerID,
				Booking:    &bookings[i],
			},
		)
	}

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Errorw("failed to marshal notification event", "kind", event.Kind, "order_id", event.OrderID, "error", err)
			continue
		}

		if err := s.broker.Publish(ctx, queue.QueueNotifications, payload); err != nil {
			s.logger.Errorw("failed to publish notification event", "kind", event.Kind, "order_id", event.OrderID, "error", err)
		}
	}
}
