package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/queue"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// bookingKey is the ledger upsert key for non-edit records.
type bookingKey struct {
	orderID    int64
	lineItemID int64
	productID  int64
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[bookingKey]domain.Booking
	err      error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[bookingKey]domain.Booking)}
}

func (f *fakeBookingRepo) BulkUpsert(ctx context.Context, bookings []domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, b := range bookings {
		f.bookings[bookingKey{b.OrderID, b.LineItemID, b.ProductID}] = b
	}
	return nil
}

func (f *fakeBookingRepo) CancelByOrder(ctx context.Context, shop string, orderID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for key, b := range f.bookings {
		if b.Shop == shop && b.OrderID == orderID {
			b.FulfillmentStatus = domain.FulfillmentCancelled
			f.bookings[key] = b
		}
	}
	return nil
}

func (f *fakeBookingRepo) FindOne(ctx context.Context, shop string, orderID, lineItemID int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Shop == shop && b.OrderID == orderID && b.LineItemID == lineItemID {
			found := b
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) GetBetween(ctx context.Context, shop string, staff []primitive.ObjectID, start, end time.Time) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.Shop != shop {
			continue
		}
		if b.FulfillmentStatus == domain.FulfillmentCancelled || b.FulfillmentStatus == domain.FulfillmentRefunded {
			continue
		}
		for _, id := range staff {
			if b.Staff == id && b.Start.Before(end) && b.End.After(start) {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) all() []domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[int64]domain.Customer
	err       error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[int64]domain.Customer)}
}

func (f *fakeCustomerRepo) FindAndUpdate(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	stored, ok := f.customers[customer.CustomerID]
	if !ok {
		stored = *customer
		stored.ID = primitive.NewObjectID()
	} else {
		stored.Fullname = customer.Fullname
		stored.Phone = customer.Phone
	}
	f.customers[customer.CustomerID] = stored
	return &stored, nil
}

func (f *fakeCustomerRepo) GetByCustomerID(ctx context.Context, shop string, customerID int64) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.customers[customerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &stored, nil
}

type fakeStaffRepo struct {
	mu    sync.Mutex
	staff map[primitive.ObjectID]domain.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[primitive.ObjectID]domain.Staff)}
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *domain.Staff) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if staff.ID.IsZero() {
		staff.ID = primitive.NewObjectID()
	}
	f.staff[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Staff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.staff[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &stored, nil
}

func (f *fakeStaffRepo) List(ctx context.Context, shop string) ([]domain.Staff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Staff
	for _, s := range f.staff {
		if s.Shop == shop {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, staff *domain.Staff) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.staff[staff.ID]; !ok {
		return domain.ErrNotFound
	}
	f.staff[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, shop string, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.staff[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.staff, id)
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.UpdatedAt.IsZero() {
		notification.UpdatedAt = time.Now()
	}
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.Shop == shop && n.ID == id {
			found := n
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNotificationRepo) GetConversation(ctx context.Context, shop string, orderID, lineItemID int64) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.Shop != shop || n.OrderID != orderID {
			continue
		}
		if n.LineItem == lineItemID || n.LineItem == domain.OrderLevelLineItem {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountRecent(ctx context.Context, shop string, orderID, lineItemID int64, receiver string, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.Shop == shop && n.OrderID == orderID && n.LineItem == lineItemID && n.Receiver == receiver && !n.UpdatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Touch(ctx context.Context, shop string, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.Shop == shop && n.ID == id {
			f.notifications[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeNotificationRepo) Cancel(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.Shop != shop || n.ID != id {
			continue
		}
		if n.Status == domain.NotificationStatusCancelled {
			found := n
			return &found, false, nil
		}
		f.notifications[i].Status = domain.NotificationStatusCancelled
		f.notifications[i].UpdatedAt = time.Now()
		found := f.notifications[i]
		return &found, true, nil
	}
	return nil, false, domain.ErrNotFound
}

type fakeBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
	err       error
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][][]byte)}
}

func (f *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published[queueName] = append(f.published[queueName], message)
	return nil
}

func (f *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) Close() error { return nil }
