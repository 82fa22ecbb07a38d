package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/repo"
	"github.com/jamalsoueidan/book-appointment-app/internal/sms"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// cooldown is the minimum spacing between messages for one conversation
// key (shop, order, line item, receiver).
const cooldown = 15 * time.Minute

// NotificationService sends, schedules and cancels outbound messages and
// enforces the conversation cooldown.
type NotificationService struct {
	notificationRepo repo.NotificationRepository
	bookingRepo      repo.BookingRepository
	customerRepo     repo.CustomerRepository
	staffRepo        repo.StaffRepository
	sms              *sms.Client
	displayZone      *time.Location
	logger           *zap.SugaredLogger
	now              func() time.Time
}

func NewNotificationService(
	notificationRepo repo.NotificationRepository,
	bookingRepo repo.BookingRepository,
	customerRepo repo.CustomerRepository,
	staffRepo repo.StaffRepository,
	smsClient *sms.Client,
	displayZone *time.Location,
	logger *zap.SugaredLogger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		bookingRepo:      bookingRepo,
		customerRepo:     customerRepo,
		staffRepo:        staffRepo,
		sms:              smsClient,
		displayZone:      displayZone,
		logger:           logger,
		now:              time.Now,
	}
}

// normalizeReceiver strips the leading + so the same phone number always
// maps to the same conversation key.
func normalizeReceiver(phone string) string {
	return strings.TrimPrefix(phone, "+")
}

// canSend is the throttle gate: it fails with domain.ErrThrottled when any
// notification for the exact conversation key was updated within the
// trailing 15 minutes. Check-then-act: two concurrent sends for one key can
// both pass, accepted as a soft guard.
func (s *NotificationService) canSend(ctx context.Context, shop string, orderID, lineItemID int64, receiver string) error {
	count, err := s.notificationRepo.CountRecent(ctx, shop, orderID, lineItemID, receiver, s.now().Add(-cooldown))
	if err != nil {
		return fmt.Errorf("failed to check cooldown: %w", err)
	}

	if count > 0 {
		return domain.ErrThrottled
	}

	return nil
}

type sendInput struct {
	Shop       string
	OrderID    int64
	LineItemID int64
	Receiver   string
	Message    string
	Scheduled  *time.Time
	IsStaff    bool
}

// send calls the provider first and persists only what was actually
// handed over; a provider failure propagates and leaves no record behind.
func (s *NotificationService) send(ctx context.Context, in sendInput) (*domain.Notification, error) {
	resp, err := s.sms.Send(ctx, in.Receiver, in.Message, in.Scheduled)
	if err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		Shop:      in.Shop,
		OrderID:   in.OrderID,
		LineItem:  in.LineItemID,
		Receiver:  in.Receiver,
		Message:   in.Message,
		Status:    resp.Status,
		BatchID:   resp.Result.BatchID,
		Scheduled: in.Scheduled,
		IsStaff:   in.IsStaff,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// Get lists one conversation, including order-level messages, oldest first.
func (s *NotificationService) Get(ctx context.Context, shop string, orderID, lineItemID int64) ([]domain.Notification, error) {
	return s.notificationRepo.GetConversation(ctx, shop, orderID, lineItemID)
}

type SendCustomInput struct {
	Shop       string
	OrderID    int64
	LineItemID int64
	Message    string
	To         string // "customer" or "staff"
}

// SendCustom sends a free-form message to the customer or the staff member
// of an existing booking.
func (s *NotificationService) SendCustom(ctx context.Context, in SendCustomInput) (*domain.Notification, error) {
	booking, err := s.bookingRepo.FindOne(ctx, in.Shop, in.OrderID, in.LineItemID)
	if err != nil {
		return nil, err
	}

	var phone string
	isStaff := in.To == "staff"
	if isStaff {
		staff, err := s.staffRepo.GetByID(ctx, in.Shop, booking.Staff)
		if err != nil {
			return nil, err
		}
		phone = staff.Phone
	} else {
		customer, err := s.customerRepo.GetByCustomerID(ctx, in.Shop, booking.CustomerID)
		if err != nil {
			return nil, err
		}
		phone = customer.Phone
	}

	receiver := normalizeReceiver(phone)
	if err := s.canSend(ctx, in.Shop, in.OrderID, in.LineItemID, receiver); err != nil {
		return nil, err
	}

	return s.send(ctx, sendInput{
		Shop:       in.Shop,
		OrderID:    in.OrderID,
		LineItemID: in.LineItemID,
		Receiver:   receiver,
		Message:    in.Message,
		IsStaff:    isStaff,
	})
}

// Resend re-sends an earlier notification, throttled on the original
// record's conversation key, and restarts the cooldown.
func (s *NotificationService) Resend(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, shop, id)
	if err != nil {
		return nil, err
	}

	receiver := normalizeReceiver(notification.Receiver)
	if err := s.canSend(ctx, shop, notification.OrderID, notification.LineItem, receiver); err != nil {
		return nil, err
	}

	if err := s.notificationRepo.Touch(ctx, shop, id); err != nil {
		return nil, err
	}

	return s.send(ctx, sendInput{
		Shop:       shop,
		OrderID:    notification.OrderID,
		LineItemID: notification.LineItem,
		Receiver:   receiver,
		Message:    notification.Message,
		Scheduled:  notification.Scheduled,
		IsStaff:    notification.IsStaff,
	})
}

// Cancel flips the notification to cancelled; the provider-side deletion of
// the scheduled message only happens when this call did the transition, so
// cancelling an already-cancelled record never issues a second deletion.
func (s *NotificationService) Cancel(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Notification, error) {
	notification, transitioned, err := s.notificationRepo.Cancel(ctx, shop, id)
	if err != nil {
		return nil, err
	}

	if transitioned && notification.BatchID != "" {
		if err := s.sms.Delete(ctx, notification.BatchID); err != nil {
			// the record is already cancelled locally; the scheduled
			// message may still go out, which the caller cannot fix
			// by retrying the cancel
			s.logger.Errorw("failed to delete scheduled message", "shop", shop, "batch_id", notification.BatchID, "error", err)
		}
	}

	return notification, nil
}

// ProcessEvent is the dispatcher worker's entry point for queued
// confirmation and reminder events. A throttled or receiver-less event is a
// no-op rather than an error so the broker does not retry it.
func (s *NotificationService) ProcessEvent(ctx context.Context, message []byte) error {
	var event domain.NotificationEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return fmt.Errorf("failed to unmarshal notification event: %w", err)
	}

	switch event.Kind {
	case domain.NotificationKindConfirmation:
		return s.sendConfirmation(ctx, event)
	case domain.NotificationKindReminderCustomer:
		return s.sendReminderCustomer(ctx, event)
	case domain.NotificationKindReminderStaff:
		return s.sendReminderStaff(ctx, event)
	default:
		s.logger.Warnw("unknown notification event", "kind", event.Kind)
		return nil
	}
}

func (s *NotificationService) sendConfirmation(ctx context.Context, event domain.NotificationEvent) error {
	customer, err := s.customerRepo.GetByCustomerID(ctx, event.Shop, event.CustomerID)
	if err != nil {
		return err
	}
	if customer.Phone == "" {
		return nil
	}

	receiver := normalizeReceiver(customer.Phone)
	if err := s.canSend(ctx, event.Shop, event.OrderID, domain.OrderLevelLineItem, receiver); err != nil {
		if errors.Is(err, domain.ErrThrottled) {
			return nil
		}
		return err
	}

	message := fmt.Sprintf("Hej %s, tak for din reservation, som indeholder %d behandling(er)",
		customer.Fullname, event.BookingTotal)

	_, err = s.send(ctx, sendInput{
		Shop:       event.Shop,
		OrderID:    event.OrderID,
		LineItemID: domain.OrderLevelLineItem,
		Receiver:   receiver,
		Message:    message,
	})
	return err
}

func (s *NotificationService) sendReminderCustomer(ctx context.Context, event domain.NotificationEvent) error {
	if event.Booking == nil {
		return nil
	}

	customer, err := s.customerRepo.GetByCustomerID(ctx, event.Shop, event.CustomerID)
	if err != nil {
		return err
	}
	if customer.Phone == "" {
		return nil
	}

	receiver := normalizeReceiver(customer.Phone)
	if err := s.canSend(ctx, event.Shop, event.OrderID, event.Booking.LineItemID, receiver); err != nil {
		if errors.Is(err, domain.ErrThrottled) {
			return nil
		}
		return err
	}

	booking := event.Booking
	message := fmt.Sprintf("Hej %s, husk din %s behandling imorgen kl. %s. Vi ser frem til at se dig!",
		customer.Fullname, booking.Title, s.displayTime(booking.Start))

	scheduled := s.reminderTime(booking.Start)

	_, err = s.send(ctx, sendInput{
		Shop:       event.Shop,
		OrderID:    event.OrderID,
		LineItemID: booking.LineItemID,
		Receiver:   receiver,
		Message:    message,
		Scheduled:  &scheduled,
	})
	return err
}

func (s *NotificationService) sendReminderStaff(ctx context.Context, event domain.NotificationEvent) error {
	if event.Booking == nil {
		return nil
	}

	staff, err := s.staffRepo.GetByID(ctx, event.Shop, event.Booking.Staff)
	if err != nil {
		return err
	}
	if staff.Phone == "" {
		return nil
	}

	receiver := normalizeReceiver(staff.Phone)
	if err := s.canSend(ctx, event.Shop, event.OrderID, event.Booking.LineItemID, receiver); err != nil {
		if errors.Is(err, domain.ErrThrottled) {
			return nil
		}
		return err
	}

	booking := event.Booking
	message := fmt.Sprintf("Hej %s, husk du har en kunde som skal lave %s behandling imorgen kl. %s!",
		staff.Fullname, booking.Title, s.displayTime(booking.Start))

	scheduled := s.reminderTime(booking.Start)

	_, err = s.send(ctx, sendInput{
		Shop:       event.Shop,
		OrderID:    event.OrderID,
		LineItemID: booking.LineItemID,
		Receiver:   receiver,
		Message:    message,
		Scheduled:  &scheduled,
		IsStaff:    true,
	})
	return err
}

func (s *NotificationService) displayTime(t time.Time) string {
	return t.In(s.displayZone).Format("15:04")
}

// reminderTime is one calendar day before the booking start, expressed in
// the display zone.
func (s *NotificationService) reminderTime(start time.Time) time.Time {
	return start.AddDate(0, 0, -1).In(s.displayZone)
}
