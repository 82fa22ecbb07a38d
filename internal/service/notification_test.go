package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/sms"
)

type gatewayCall struct {
	Receiver  string  `json:"receiver"`
	Message   string  `json:"message"`
	Scheduled *string `json:"scheduled"`
}

// fakeGateway records send and delete calls the way the SMS provider
// would see them.
type fakeGateway struct {
	mu      sync.Mutex
	sends   []gatewayCall
	deletes []string
	server  *httptest.Server
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	g := &fakeGateway{}
	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		switch r.URL.Path {
		case "/v1/sms/send":
			var call gatewayCall
			require.NoError(t, json.NewDecoder(r.Body).Decode(&call))
			g.sends = append(g.sends, call)
			_, _ = w.Write([]byte(`{"status":"success","result":{"batchId":"batch-1"}}`))
		case "/v1/sms/delete":
			g.deletes = append(g.deletes, r.URL.Query().Get("batchId"))
			_, _ = w.Write([]byte(`{"status":"success"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(g.server.Close)
	return g
}

func (g *fakeGateway) sendCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sends)
}

func (g *fakeGateway) lastSend() gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sends[len(g.sends)-1]
}

type notificationFixture struct {
	svc           *NotificationService
	notifications *fakeNotificationRepo
	bookings      *fakeBookingRepo
	customers     *fakeCustomerRepo
	staff         *fakeStaffRepo
	gateway       *fakeGateway
	zone          *time.Location
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()

	gateway := newFakeGateway(t)
	client := sms.New(sms.Config{BaseURL: gateway.server.URL, APIKey: "secret", SenderName: "BySisters"})

	zone, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	notifications := &fakeNotificationRepo{}
	bookings := newFakeBookingRepo()
	customers := newFakeCustomerRepo()
	staff := newFakeStaffRepo()

	svc := NewNotificationService(notifications, bookings, customers, staff, client, zone, testLogger())

	return &notificationFixture{
		svc:           svc,
		notifications: notifications,
		bookings:      bookings,
		customers:     customers,
		staff:         staff,
		gateway:       gateway,
		zone:          zone,
	}
}

func (f *notificationFixture) seedCustomer(t *testing.T, phone string) {
	t.Helper()
	_, err := f.customers.FindAndUpdate(context.Background(), &domain.Customer{
		Shop:       "beauty.myshopify.com",
		CustomerID: 42,
		Fullname:   "Anna Jensen",
		Phone:      phone,
	})
	require.NoError(t, err)
}

func (f *notificationFixture) seedBooking(t *testing.T, staffID primitive.ObjectID) domain.Booking {
	t.Helper()
	booking := domain.Booking{
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		LineItemID: 1,
		ProductID:  7001,
		Staff:      staffID,
		Start:      time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		CustomerID: 42,
		Title:      "Haircut",
	}
	require.NoError(t, f.bookings.BulkUpsert(context.Background(), []domain.Booking{booking}))
	return booking
}

func TestNotificationService_SendCustom(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")
	f.seedBooking(t, primitive.NewObjectID())

	notification, err := f.svc.SendCustom(context.Background(), SendCustomInput{
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		LineItemID: 1,
		Message:    "Vi har flyttet din tid",
		To:         "customer",
	})
	require.NoError(t, err)

	assert.Equal(t, "4512345678", notification.Receiver)
	assert.Equal(t, "batch-1", notification.BatchID)
	assert.False(t, notification.IsStaff)

	require.Equal(t, 1, f.gateway.sendCount())
	assert.Equal(t, "4512345678", f.gateway.lastSend().Receiver)
}

func TestNotificationService_SendCustom_ToStaff(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")

	staff := &domain.Staff{Shop: "beauty.myshopify.com", Fullname: "Maria", Phone: "+4587654321"}
	require.NoError(t, f.staff.Create(context.Background(), staff))
	f.seedBooking(t, staff.ID)

	notification, err := f.svc.SendCustom(context.Background(), SendCustomInput{
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		LineItemID: 1,
		Message:    "Ny kunde kl. 9",
		To:         "staff",
	})
	require.NoError(t, err)

	assert.Equal(t, "4587654321", notification.Receiver)
	assert.True(t, notification.IsStaff)
}

func TestNotificationService_SendCustom_Throttled(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")
	f.seedBooking(t, primitive.NewObjectID())

	input := SendCustomInput{
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		LineItemID: 1,
		Message:    "Vi har flyttet din tid",
		To:         "customer",
	}

	_, err := f.svc.SendCustom(context.Background(), input)
	require.NoError(t, err)

	_, err = f.svc.SendCustom(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrThrottled)
	assert.Equal(t, 1, f.gateway.sendCount())

	// one second past the cooldown the conversation opens again
	f.svc.now = func() time.Time { return time.Now().Add(cooldown + time.Second) }

	_, err = f.svc.SendCustom(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, f.gateway.sendCount())
}

func TestNotificationService_SendCustom_MissingBooking(t *testing.T) {
	f := newNotificationFixture(t)

	_, err := f.svc.SendCustom(context.Background(), SendCustomInput{
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		LineItemID: 1,
		Message:    "Hej",
		To:         "customer",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationService_Resend(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")
	f.seedBooking(t, primitive.NewObjectID())

	original, err := f.svc.SendCustom(context.Background(), SendCustomInput{
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		LineItemID: 1,
		Message:    "Vi har flyttet din tid",
		To:         "customer",
	})
	require.NoError(t, err)

	// within the cooldown the resend is rejected
	_, err = f.svc.Resend(context.Background(), "beauty.myshopify.com", original.ID)
	assert.ErrorIs(t, err, domain.ErrThrottled)

	f.svc.now = func() time.Time { return time.Now().Add(cooldown + time.Second) }

	resent, err := f.svc.Resend(context.Background(), "beauty.myshopify.com", original.ID)
	require.NoError(t, err)

	assert.Equal(t, original.Message, resent.Message)
	assert.Equal(t, original.Receiver, resent.Receiver)
	assert.NotEqual(t, original.ID, resent.ID)
	assert.Equal(t, 2, f.gateway.sendCount())
}

func TestNotificationService_Cancel(t *testing.T) {
	f := newNotificationFixture(t)

	record := &domain.Notification{
		Shop:     "beauty.myshopify.com",
		OrderID:  9001,
		LineItem: 1,
		Receiver: "4512345678",
		Message:  "Hej Anna, husk din Haircut behandling imorgen kl. 10:00. Vi ser frem til at se dig!",
		Status:   domain.NotificationStatusSent,
		BatchID:  "batch-1",
	}
	require.NoError(t, f.notifications.Create(context.Background(), record))

	cancelled, err := f.svc.Cancel(context.Background(), "beauty.myshopify.com", record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationStatusCancelled, cancelled.Status)

	require.Len(t, f.gateway.deletes, 1)
	assert.Equal(t, "batch-1", f.gateway.deletes[0])

	// cancelling again is a no-op at the provider
	again, err := f.svc.Cancel(context.Background(), "beauty.myshopify.com", record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationStatusCancelled, again.Status)
	assert.Len(t, f.gateway.deletes, 1)
}

func TestNotificationService_Cancel_NoBatchID(t *testing.T) {
	f := newNotificationFixture(t)

	record := &domain.Notification{
		Shop:     "beauty.myshopify.com",
		OrderID:  9001,
		LineItem: 1,
		Receiver: "4512345678",
		Message:  "Hej",
		Status:   domain.NotificationStatusSent,
	}
	require.NoError(t, f.notifications.Create(context.Background(), record))

	_, err := f.svc.Cancel(context.Background(), "beauty.myshopify.com", record.ID)
	require.NoError(t, err)
	assert.Empty(t, f.gateway.deletes)
}

func processEvent(t *testing.T, svc *NotificationService, event domain.NotificationEvent) error {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return svc.ProcessEvent(context.Background(), payload)
}

func TestNotificationService_ProcessEvent_Confirmation(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")

	err := processEvent(t, f.svc, domain.NotificationEvent{
		Kind:         domain.NotificationKindConfirmation,
		Shop:         "beauty.myshopify.com",
		OrderID:      9001,
		CustomerID:   42,
		BookingTotal: 2,
	})
	require.NoError(t, err)

	require.Equal(t, 1, f.gateway.sendCount())
	sent := f.gateway.lastSend()
	assert.Equal(t, "Hej Anna Jensen, tak for din reservation, som indeholder 2 behandling(er)", sent.Message)
	assert.Nil(t, sent.Scheduled)

	// the confirmation lives at the order level of the conversation
	conversation, err := f.svc.Get(context.Background(), "beauty.myshopify.com", 9001, 1)
	require.NoError(t, err)
	require.Len(t, conversation, 1)
	assert.Equal(t, domain.OrderLevelLineItem, conversation[0].LineItem)
}

func TestNotificationService_ProcessEvent_ConfirmationThrottledIsNoop(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")

	event := domain.NotificationEvent{
		Kind:         domain.NotificationKindConfirmation,
		Shop:         "beauty.myshopify.com",
		OrderID:      9001,
		CustomerID:   42,
		BookingTotal: 1,
	}

	require.NoError(t, processEvent(t, f.svc, event))
	// a throttled event must not error, the broker would retry it
	require.NoError(t, processEvent(t, f.svc, event))

	assert.Equal(t, 1, f.gateway.sendCount())
}

func TestNotificationService_ProcessEvent_NoPhoneIsNoop(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "")

	err := processEvent(t, f.svc, domain.NotificationEvent{
		Kind:         domain.NotificationKindConfirmation,
		Shop:         "beauty.myshopify.com",
		OrderID:      9001,
		CustomerID:   42,
		BookingTotal: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.gateway.sendCount())
}

func TestNotificationService_ProcessEvent_ReminderCustomer(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")
	booking := f.seedBooking(t, primitive.NewObjectID())

	err := processEvent(t, f.svc, domain.NotificationEvent{
		Kind:       domain.NotificationKindReminderCustomer,
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		CustomerID: 42,
		Booking:    &booking,
	})
	require.NoError(t, err)

	require.Equal(t, 1, f.gateway.sendCount())
	sent := f.gateway.lastSend()
	// 09:00 UTC is 10:00 in the display zone in March
	assert.Equal(t, "Hej Anna Jensen, husk din Haircut behandling imorgen kl. 10:00. Vi ser frem til at se dig!", sent.Message)

	require.NotNil(t, sent.Scheduled)
	assert.Equal(t, "2026-03-01T10:00:00.000", *sent.Scheduled)
}

func TestNotificationService_ProcessEvent_ReminderStaff(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedCustomer(t, "+4512345678")

	staff := &domain.Staff{Shop: "beauty.myshopify.com", Fullname: "Maria", Phone: "+4587654321"}
	require.NoError(t, f.staff.Create(context.Background(), staff))
	booking := f.seedBooking(t, staff.ID)

	err := processEvent(t, f.svc, domain.NotificationEvent{
		Kind:       domain.NotificationKindReminderStaff,
		Shop:       "beauty.myshopify.com",
		OrderID:    9001,
		CustomerID: 42,
		Booking:    &booking,
	})
	require.NoError(t, err)

	require.Equal(t, 1, f.gateway.sendCount())
	sent := f.gateway.lastSend()
	assert.Equal(t, "4587654321", sent.Receiver)
	assert.Equal(t, "Hej Maria, husk du har en kunde som skal lave Haircut behandling imorgen kl. 10:00!", sent.Message)
	require.NotNil(t, sent.Scheduled)
}

func TestNotificationService_ProcessEvent_UnknownKind(t *testing.T) {
	f := newNotificationFixture(t)

	err := processEvent(t, f.svc, domain.NotificationEvent{Kind: "notification.unknown"})
	require.NoError(t, err)
	assert.Equal(t, 0, f.gateway.sendCount())
}

func TestNotificationService_ProcessEvent_BadPayload(t *testing.T) {
	f := newNotificationFixture(t)

	err := f.svc.ProcessEvent(context.Background(), []byte("{broken"))
	assert.Error(t, err)
}
