package domain

const (
	NotificationKindConfirmation     = "notification.confirmation"
	NotificationKindReminderCustomer = "notification.reminder_customer"
	NotificationKindReminderStaff    = "notification.reminder_staff"
)

// NotificationEvent is the queue message the booking reconciler produces
// for every message the dispatcher worker should send. Confirmation events
// carry the order summary; reminder events carry the derived booking.
type NotificationEvent struct {
	Kind         string   `json:"kind"`
	Shop         string   `json:"shop"`
	OrderID      int64    `json:"order_id"`
	CustomerID   int64    `json:"customer_id"`
	BookingTotal int      `json:"booking_total,omitempty"`
	Booking      *Booking `json:"booking,omitempty"`
}
