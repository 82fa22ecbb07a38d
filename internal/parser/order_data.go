package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dataProperty is the line item property carrying the serialized booking
// selection made in the storefront widget.
const dataProperty = "_data"

// ErrNoData marks a line item without a _data property. Such items are not
// bookings at all and are skipped silently.
var ErrNoData = errors.New("line item has no booking data")

type bookingData struct {
	Staff struct {
		ID           string `json:"_id"`
		AnyAvailable bool   `json:"anyAvailable"`
	} `json:"staff"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	TimeZone string    `json:"timeZone"`
}

// BookingCandidate decodes one line item of an order into a strict booking
// record. A missing _data property yields ErrNoData; a malformed payload or
// interval yields a validation error. The item's fulfillment status is
// overridden to refunded when the order's refund list references it.
func BookingCandidate(shop string, order domain.Order, item domain.LineItem) (*domain.Booking, error) {
	var raw string
	for _, property := range item.Properties {
		if property.Name == dataProperty {
			raw = property.Value
			break
		}
	}
	if raw == "" {
		return nil, ErrNoData
	}

	var data bookingData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("line item %d: decode _data: %w", item.ID, domain.ErrValidation)
	}

	staffID, err := primitive.ObjectIDFromHex(data.Staff.ID)
	if err != nil {
		return nil, fmt.Errorf("line item %d: staff id %q: %w", item.ID, data.Staff.ID, domain.ErrValidation)
	}

	if data.Start.IsZero() || data.End.IsZero() || !data.End.After(data.Start) {
		return nil, fmt.Errorf("line item %d: malformed interval: %w", item.ID, domain.ErrValidation)
	}

	status := domain.FulfillmentStatus(item.FulfillmentStatus)
	if status == "" {
		status = domain.FulfillmentPending
	}
	if order.Refunded(item.ID) {
		status = domain.FulfillmentRefunded
	}

	return &domain.Booking{
		Shop:              shop,
		OrderID:           order.ID,
		LineItemID:        item.ID,
		ProductID:         item.ProductID,
		Staff:             staffID,
		Start:             data.Start,
		End:               data.End,
		CustomerID:        order.Customer.ID,
		FulfillmentStatus: status,
		AnyAvailable:      data.Staff.AnyAvailable,
		Title:             item.Title,
		TimeZone:          data.TimeZone,
	}, nil
}
