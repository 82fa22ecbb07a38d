package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

func dataItem(id int64, staff primitive.ObjectID) domain.LineItem {
	data := fmt.Sprintf(
		`{"staff":{"_id":%q,"anyAvailable":true},"start":"2026-03-02T09:00:00Z","end":"2026-03-02T10:00:00Z","timeZone":"Europe/Paris"}`,
		staff.Hex(),
	)
	return domain.LineItem{
		ID:        id,
		ProductID: 7001,
		Title:     "Haircut",
		Properties: []domain.LineItemProperty{
			{Name: "_pickup", Value: "store"},
			{Name: "_data", Value: data},
		},
	}
}

func TestBookingCandidate_Decodes(t *testing.T) {
	staff := primitive.NewObjectID()
	order := domain.Order{ID: 9001, Customer: domain.OrderCustomer{ID: 42}}
	item := dataItem(1, staff)

	booking, err := BookingCandidate("beauty.myshopify.com", order, item)
	require.NoError(t, err)

	assert.Equal(t, "beauty.myshopify.com", booking.Shop)
	assert.Equal(t, int64(9001), booking.OrderID)
	assert.Equal(t, int64(1), booking.LineItemID)
	assert.Equal(t, int64(7001), booking.ProductID)
	assert.Equal(t, staff, booking.Staff)
	assert.Equal(t, int64(42), booking.CustomerID)
	assert.Equal(t, domain.FulfillmentPending, booking.FulfillmentStatus)
	assert.True(t, booking.AnyAvailable)
	assert.Equal(t, "Haircut", booking.Title)
	assert.Equal(t, "Europe/Paris", booking.TimeZone)
	assert.True(t, booking.End.After(booking.Start))
}

func TestBookingCandidate_NoData(t *testing.T) {
	order := domain.Order{ID: 9001}
	item := domain.LineItem{
		ID:         2,
		Properties: []domain.LineItemProperty{{Name: "_pickup", Value: "store"}},
	}

	_, err := BookingCandidate("beauty.myshopify.com", order, item)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBookingCandidate_MalformedPayload(t *testing.T) {
	staff := primitive.NewObjectID()

	tests := []struct {
		name string
		data string
	}{
		{"broken json", `{"staff":`},
		{"bad staff id", `{"staff":{"_id":"nope"},"start":"2026-03-02T09:00:00Z","end":"2026-03-02T10:00:00Z"}`},
		{"missing interval", fmt.Sprintf(`{"staff":{"_id":%q}}`, staff.Hex())},
		{"end before start", fmt.Sprintf(`{"staff":{"_id":%q},"start":"2026-03-02T10:00:00Z","end":"2026-03-02T09:00:00Z"}`, staff.Hex())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := domain.LineItem{
				ID:         3,
				Properties: []domain.LineItemProperty{{Name: "_data", Value: tc.data}},
			}

			_, err := BookingCandidate("beauty.myshopify.com", domain.Order{ID: 9001}, item)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.False(t, errors.Is(err, ErrNoData))
		})
	}
}

func TestBookingCandidate_PassesThroughFulfillmentStatus(t *testing.T) {
	staff := primitive.NewObjectID()
	item := dataItem(4, staff)
	item.FulfillmentStatus = "fulfilled"

	booking, err := BookingCandidate("beauty.myshopify.com", domain.Order{ID: 9001}, item)
	require.NoError(t, err)
	assert.Equal(t, domain.FulfillmentFulfilled, booking.FulfillmentStatus)
}

func TestBookingCandidate_RefundOverridesStatus(t *testing.T) {
	staff := primitive.NewObjectID()
	item := dataItem(5, staff)
	item.FulfillmentStatus = "fulfilled"

	order := domain.Order{
		ID: 9001,
		Refunds: []domain.Refund{
			{RefundLineItems: []domain.RefundLineItem{{LineItemID: 5}}},
		},
	}

	booking, err := BookingCandidate("beauty.myshopify.com", order, item)
	require.NoError(t, err)
	assert.Equal(t, domain.FulfillmentRefunded, booking.FulfillmentStatus)
}
