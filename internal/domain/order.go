package domain

// Order is the inbound commerce webhook payload. Line items that carry a
// "_data" property describe a booked treatment; everything else is ignored.
type Order struct {
	ID        int64         `json:"id"`
	Customer  OrderCustomer `json:"customer"`
	LineItems []LineItem    `json:"line_items"`
	Refunds   []Refund      `json:"refunds"`
}

type OrderCustomer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LineItem struct {
	ID                int64              `json:"id"`
	ProductID         int64              `json:"product_id"`
	Title             string             `json:"title"`
	FulfillmentStatus string             `json:"fulfillment_status"`
	Properties        []LineItemProperty `json:"properties"`
}

type LineItemProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Refund struct {
	RefundLineItems []RefundLineItem `json:"refund_line_items"`
}

type RefundLineItem struct {
	LineItemID int64 `json:"line_item_id"`
}

// Refunded reports whether any refund on the order references the line item.
func (o Order) Refunded(lineItemID int64) bool {
	for _, refund := range o.Refunds {
		for _, item := range refund.RefundLineItems {
			if item.LineItemID == lineItemID {
				return true
			}
		}
	}
	return false
}
