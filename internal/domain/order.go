package domain

import "time"

type OrderStatus string

const (
	OrderPaid OrderStatus = "paid"
	OrderCOD  OrderStatus = "cod"
)

// OrderItem is one normalized cart entry as persisted with the order.
// Price is in major units; AmountTotal on the order is in minor units.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is one completed checkout, keyed by the payment session id.
type Order struct {
	ID            string      `json:"id,omitempty"`
	SessionID     string      `json:"sessionId"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Address       string      `json:"address,omitempty"`
	City          string      `json:"city,omitempty"`
	PostalCode    string      `json:"postalCode,omitempty"`
	DeliveryNotes string      `json:"deliveryNotes,omitempty"`
	AmountTotal   int64       `json:"amountTotal"`
	Currency      string      `json:"currency"`
	Items         []OrderItem `json:"items"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}
