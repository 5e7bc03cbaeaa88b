package types

import (
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
)

// OrderItem is one labelled row on the receipt and in the backend payload.
type OrderItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OrderDetails is the priced, immutable result of an order draft.
type OrderDetails struct {
	OrderID       string         `json:"orderId"`
	Type          enum.OrderType `json:"orderType"`
	CreatedAt     time.Time      `json:"createdAt"`
	Date          string         `json:"date"`
	Items         []OrderItem    `json:"items"`
	Quantity      int64          `json:"quantity"`
	Total         int64          `json:"total"`
	TotalDisplay  string         `json:"totalDisplay"`
	Phone         string         `json:"phone,omitempty"`
	Link          string         `json:"link,omitempty"`
	PaymentMethod string         `json:"paymentMethod,omitempty"`
	TransactionID string         `json:"transactionId,omitempty"`
	UserID        string         `json:"userId"`
	Role          enum.Role      `json:"role"`
}

// LastOrder is the confirmation page summary kept per user.
type LastOrder struct {
	OrderID      string         `json:"orderId"`
	Type         enum.OrderType `json:"type"`
	Total        int64          `json:"total"`
	TotalDisplay string         `json:"totalDisplay"`
	ReceiptURL   string         `json:"receiptUrl,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func (d OrderDetails) Summary(receiptURL string) LastOrder {
	return LastOrder{
		OrderID:      d.OrderID,
		Type:         d.Type,
		Total:        d.Total,
		TotalDisplay: d.TotalDisplay,
		ReceiptURL:   receiptURL,
		CreatedAt:    d.CreatedAt,
	}
}
