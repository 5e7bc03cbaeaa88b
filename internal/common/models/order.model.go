package models

import (
	"fmt"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
)

// Order is the ledger row written for every submission attempt that got
// as far as a rendered receipt.
type Order struct {
	OrderID       string           `json:"order_id" gorm:"type:varchar(64);primaryKey"`
	UserID        string           `json:"user_id" gorm:"type:varchar(100);index:idx_orders_user_created,priority:1;not null"`
	Role          enum.Role        `json:"role" gorm:"type:varchar(20)"`
	Category      enum.Category    `json:"category" gorm:"type:varchar(10);index"`
	OrderType     enum.OrderType   `json:"order_type" gorm:"type:varchar(30)"`
	Items         ItemList         `json:"items" gorm:"not null"`
	Quantity      int64            `json:"quantity" gorm:"not null;default:1"`
	Total         int64            `json:"total" gorm:"not null"`
	Phone         string           `json:"phone" gorm:"type:varchar(50)"`
	Link          string           `json:"link" gorm:"type:text"`
	PaymentMethod string           `json:"payment_method" gorm:"type:varchar(50)"`
	TransactionID string           `json:"transaction_id" gorm:"type:varchar(255)"`
	Status        enum.OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	BackendRef    string           `json:"backend_ref" gorm:"type:varchar(255)"`
	FailureReason string           `json:"failure_reason" gorm:"type:text"`
	ReceiptKey    string           `json:"receipt_key" gorm:"type:varchar(255)"`
	SlipKey       string           `json:"slip_key" gorm:"type:varchar(255)"`

	AuditStatus        enum.AuditStatus `json:"audit_status" gorm:"type:varchar(20);not null;default:'pending'"`
	AuditAmount        int64            `json:"audit_amount"`
	AuditTransactionID string           `json:"audit_transaction_id" gorm:"type:varchar(255)"`
	AuditNote          string           `json:"audit_note" gorm:"type:text"`

	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime;index:idx_orders_user_created,priority:2"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	SubmittedAt *time.Time `json:"submitted_at"`
	AuditedAt   *time.Time `json:"audited_at"`
}

func (Order) TableName() string {
	return "orders"
}

// NewOrder builds a pending ledger row from priced order details.
func NewOrder(details types.OrderDetails) (*Order, error) {
	if !details.Type.IsValid() {
		return nil, fmt.Errorf("unknown order type %q", details.Type)
	}
	return &Order{
		OrderID:       details.OrderID,
		UserID:        details.UserID,
		Role:          details.Role,
		Category:      details.Type.Category(),
		OrderType:     details.Type,
		Items:         ItemList(details.Items),
		Quantity:      max(details.Quantity, 1),
		Total:         details.Total,
		Phone:         details.Phone,
		Link:          details.Link,
		PaymentMethod: details.PaymentMethod,
		TransactionID: details.TransactionID,
		Status:        enum.ORDER_PENDING,
		AuditStatus:   enum.AUDIT_PENDING,
		CreatedAt:     details.CreatedAt,
	}, nil
}

func (o *Order) OrderItems() []types.OrderItem {
	return o.Items
}
