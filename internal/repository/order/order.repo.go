package order

import (
	"context"
	"errors"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/models"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"gorm.io/gorm"
)

const MaxListLimit = 100

// AuditResult is what the slip audit found on the payment slip.
type AuditResult struct {
	Status        enum.AuditStatus
	Amount        int64
	TransactionID string
	Note          string
}

type ListFilter struct {
	UserID    string
	Limit     int
	Direction database.DirectionEnum
}

type IRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, filter ListFilter) ([]models.Order, error)
	MarkSubmitted(ctx context.Context, orderID, backendRef string) error
	MarkFailed(ctx context.Context, orderID string, status enum.OrderStatus, reason string) error
	UpdateKeys(ctx context.Context, orderID, receiptKey, slipKey string) error
	UpdateAudit(ctx context.Context, orderID string, result AuditResult) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByOrderID returns nil and no error when the order does not exist.
func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) ListByUser(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	limit := filter.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", filter.UserID).
		Order(filter.Direction.OrderBy("created_at")).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) MarkSubmitted(ctx context.Context, orderID, backendRef string) error {
	now := time.Now()
	return r.update(ctx, orderID, map[string]any{
		"status":       enum.ORDER_SUBMITTED,
		"backend_ref":  backendRef,
		"submitted_at": &now,
	})
}

func (r *Repository) MarkFailed(ctx context.Context, orderID string, status enum.OrderStatus, reason string) error {
	return r.update(ctx, orderID, map[string]any{
		"status":         status,
		"failure_reason": reason,
	})
}

func (r *Repository) UpdateKeys(ctx context.Context, orderID, receiptKey, slipKey string) error {
	return r.update(ctx, orderID, map[string]any{
		"receipt_key": receiptKey,
		"slip_key":    slipKey,
	})
}

func (r *Repository) UpdateAudit(ctx context.Context, orderID string, result AuditResult) error {
	now := time.Now()
	return r.update(ctx, orderID, map[string]any{
		"audit_status":         result.Status,
		"audit_amount":         result.Amount,
		"audit_transaction_id": result.TransactionID,
		"audit_note":           result.Note,
		"audited_at":           &now,
	})
}

func (r *Repository) update(ctx context.Context, orderID string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("order_id = ?", orderID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
