package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/models"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) IRepository {
	t.Helper()
	logger.Setup()

	db, err := database.Setup(&database.Config{Driver: database.SQLITE, Database: ":memory:"})
	if err != nil {
		t.Fatalf("setup db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if pending := db.PendingTables(); len(pending) != 1 {
		t.Fatalf("pending before migrate = %v", pending)
	}
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if pending := db.PendingTables(); len(pending) != 0 {
		t.Fatalf("pending after migrate = %v", pending)
	}
	return NewRepo(db)
}

func newOrder(t *testing.T, id, user string, at time.Time) *models.Order {
	t.Helper()
	o, err := models.NewOrder(types.OrderDetails{
		OrderID:   id,
		Type:      enum.SIM_RECHARGE,
		CreatedAt: at,
		Items: []types.OrderItem{
			{Label: "Provider", Value: "MPT"},
			{Label: "Package", Value: "2GB"},
			{Label: "Phone", Value: "09123456789"},
		},
		Total:  2400,
		Phone:  "09123456789",
		UserID: user,
		Role:   enum.CUSTOMER,
	})
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	return o
}

func TestCreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, newOrder(t, "BP-1", "u1", time.Now())); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByOrderID(ctx, "BP-1")
	if err != nil || got == nil {
		t.Fatalf("find = %v, %v", got, err)
	}
	if got.Status != enum.ORDER_PENDING || got.Category != enum.SIM || got.Total != 2400 {
		t.Fatalf("order = %+v", got)
	}
	items := got.OrderItems()
	if len(items) != 3 || items[0].Label != "Provider" {
		t.Fatalf("items = %+v", items)
	}

	missing, err := repo.FindByOrderID(ctx, "BP-404")
	if err != nil || missing != nil {
		t.Fatalf("missing = %v, %v", missing, err)
	}
}

func TestStatusTransitions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, newOrder(t, "BP-1", "u1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateKeys(ctx, "BP-1", "receipts/BP-1.png", "slips/BP-1.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkSubmitted(ctx, "BP-1", "row-42"); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateAudit(ctx, "BP-1", AuditResult{Status: enum.AUDIT_MATCHED, Amount: 2400, TransactionID: "TX1"}); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.FindByOrderID(ctx, "BP-1")
	if got.Status != enum.ORDER_SUBMITTED || got.BackendRef != "row-42" || got.SubmittedAt == nil {
		t.Fatalf("submitted = %+v", got)
	}
	if got.SlipKey != "slips/BP-1.jpg" || got.AuditStatus != enum.AUDIT_MATCHED || got.AuditedAt == nil {
		t.Fatalf("audit = %+v", got)
	}

	if err := repo.MarkFailed(ctx, "BP-404", enum.ORDER_FAILED, "x"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("update missing = %v", err)
	}
}

func TestListByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"BP-1", "BP-2", "BP-3"} {
		if err := repo.Create(ctx, newOrder(t, id, "u1", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Create(ctx, newOrder(t, "BP-9", "u2", base)); err != nil {
		t.Fatal(err)
	}

	orders, err := repo.ListByUser(ctx, ListFilter{UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 3 || orders[0].OrderID != "BP-3" {
		t.Fatalf("desc = %v", orders)
	}

	orders, err = repo.ListByUser(ctx, ListFilter{UserID: "u1", Limit: 2, Direction: database.ASC})
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 || orders[0].OrderID != "BP-1" {
		t.Fatalf("asc = %v", orders)
	}
}
