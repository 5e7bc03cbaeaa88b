package order

import (
	"context"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/imaging"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/metrics"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/receipt"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/storage"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/submitter"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
)

const (
	DefaultRedirect    = "/telegram_group"
	DefaultReceiptPath = "/api/v1/orders"
)

type Options struct {
	Currency string
	Location *time.Location
	// Redirect is used when the backend does not name one.
	Redirect    string
	ReceiptPath string
	// SlipOptional lists categories that may be submitted without a slip.
	SlipOptional []enum.Category
}

type Dependencies struct {
	Calculator   *pricing.Calculator
	Preprocessor *imaging.Preprocessor
	Composer     *receipt.Composer
	Blob         storage.BlobStore
	Submitter    submitter.Submitter
	Publisher    events.Publisher
	Metrics      *metrics.ServerMetrics
}

type Service struct {
	ctx          context.Context
	rp           repository.IRepository
	calculator   *pricing.Calculator
	preprocessor *imaging.Preprocessor
	composer     *receipt.Composer
	blob         storage.BlobStore
	submitter    submitter.Submitter
	publisher    events.Publisher
	metrics      *metrics.ServerMetrics
	opts         Options
	guard        *inflight
	now          func() time.Time
}

type IService interface {
	Submit(ctx context.Context, user types.UserWithAuth, draft OrderDraft, slip *types.SlipFile) *types.Response
	Get(ctx context.Context, user types.UserWithAuth, orderID string) *types.Response
	List(ctx context.Context, user types.UserWithAuth, limit int, direction database.DirectionEnum) *types.Response
	LastOrder(ctx context.Context, user types.UserWithAuth) *types.Response
	Receipt(ctx context.Context, user types.UserWithAuth, orderID string) (*ReceiptDownload, error)
}

func NewService(ctx context.Context, rp repository.IRepository, deps Dependencies, opts Options) IService {
	if opts.Currency == "" {
		opts.Currency = "MMK"
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Redirect == "" {
		opts.Redirect = DefaultRedirect
	}
	if opts.ReceiptPath == "" {
		opts.ReceiptPath = DefaultReceiptPath
	}
	if deps.Calculator == nil {
		deps.Calculator = pricing.NewCalculator(pricing.DefaultTable(), pricing.DefaultFeeConfig())
	}
	if deps.Preprocessor == nil {
		deps.Preprocessor = imaging.NewPreprocessor(imaging.DefaultOptions())
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}

	return &Service{
		ctx:          ctx,
		rp:           rp,
		calculator:   deps.Calculator,
		preprocessor: deps.Preprocessor,
		composer:     deps.Composer,
		blob:         deps.Blob,
		submitter:    deps.Submitter,
		publisher:    deps.Publisher,
		metrics:      deps.Metrics,
		opts:         opts,
		guard:        newInflight(),
		now:          time.Now,
	}
}

// SubmitResult is returned after the backend accepted the order.
type SubmitResult struct {
	OrderID      string            `json:"orderId"`
	OrderType    enum.OrderType    `json:"orderType"`
	Items        []types.OrderItem `json:"items"`
	Total        int64             `json:"total"`
	TotalDisplay string            `json:"totalDisplay"`
	Split        *pricing.Split    `json:"split,omitempty"`
	ReceiptURL   string            `json:"receiptUrl,omitempty"`
	FileName     string            `json:"fileName"`
	Redirect     string            `json:"redirect"`
}

// OrderView is the ledger row as shown to its owner.
type OrderView struct {
	OrderID       string            `json:"orderId"`
	OrderType     enum.OrderType    `json:"orderType"`
	Items         []types.OrderItem `json:"items"`
	Quantity      int64             `json:"quantity"`
	Total         int64             `json:"total"`
	TotalDisplay  string            `json:"totalDisplay"`
	Status        enum.OrderStatus  `json:"status"`
	AuditStatus   enum.AuditStatus  `json:"auditStatus"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	TransactionID string            `json:"transactionId,omitempty"`
	ReceiptURL    string            `json:"receiptUrl,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	SubmittedAt   *time.Time        `json:"submittedAt,omitempty"`
}

// ReceiptDownload is either the PNG itself or, for object storage, a
// signed URL to fetch it from.
type ReceiptDownload struct {
	FileName    string
	ContentType string
	Data        []byte
	URL         string
}
