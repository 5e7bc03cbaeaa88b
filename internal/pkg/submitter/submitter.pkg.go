package submitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
)

const (
	DefaultTimeout = 15 * time.Second
	actionCreate   = "createOrder"
)

// Submitter forwards an order to the external backend. Errors are
// *apperror.AppError of kind BackendRejected or NetworkError.
type Submitter interface {
	Submit(ctx context.Context, details types.OrderDetails) (*Result, error)
}

type Result struct {
	OrderID  string `json:"orderId"`
	Redirect string `json:"redirect,omitempty"`
}

// Submission is the canonical payload every adapter derives its body from.
type Submission struct {
	Action        string            `json:"action"`
	OrderID       string            `json:"orderId"`
	OrderType     string            `json:"orderType"`
	Items         []types.OrderItem `json:"items"`
	Quantity      int64             `json:"quantity"`
	Total         int64             `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
	TransactionID string            `json:"transactionId"`
	UserID        string            `json:"userId"`
	Timestamp     string            `json:"timestamp"`
}

func NewSubmission(details types.OrderDetails) Submission {
	items := details.Items
	if items == nil {
		items = []types.OrderItem{}
	}
	return Submission{
		Action:        actionCreate,
		OrderID:       details.OrderID,
		OrderType:     details.Type.ToString(),
		Items:         items,
		Quantity:      max(details.Quantity, 1),
		Total:         details.Total,
		PaymentMethod: details.PaymentMethod,
		TransactionID: details.TransactionID,
		UserID:        details.UserID,
		Timestamp:     details.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type Config struct {
	Kind    enum.SubmitterEnum
	URL     string
	Token   string
	Timeout time.Duration
}

// New picks the adapter for cfg.Kind.
func New(cfg Config) (Submitter, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("backend url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := helper.NewHTTPClient(&helper.HTTPClientConfig{})

	switch cfg.Kind {
	case enum.SUBMITTER_SHEET, "":
		return &sheetSubmitter{client: client, url: cfg.URL, timeout: cfg.Timeout}, nil
	case enum.SUBMITTER_DOCUMENT:
		return &documentSubmitter{client: client, url: cfg.URL, token: cfg.Token, timeout: cfg.Timeout}, nil
	}
	return nil, fmt.Errorf("unknown backend kind %q", cfg.Kind)
}

// post sends body under a deadline and maps transport failures to
// NetworkError.
func post(ctx context.Context, client *helper.HTTPClient, timeout time.Duration, url string, body any, headers map[string]string) (*helper.HTTPAPIResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	config := &helper.HTTPRequestConfig{Ctx: ctx}
	if len(headers) > 0 {
		config.Headers = make(map[string][]string, len(headers))
		for k, v := range headers {
			config.Headers.Set(k, v)
		}
	}

	res, err := client.Request(&helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    url,
		Body:   body,
	}, config)
	if err != nil {
		return nil, apperror.NewNetworkError(err)
	}
	return res, nil
}

func rejected(messages ...string) error {
	for _, m := range messages {
		if strings.TrimSpace(m) != "" {
			return apperror.NewBackendRejectedError(m)
		}
	}
	return apperror.NewBackendRejectedError("Order submission failed")
}
