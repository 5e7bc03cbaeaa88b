package submitter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
)

// sheetSubmitter posts to a spreadsheet script web app.
type sheetSubmitter struct {
	client  *helper.HTTPClient
	url     string
	timeout time.Duration
}

type sheetResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderId"`
	Error    string `json:"error"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

func (s *sheetSubmitter) Submit(ctx context.Context, details types.OrderDetails) (*Result, error) {
	res, err := post(ctx, s.client, s.timeout, s.url, NewSubmission(details), nil)
	if err != nil {
		return nil, err
	}

	var body sheetResponse
	if err := json.Unmarshal(res.Body, &body); err != nil {
		logger.Error.Printf("sheet backend returned status %d with unreadable body", res.StatusCode)
		return nil, apperror.NewNetworkError(fmt.Errorf("decode response: %w", err))
	}

	if !body.Success {
		return nil, rejected(body.Error, body.Message)
	}

	orderID := body.OrderID
	if orderID == "" {
		orderID = details.OrderID
	}
	return &Result{OrderID: orderID, Redirect: body.Redirect}, nil
}
