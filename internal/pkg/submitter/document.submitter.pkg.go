package submitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
)

// documentSubmitter writes the order as a document into a hosted
// document database over REST.
type documentSubmitter struct {
	client  *helper.HTTPClient
	url     string
	token   string
	timeout time.Duration
}

type documentRequest struct {
	Fields Submission `json:"fields"`
}

type documentResponse struct {
	OK       bool   `json:"ok"`
	ID       string `json:"id"`
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

func (s *documentSubmitter) Submit(ctx context.Context, details types.OrderDetails) (*Result, error) {
	headers := map[string]string{}
	if s.token != "" {
		headers["Authorization"] = "Bearer " + s.token
	}

	res, err := post(ctx, s.client, s.timeout, s.url, documentRequest{Fields: NewSubmission(details)}, headers)
	if err != nil {
		return nil, err
	}

	var body documentResponse
	if err := json.Unmarshal(res.Body, &body); err != nil {
		logger.Error.Printf("document backend returned status %d with unreadable body", res.StatusCode)
		return nil, apperror.NewNetworkError(fmt.Errorf("decode response: %w", err))
	}

	if !body.OK || res.StatusCode >= http.StatusBadRequest {
		return nil, rejected(body.Error, http.StatusText(res.StatusCode))
	}

	id := body.ID
	if id == "" {
		id = details.OrderID
	}
	return &Result{OrderID: id, Redirect: body.Redirect}, nil
}
