package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/common/models"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/imaging"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/storage"
	orderRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/order"
	"github.com/samber/lo"
)

const (
	outcomeSubmitted = "submitted"
	outcomeRejected  = "rejected"
	outcomeNetwork   = "network_error"
	outcomeInvalid   = "invalid"
	outcomeFailed    = "failed"
)

// Submit runs one order end to end: validate, preprocess the slip, price,
// compose the receipt, store it, remember the user's values, then hand the
// order to the backend. Steps never overlap and the user cannot start a
// second submission until this one returns.
func (s *Service) Submit(ctx context.Context, user types.UserWithAuth, draft OrderDraft, slip *types.SlipFile) *types.Response {
	if !s.guard.acquire(user.ID) {
		return helper.ParseResponse(&types.Response{Error: apperror.NewConflictError("")})
	}
	defer s.guard.release(user.ID)

	draft = draft.Trimmed()
	category := string(draft.Category)

	if err := draft.Validate(); err != nil {
		s.metrics.ObserveOrder(category, outcomeInvalid)
		return helper.ParseResponse(&types.Response{Error: err})
	}

	if slip == nil && s.slipRequired(draft.Category) {
		s.metrics.ObserveOrder(category, outcomeInvalid)
		return helper.ParseResponse(&types.Response{Error: apperror.NewMissingSlipError()})
	}

	var slipImage *imaging.SlipImage
	if slip != nil {
		img, err := s.preprocessor.Process(ctx, slip)
		if err != nil {
			s.metrics.ObserveOrder(category, outcomeInvalid)
			return helper.ParseResponse(&types.Response{Error: err})
		}
		slipImage = img
	}

	details, split, err := s.buildDetails(user, draft)
	if err != nil {
		s.metrics.ObserveOrder(category, outcomeInvalid)
		return helper.ParseResponse(&types.Response{Error: err})
	}

	rc, err := s.composer.Compose(ctx, details, slipImage)
	if err != nil {
		logger.Error.Printf("Failed to compose receipt for %s: %v", details.OrderID, err)
		s.metrics.ObserveOrder(category, outcomeFailed)
		return helper.ParseResponse(&types.Response{Error: err})
	}

	receiptKey, slipKey := s.storeArtifacts(ctx, details.OrderID, rc.Data, slipImage)
	receiptURL := lo.Ternary(receiptKey != "", s.receiptURL(details.OrderID), "")

	s.remember(ctx, user, draft, details, receiptURL, receiptKey, slipKey)

	result, err := s.submitter.Submit(ctx, details)
	if err != nil {
		s.recordFailure(details.OrderID, category, err)
		return helper.ParseResponse(&types.Response{Error: err})
	}

	backendRef := lo.Ternary(result.OrderID != "", result.OrderID, details.OrderID)
	if err := s.rp.Order.MarkSubmitted(context.WithoutCancel(ctx), details.OrderID, backendRef); err != nil {
		logger.Warning.Printf("Failed to mark order %s submitted: %v", details.OrderID, err)
	}
	s.metrics.ObserveOrder(category, outcomeSubmitted)

	evt := events.OrderSubmitted{
		OrderID:       details.OrderID,
		UserID:        details.UserID,
		OrderType:     details.Type.ToString(),
		Total:         details.Total,
		TransactionID: details.TransactionID,
		SlipKey:       slipKey,
		ReceiptKey:    receiptKey,
		SubmittedAt:   s.now(),
	}
	if err := s.publisher.PublishOrderSubmitted(context.WithoutCancel(ctx), evt); err != nil {
		logger.Warning.Printf("Failed to publish %s for %s: %v", events.OrderSubmittedPattern, details.OrderID, err)
	}

	logger.Info.Printf("Order %s submitted (%s, %s)", details.OrderID, details.Type, details.TotalDisplay)

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Order submitted successfully",
		Data: SubmitResult{
			OrderID:      details.OrderID,
			OrderType:    details.Type,
			Items:        details.Items,
			Total:        details.Total,
			TotalDisplay: details.TotalDisplay,
			Split:        split,
			ReceiptURL:   receiptURL,
			FileName:     rc.FileName,
			Redirect:     lo.Ternary(result.Redirect != "", result.Redirect, s.opts.Redirect),
		},
	})
}

func (s *Service) slipRequired(category enum.Category) bool {
	return !lo.Contains(s.opts.SlipOptional, category)
}

func (s *Service) receiptURL(orderID string) string {
	return fmt.Sprintf("%s/%s/receipt", s.opts.ReceiptPath, orderID)
}

// storeArtifacts archives the receipt and slip. Failures are logged and
// reported as empty keys.
func (s *Service) storeArtifacts(ctx context.Context, orderID string, png []byte, slip *imaging.SlipImage) (receiptKey, slipKey string) {
	if s.blob == nil {
		return "", ""
	}

	key := storage.ReceiptKey(orderID)
	if err := s.blob.Put(ctx, key, png, "image/png"); err != nil {
		logger.Warning.Printf("Failed to store receipt %s: %v", key, err)
	} else {
		receiptKey = key
	}

	if slip != nil {
		key := storage.SlipKey(orderID)
		if err := s.blob.Put(ctx, key, slip.Data, slip.ContentType); err != nil {
			logger.Warning.Printf("Failed to store slip %s: %v", key, err)
		} else {
			slipKey = key
		}
	}
	return receiptKey, slipKey
}

// remember writes the visitor's prefill values, the last-order summary and
// the ledger row. Every write is best-effort.
func (s *Service) remember(ctx context.Context, user types.UserWithAuth, draft OrderDraft, details types.OrderDetails, receiptURL, receiptKey, slipKey string) {
	prefs := s.rp.Preference
	switch draft.Category {
	case enum.SIM:
		if err := prefs.SetLastSimPhone(user.ID, details.Phone); err != nil {
			logger.Warning.Printf("Failed to save last phone for %s: %v", user.ID, err)
		}
	case enum.SMM:
		if err := prefs.SetLastSmmLink(user.ID, details.Link); err != nil {
			logger.Warning.Printf("Failed to save last link for %s: %v", user.ID, err)
		}
	}
	if err := prefs.SetLastOrder(user.ID, details.Summary(receiptURL)); err != nil {
		logger.Warning.Printf("Failed to save last order for %s: %v", user.ID, err)
	}

	row, err := models.NewOrder(details)
	if err != nil {
		logger.Warning.Printf("Failed to build ledger row for %s: %v", details.OrderID, err)
		return
	}
	row.ReceiptKey = receiptKey
	row.SlipKey = slipKey
	if slipKey == "" {
		row.AuditStatus = enum.AUDIT_SKIPPED
	}
	if err := s.rp.Order.Create(ctx, row); err != nil {
		logger.Warning.Printf("Failed to write ledger row for %s: %v", details.OrderID, err)
	}
}

func (s *Service) recordFailure(orderID, category string, err error) {
	appErr := apperror.GetAppError(err)
	status, outcome := enum.ORDER_FAILED, outcomeFailed
	switch {
	case errors.Is(err, apperror.ErrBackendRejected):
		status, outcome = enum.ORDER_REJECTED, outcomeRejected
		logger.Warning.Printf("Backend rejected order %s: %s", orderID, appErr.Message)
	case errors.Is(err, apperror.ErrNetwork):
		outcome = outcomeNetwork
		logger.Error.Printf("Backend unreachable for order %s: %v", orderID, err)
	default:
		logger.Error.Printf("Submitting order %s failed: %v", orderID, err)
	}
	s.metrics.ObserveOrder(category, outcome)

	if err := s.rp.Order.MarkFailed(s.ctx, orderID, status, appErr.Error()); err != nil {
		logger.Warning.Printf("Failed to mark order %s %s: %v", orderID, status, err)
	}
}

func (s *Service) Get(ctx context.Context, user types.UserWithAuth, orderID string) *types.Response {
	order, err := s.findOwned(ctx, user, orderID)
	if err != nil {
		return helper.ParseResponse(&types.Response{Error: err})
	}
	return helper.ParseResponse(&types.Response{Data: s.view(order)})
}

func (s *Service) List(ctx context.Context, user types.UserWithAuth, limit int, direction database.DirectionEnum) *types.Response {
	orders, err := s.rp.Order.ListByUser(ctx, orderRepo.ListFilter{UserID: user.ID, Limit: limit, Direction: direction})
	if err != nil {
		logger.Error.Printf("Failed to list orders for %s: %v", user.ID, err)
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to list orders", Error: err})
	}
	return helper.ParseResponse(&types.Response{
		Data: lo.Map(orders, func(o models.Order, _ int) OrderView { return s.view(&o) }),
	})
}

func (s *Service) LastOrder(ctx context.Context, user types.UserWithAuth) *types.Response {
	last, err := s.rp.Preference.GetLastOrder(user.ID)
	if err != nil {
		logger.Warning.Printf("Failed to read last order for %s: %v", user.ID, err)
	}
	if last == nil {
		return helper.ParseResponse(&types.Response{Error: apperror.NewNotFoundError("Last order")})
	}
	return helper.ParseResponse(&types.Response{Data: last})
}

// Receipt loads the stored PNG. With object storage only the signed URL
// is returned.
func (s *Service) Receipt(ctx context.Context, user types.UserWithAuth, orderID string) (*ReceiptDownload, error) {
	order, err := s.rp.Order.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != user.ID {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if s.blob == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	key := storage.ReceiptKey(orderID)
	fileName := s.fileName(orderID)

	url, err := s.blob.URL(ctx, key)
	if err != nil {
		return nil, err
	}
	if url != "" {
		return &ReceiptDownload{FileName: fileName, ContentType: "image/png", URL: url}, nil
	}

	data, contentType, err := s.blob.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return &ReceiptDownload{
		FileName:    fileName,
		ContentType: lo.Ternary(contentType != "", contentType, "image/png"),
		Data:        data,
	}, nil
}

func (s *Service) fileName(orderID string) string {
	if s.composer == nil {
		return orderID + ".png"
	}
	return s.composer.FileName(orderID)
}

func (s *Service) findOwned(ctx context.Context, user types.UserWithAuth, orderID string) (*models.Order, error) {
	order, err := s.rp.Order.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != user.ID {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

func (s *Service) view(o *models.Order) OrderView {
	return OrderView{
		OrderID:       o.OrderID,
		OrderType:     o.OrderType,
		Items:         o.OrderItems(),
		Quantity:      o.Quantity,
		Total:         o.Total,
		TotalDisplay:  helper.FormatAmount(o.Total, s.opts.Currency),
		Status:        o.Status,
		AuditStatus:   o.AuditStatus,
		PaymentMethod: o.PaymentMethod,
		TransactionID: o.TransactionID,
		ReceiptURL:    lo.Ternary(o.ReceiptKey != "", s.receiptURL(o.OrderID), ""),
		CreatedAt:     o.CreatedAt,
		SubmittedAt:   o.SubmittedAt,
	}
}
