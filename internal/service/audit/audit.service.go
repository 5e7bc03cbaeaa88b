package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	orderRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/order"
	"github.com/google/generative-ai-go/genai"
)

const slipPrompt = `You are checking a payment slip screenshot from a Myanmar mobile wallet or bank app (KBZPay, WavePay, AYA Pay, CB Pay and similar).
Read the transferred amount in MMK as a whole number without separators, and the transaction or reference id exactly as printed.
Set readable to false when the image is not a payment slip or the amount cannot be read.`

var slipSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"readable": {
			Type:        genai.TypeBoolean,
			Description: "whether the image is a legible payment slip",
		},
		"amount": {
			Type:        genai.TypeInteger,
			Description: "transferred amount in MMK",
		},
		"transactionId": {
			Type:        genai.TypeString,
			Description: "transaction or reference id, empty if none",
		},
	},
	Required: []string{"readable", "amount", "transactionId"},
}

type slipReading struct {
	Readable      bool   `json:"readable"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
}

// HandleOrderSubmitted reads the archived slip and records whether it
// matches the order. Storage and model errors are returned so the broker
// retries; everything else ends in a recorded audit status.
func (s *Service) HandleOrderSubmitted(ctx context.Context, evt events.OrderSubmitted) error {
	if evt.SlipKey == "" {
		return s.record(ctx, evt.OrderID, orderRepo.AuditResult{Status: enum.AUDIT_SKIPPED, Note: "no slip attached"})
	}
	if s.reader == nil || !s.reader.Enabled() {
		return s.record(ctx, evt.OrderID, orderRepo.AuditResult{Status: enum.AUDIT_SKIPPED, Note: "slip reader not configured"})
	}

	data, contentType, err := s.blob.Get(ctx, evt.SlipKey)
	if err != nil {
		return fmt.Errorf("failed to load slip %s: %w", evt.SlipKey, err)
	}
	if data == nil {
		return s.record(ctx, evt.OrderID, orderRepo.AuditResult{Status: enum.AUDIT_SKIPPED, Note: "slip no longer stored"})
	}

	res, err := s.reader.GeminiPromptWithImageAndSchema(ctx, slipPrompt, data, contentType, slipSchema)
	if err != nil {
		return fmt.Errorf("failed to read slip %s: %w", evt.SlipKey, err)
	}
	logger.Debug.Printf("Slip %s read in %s (%d tokens)", evt.SlipKey, res.Latency, res.Tokens)

	var reading slipReading
	if err := json.Unmarshal([]byte(res.Response), &reading); err != nil || !reading.Readable {
		return s.record(ctx, evt.OrderID, orderRepo.AuditResult{Status: enum.AUDIT_UNREADABLE, Note: "slip could not be read"})
	}

	return s.record(ctx, evt.OrderID, Compare(evt, reading.Amount, reading.TransactionID))
}

// Compare matches what was read off the slip against the order. The
// transaction id matches when one contains the other, since customers
// often type only the last digits.
func Compare(evt events.OrderSubmitted, amount int64, transactionID string) orderRepo.AuditResult {
	result := orderRepo.AuditResult{Status: enum.AUDIT_MATCHED, Amount: amount, TransactionID: transactionID}

	var notes []string
	if amount != evt.Total {
		notes = append(notes, fmt.Sprintf("amount %d, expected %d", amount, evt.Total))
	}

	want, got := normalizeID(evt.TransactionID), normalizeID(transactionID)
	if want != "" && (got == "" || !(strings.Contains(got, want) || strings.Contains(want, got))) {
		notes = append(notes, fmt.Sprintf("transaction id %q, expected %q", transactionID, evt.TransactionID))
	}

	if len(notes) > 0 {
		result.Status = enum.AUDIT_MISMATCH
		result.Note = strings.Join(notes, "; ")
	}
	return result
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), ""))
}

func (s *Service) record(ctx context.Context, orderID string, result orderRepo.AuditResult) error {
	s.metrics.ObserveAudit(string(result.Status))
	if err := s.rp.Order.UpdateAudit(ctx, orderID, result); err != nil {
		logger.Warning.Printf("Failed to record audit for %s: %v", orderID, err)
		return err
	}
	logger.Info.Printf("Slip audit for %s: %s %s", orderID, result.Status, result.Note)
	return nil
}
