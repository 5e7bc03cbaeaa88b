package order

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const orderIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewOrderID returns BP-<unix ms>-<6 random chars>.
func NewOrderID(now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(orderIDAlphabet, 6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BP-%d-%s", helper.ToUnixMilli(now), suffix), nil
}

// buildDetails prices the draft from the table. Items the table does not
// know are rejected rather than sold at 0.
func (s *Service) buildDetails(user types.UserWithAuth, d OrderDraft) (types.OrderDetails, *pricing.Split, error) {
	now := s.now()
	id, err := NewOrderID(now)
	if err != nil {
		return types.OrderDetails{}, nil, err
	}

	role := user.EffectiveRole()
	details := types.OrderDetails{
		OrderID:       id,
		Type:          d.Category.OrderType(),
		CreatedAt:     now,
		Date:          helper.FormatReceiptDate(now.In(s.opts.Location)),
		Quantity:      1,
		PaymentMethod: d.PaymentMethod,
		TransactionID: d.TransactionID,
		UserID:        user.ID,
		Role:          role,
	}
	table := s.calculator.Table()
	money := func(v int64) string { return helper.FormatAmount(v, s.opts.Currency) }

	var split *pricing.Split
	switch d.Category {
	case enum.SIM:
		key := pricing.SimKey(d.SimProvider, d.SimPackage)
		entry, ok := table.Lookup(enum.SIM, key)
		if !ok {
			return details, nil, apperror.NewValidationMessage("sim_package", fmt.Sprintf("Unknown package %s for %s", d.SimPackage, d.SimProvider))
		}
		details.Total = s.calculator.PriceFor(enum.SIM, key, role)
		details.Phone = d.SimPhone
		details.Items = []types.OrderItem{
			{Label: "Provider", Value: d.SimProvider},
			{Label: "Package", Value: entry.Label},
			{Label: "Phone", Value: d.SimPhone},
		}

	case enum.GAME:
		entry, ok := table.Lookup(enum.GAME, d.GamePackage)
		if !ok {
			return details, nil, apperror.NewValidationMessage("game_package", "Unknown game package "+d.GamePackage)
		}
		details.Total = s.calculator.PriceFor(enum.GAME, d.GamePackage, role)
		details.Items = []types.OrderItem{
			{Label: "Game", Value: entry.Label},
			{Label: "Player ID", Value: d.GameID},
			{Label: "Amount", Value: money(details.Total)},
		}

	case enum.SMM:
		entry, ok := table.Lookup(enum.SMM, d.SmmService)
		if !ok {
			return details, nil, apperror.NewValidationMessage("smm_service", "Unknown service "+d.SmmService)
		}
		details.Quantity = pricing.ParseQuantity(d.SmmQuantity)
		details.Total = pricing.LineTotal(s.calculator.PriceFor(enum.SMM, d.SmmService, role), details.Quantity)
		details.Link = d.SmmLink
		details.Items = []types.OrderItem{
			{Label: "Service", Value: entry.Label},
			{Label: "Link", Value: d.SmmLink},
			{Label: "Quantity", Value: strconv.FormatInt(details.Quantity, 10)},
		}

	case enum.P2P:
		sp := s.calculator.ExchangeSplit(helper.ParseAmount(d.PayAmount))
		split = &sp
		details.Total = sp.Total
		details.Items = []types.OrderItem{
			{Label: "From", Value: d.PayFrom},
			{Label: "To", Value: d.PayTo},
			{Label: "Amount", Value: money(sp.Amount)},
			{Label: "Fee", Value: money(sp.Fee)},
		}
		if sp.Policy == enum.FEE_DEDUCTED {
			details.Items = append(details.Items, types.OrderItem{Label: "Receive", Value: money(sp.Receive)})
		}

	default:
		return details, nil, apperror.NewValidationMessage("type", "Unknown order type")
	}

	details.TotalDisplay = money(details.Total)
	return details, split, nil
}
