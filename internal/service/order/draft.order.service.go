package order

import (
	"strings"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/validation"
)

// OrderDraft is the submitted form. Only the fields of Category are read;
// form names match the order pages.
type OrderDraft struct {
	Category enum.Category `form:"-"`

	SimProvider string `form:"sim_provider"`
	SimPackage  string `form:"sim_package"`
	SimPhone    string `form:"sim_phone"`

	GamePackage string `form:"game_package"`
	GameID      string `form:"game_id"`

	SmmService  string `form:"smm_service"`
	SmmLink     string `form:"smm_link"`
	SmmQuantity string `form:"smm_quantity"`

	PayFrom   string `form:"pay_from"`
	PayTo     string `form:"pay_to"`
	PayAmount string `form:"pay_amount"`

	PaymentMethod string `form:"payment_method"`
	TransactionID string `form:"transaction_id"`
}

type simInput struct {
	Provider string `json:"sim_provider" validate:"notblank"`
	Package  string `json:"sim_package" validate:"notblank"`
	Phone    string `json:"sim_phone" validate:"notblank"`
}

type gameInput struct {
	Package  string `json:"game_package" validate:"notblank"`
	PlayerID string `json:"game_id" validate:"notblank"`
}

type smmInput struct {
	Service  string `json:"smm_service" validate:"notblank"`
	Link     string `json:"smm_link" validate:"notblank"`
	Quantity string `json:"smm_quantity" validate:"notblank"`
}

type p2pInput struct {
	From   string `json:"pay_from" validate:"notblank"`
	To     string `json:"pay_to" validate:"notblank"`
	Amount string `json:"pay_amount" validate:"notblank"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (d OrderDraft) Trimmed() OrderDraft {
	d.SimProvider = strings.TrimSpace(d.SimProvider)
	d.SimPackage = strings.TrimSpace(d.SimPackage)
	d.SimPhone = strings.TrimSpace(d.SimPhone)
	d.GamePackage = strings.TrimSpace(d.GamePackage)
	d.GameID = strings.TrimSpace(d.GameID)
	d.SmmService = strings.TrimSpace(d.SmmService)
	d.SmmLink = strings.TrimSpace(d.SmmLink)
	d.SmmQuantity = strings.TrimSpace(d.SmmQuantity)
	d.PayFrom = strings.TrimSpace(d.PayFrom)
	d.PayTo = strings.TrimSpace(d.PayTo)
	d.PayAmount = strings.TrimSpace(d.PayAmount)
	d.PaymentMethod = strings.TrimSpace(d.PaymentMethod)
	d.TransactionID = strings.TrimSpace(d.TransactionID)
	return d
}

// Validate reports the first blank required field of the draft's category.
func (d OrderDraft) Validate() error {
	switch d.Category {
	case enum.SIM:
		return validation.Validate(simInput{d.SimProvider, d.SimPackage, d.SimPhone})
	case enum.GAME:
		return validation.Validate(gameInput{d.GamePackage, d.GameID})
	case enum.SMM:
		return validation.Validate(smmInput{d.SmmService, d.SmmLink, d.SmmQuantity})
	case enum.P2P:
		if err := validation.Validate(p2pInput{d.PayFrom, d.PayTo, d.PayAmount}); err != nil {
			return err
		}
		if strings.EqualFold(d.PayFrom, d.PayTo) {
			return apperror.NewValidationMessage("pay_to", "From and To must be different")
		}
		if helper.ParseAmount(d.PayAmount) == 0 && !isZero(d.PayAmount) {
			return apperror.NewValidationMessage("pay_amount", "pay_amount must be a number")
		}
		return nil
	}
	return apperror.NewValidationMessage("type", "Unknown order type")
}

func isZero(s string) bool {
	return strings.Trim(strings.ReplaceAll(s, ",", ""), "0.") == ""
}
