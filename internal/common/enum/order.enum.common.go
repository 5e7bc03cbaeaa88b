package enum

import (
	"github.com/go-playground/validator/v10"
)

// Enum is implemented by every string enum in this package.
type Enum interface {
	IsValid() bool
}

// ValidateEnum backs the "enum" validation tag.
func ValidateEnum(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(Enum)
	if !ok {
		return false
	}
	return value.IsValid()
}

/*----------- Role -----------*/

type Role string

const (
	CUSTOMER Role = "customer"
	RESELLER Role = "reseller"
)

func (e Role) ToString() string {
	switch e {
	case CUSTOMER:
		return "customer"
	case RESELLER:
		return "reseller"
	}
	return ""
}

func (e Role) IsValid() bool {
	switch e {
	case CUSTOMER, RESELLER:
		return true
	}
	return false
}

/*----------- Category -----------*/

type Category string

const (
	SIM  Category = "sim"
	GAME Category = "game"
	SMM  Category = "smm"
	P2P  Category = "p2p"
)

func (e Category) ToString() string {
	switch e {
	case SIM:
		return "sim"
	case GAME:
		return "game"
	case SMM:
		return "smm"
	case P2P:
		return "p2p"
	}
	return ""
}

func (e Category) IsValid() bool {
	switch e {
	case SIM, GAME, SMM, P2P:
		return true
	}
	return false
}

// OrderType maps a category to the order type shown on receipts.
func (e Category) OrderType() OrderType {
	switch e {
	case SIM:
		return SIM_RECHARGE
	case GAME:
		return GAME_TOPUP
	case SMM:
		return SMM_SERVICE
	case P2P:
		return P2P_EXCHANGE
	}
	return ""
}

/*----------- OrderType -----------*/

type OrderType string

const (
	SIM_RECHARGE OrderType = "SIM Recharge"
	GAME_TOPUP   OrderType = "Game Top-up"
	SMM_SERVICE  OrderType = "SMM Service"
	P2P_EXCHANGE OrderType = "P2P Exchange"
)

func (e OrderType) ToString() string {
	return string(e)
}

func (e OrderType) IsValid() bool {
	switch e {
	case SIM_RECHARGE, GAME_TOPUP, SMM_SERVICE, P2P_EXCHANGE:
		return true
	}
	return false
}

func (e OrderType) Category() Category {
	switch e {
	case SIM_RECHARGE:
		return SIM
	case GAME_TOPUP:
		return GAME
	case SMM_SERVICE:
		return SMM
	case P2P_EXCHANGE:
		return P2P
	}
	return ""
}

/*----------- FeePolicy -----------*/

type FeePolicy string

const (
	FEE_DEDUCTED FeePolicy = "deducted"
	FEE_ADDED    FeePolicy = "added"
)

func (e FeePolicy) ToString() string {
	switch e {
	case FEE_DEDUCTED:
		return "deducted"
	case FEE_ADDED:
		return "added"
	}
	return ""
}

func (e FeePolicy) IsValid() bool {
	switch e {
	case FEE_DEDUCTED, FEE_ADDED:
		return true
	}
	return false
}

/*----------- Theme -----------*/

type Theme string

const (
	LIGHT Theme = "light"
	DARK  Theme = "dark"
)

func (e Theme) IsValid() bool {
	switch e {
	case LIGHT, DARK:
		return true
	}
	return false
}

/*----------- OrderStatus -----------*/

type OrderStatus string

const (
	ORDER_PENDING   OrderStatus = "pending"
	ORDER_SUBMITTED OrderStatus = "submitted"
	ORDER_REJECTED  OrderStatus = "rejected"
	ORDER_FAILED    OrderStatus = "failed"
)

func (e OrderStatus) IsValid() bool {
	switch e {
	case ORDER_PENDING, ORDER_SUBMITTED, ORDER_REJECTED, ORDER_FAILED:
		return true
	}
	return false
}

/*----------- AuditStatus -----------*/

type AuditStatus string

const (
	AUDIT_PENDING    AuditStatus = "pending"
	AUDIT_MATCHED    AuditStatus = "matched"
	AUDIT_MISMATCH   AuditStatus = "mismatch"
	AUDIT_UNREADABLE AuditStatus = "unreadable"
	AUDIT_SKIPPED    AuditStatus = "skipped"
)

func (e AuditStatus) IsValid() bool {
	switch e {
	case AUDIT_PENDING, AUDIT_MATCHED, AUDIT_MISMATCH, AUDIT_UNREADABLE, AUDIT_SKIPPED:
		return true
	}
	return false
}
