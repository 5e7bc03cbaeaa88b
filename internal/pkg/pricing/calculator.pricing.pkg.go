package pricing

import (
	"strconv"
	"strings"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/shopspring/decimal"
)

const (
	DefaultFeePercent = 1.5
	DefaultMinFee     = 50
)

// FeeConfig selects how P2P fees are charged. Policy is chosen per
// deployment; the two policies are never mixed.
type FeeConfig struct {
	Percent float64
	MinFee  int64
	Policy  enum.FeePolicy
}

func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		Percent: DefaultFeePercent,
		MinFee:  DefaultMinFee,
		Policy:  enum.FEE_ADDED,
	}
}

type Calculator struct {
	table  *Table
	rate   decimal.Decimal
	minFee int64
	policy enum.FeePolicy
}

func NewCalculator(table *Table, fee FeeConfig) *Calculator {
	if table == nil {
		table = NewTable()
	}
	policy := fee.Policy
	if !policy.IsValid() {
		policy = enum.FEE_ADDED
	}
	return &Calculator{
		table:  table,
		rate:   decimal.NewFromFloat(fee.Percent).Div(decimal.NewFromInt(100)),
		minFee: fee.MinFee,
		policy: policy,
	}
}

func (c *Calculator) Table() *Table {
	return c.table
}

func (c *Calculator) Policy() enum.FeePolicy {
	return c.policy
}

func (c *Calculator) PriceFor(category enum.Category, key string, role enum.Role) int64 {
	return c.table.PriceFor(category, key, role)
}

// LineTotal multiplies with the quantity clamped to at least 1.
func LineTotal(unitPrice int64, quantity int64) int64 {
	if quantity < 1 {
		quantity = 1
	}
	return unitPrice * quantity
}

// ParseQuantity reads a raw quantity field; non-numeric or non-positive
// input becomes 1.
func ParseQuantity(raw string) int64 {
	q, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || q < 1 {
		return 1
	}
	return q
}

// Split is the outcome of a P2P exchange under one fee policy.
type Split struct {
	Amount  int64          `json:"amount"`
	Fee     int64          `json:"fee"`
	Receive int64          `json:"receive"`
	Total   int64          `json:"total"`
	Policy  enum.FeePolicy `json:"policy"`
}

// Fee is max(round_half_up(amount * rate), minFee), except that an amount
// of exactly 0 carries no fee at all.
func (c *Calculator) Fee(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	fee := decimal.NewFromInt(amount).Mul(c.rate).Round(0).IntPart()
	if fee < c.minFee {
		fee = c.minFee
	}
	return fee
}

// ExchangeSplit applies the configured policy. Deducted: the receiver gets
// amount - fee and the sender pays amount. Added: the receiver gets amount
// and the sender pays amount + fee.
func (c *Calculator) ExchangeSplit(amount int64) Split {
	if amount < 0 {
		amount = 0
	}
	fee := c.Fee(amount)

	split := Split{Amount: amount, Fee: fee, Policy: c.policy}
	switch c.policy {
	case enum.FEE_DEDUCTED:
		split.Receive = amount - fee
		split.Total = amount
	default:
		split.Receive = amount
		split.Total = amount + fee
	}
	return split
}

type QuoteInput struct {
	Category enum.Category
	Key      string
	Quantity string
	Amount   int64
	Role     enum.Role
}

// Quote is what the order pages display while the user edits the form.
type Quote struct {
	Category  enum.Category `json:"category"`
	Key       string        `json:"key"`
	Label     string        `json:"label,omitempty"`
	Known     bool          `json:"known"`
	UnitPrice int64         `json:"unit_price"`
	Quantity  int64         `json:"quantity"`
	Total     int64         `json:"total"`
	Split     *Split        `json:"split,omitempty"`
}

func (c *Calculator) Quote(in QuoteInput) Quote {
	q := Quote{Category: in.Category, Key: in.Key, Quantity: 1}

	switch in.Category {
	case enum.P2P:
		split := c.ExchangeSplit(in.Amount)
		q.Known = true
		q.Split = &split
		q.Total = split.Total
	case enum.SMM:
		entry, ok := c.table.Lookup(in.Category, in.Key)
		q.Known = ok
		q.Label = entry.Label
		q.UnitPrice = c.PriceFor(in.Category, in.Key, in.Role)
		q.Quantity = ParseQuantity(in.Quantity)
		q.Total = LineTotal(q.UnitPrice, q.Quantity)
	case enum.SIM, enum.GAME:
		entry, ok := c.table.Lookup(in.Category, in.Key)
		q.Known = ok
		q.Label = entry.Label
		q.UnitPrice = c.PriceFor(in.Category, in.Key, in.Role)
		q.Total = q.UnitPrice
	}

	return q
}
